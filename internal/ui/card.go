package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lingofriends/internal/friend"
	"lingofriends/internal/ui/textutil"
)

const (
	// cardBodyLines is the fixed content height of a card so grid rows line up:
	// name, location, tags, two bio lines, action.
	cardBodyLines = 6
	// cardHeight includes the border.
	cardHeight = cardBodyLines + 2
	// cardChrome is border plus horizontal padding.
	cardChrome = 4
	bioLines   = 2
	minCardW   = 24

	imageBadge  = "[img]"
	actionLabel = "Message"
	unnamed     = "Unnamed"
)

// avatar renders the profile picture badge or the initials of the name.
func avatar(f friend.Friend) string {
	if _, ok := friend.Value(f.ProfilePic); ok {
		return Styles.Avatar.Render(imageBadge)
	}
	return Styles.Avatar.Render(" " + friend.Initials(f.FullName) + " ")
}

// renderCard renders one friend as a fixed-height card of the given outer width.
func renderCard(f friend.Friend, width int, selected bool) string {
	inner := max(width, minCardW) - cardChrome

	lines := make([]string, 0, cardBodyLines)

	av := avatar(f)
	name, ok := friend.Value(f.FullName)
	nameStyle := Styles.Name
	if !ok {
		name, nameStyle = unnamed, Styles.Muted
	}
	nameW := inner - textutil.VisualWidthStyled(av) - 1
	lines = append(lines, av+" "+nameStyle.Render(textutil.Truncate(name, nameW)))

	if loc, ok := friend.Value(f.Location); ok {
		lines = append(lines, Styles.Muted.Render(textutil.Truncate("📍 "+loc, inner)))
	} else {
		lines = append(lines, "")
	}

	var tags []string
	if lang, ok := friend.Value(f.NativeLanguage); ok {
		tags = append(tags, "Native: "+lang)
	}
	if lang, ok := friend.Value(f.LearningLanguage); ok {
		tags = append(tags, "Learning: "+lang)
	}
	lines = append(lines, Styles.Tag.Render(textutil.Truncate(strings.Join(tags, " · "), inner)))

	var bio []string
	if b, ok := friend.Value(f.Bio); ok {
		bio = textutil.ClampLines(b, inner, bioLines)
	}
	for i := 0; i < bioLines; i++ {
		if i < len(bio) {
			lines = append(lines, Styles.Normal.Render(bio[i]))
		} else {
			lines = append(lines, "")
		}
	}

	action := Styles.Action.Render("[ " + actionLabel + " ]")
	style := Styles.Card
	if selected {
		action = Styles.ActionActive.Render("[ " + actionLabel + " ↵ ]")
		style = Styles.CardSelected
	}
	lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Right, action))

	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// renderSkeleton renders a placeholder card with the same shape as renderCard.
func renderSkeleton(width int) string {
	inner := max(width, minCardW) - cardChrome
	block := func(w int) string {
		return Styles.SkeletonFill.Render(strings.Repeat("░", max(w, 1)))
	}
	lines := []string{
		block(4) + " " + block(inner*3/4-5),
		block(inner / 2),
		block(10) + " " + block(10),
		block(inner),
		"",
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, block(11)),
	}
	return Styles.Skeleton.Width(inner + 2).Render(strings.Join(lines, "\n"))
}
