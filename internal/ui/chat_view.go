package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lingofriends/internal/friend"
	"lingofriends/internal/nav"
	"lingofriends/internal/ui/textutil"
)

// ChatView is the destination of a friend's Message action. The chat itself
// lives in the web app; this view shows who the chat is with and where it
// opens.
type ChatView struct {
	Friend      friend.Friend
	Destination nav.Destination
	width       int
}

// Ensure ChatView implements View.
var _ View = (*ChatView)(nil)

// NewChatView creates a chat view for f.
func NewChatView(f friend.Friend, dest nav.Destination) *ChatView {
	return &ChatView{Friend: f, Destination: dest, width: defaultWidth}
}

// Link returns the URL to share, falling back to the route path.
func (c *ChatView) Link() string {
	if c.Destination.URL != "" {
		return c.Destination.URL
	}
	return c.Destination.Path
}

// Init implements View.
func (c *ChatView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (c *ChatView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "left", "h":
			return c, func() tea.Msg { return BackMsg{} }
		case "y":
			return c, func() tea.Msg { return CopyLinkMsg{} }
		}
	}
	return c, nil
}

// View implements View.
func (c *ChatView) View() string {
	inner := max(c.width-8, 20)
	name, ok := friend.Value(c.Friend.FullName)
	if !ok {
		name = unnamed
	}

	lines := []string{
		avatar(c.Friend) + " " + Styles.Name.Render(textutil.Truncate(name, inner-8)),
	}
	if loc, ok := friend.Value(c.Friend.Location); ok {
		lines = append(lines, Styles.Muted.Render("📍 "+loc))
	}
	var langs []string
	if l, ok := friend.Value(c.Friend.NativeLanguage); ok {
		langs = append(langs, "Native: "+l)
	}
	if l, ok := friend.Value(c.Friend.LearningLanguage); ok {
		langs = append(langs, "Learning: "+l)
	}
	if len(langs) > 0 {
		lines = append(lines, Styles.Tag.Render(strings.Join(langs, " · ")))
	}
	if pic, ok := friend.Value(c.Friend.ProfilePic); ok {
		lines = append(lines, Styles.Muted.Render("Picture: "+textutil.Truncate(pic, inner-9)))
	}
	if bio, ok := friend.Value(c.Friend.Bio); ok {
		lines = append(lines, "", Styles.Normal.Render(strings.Join(textutil.ClampLines(bio, inner, 6), "\n")))
	}

	lines = append(lines, "", Styles.Muted.Render("Route  ")+Styles.Normal.Render(c.Destination.Path))
	if c.Destination.URL != "" {
		lines = append(lines, Styles.Muted.Render("Open   ")+Styles.Link.Render(c.Destination.URL))
	}

	box := Styles.CardSelected.Padding(1, 2).Width(inner + 4).Render(strings.Join(lines, "\n"))
	title := Styles.Title.Render("Chat with " + name)
	footer := renderFooter(c.width, hint("esc", "back"), hint("y", "copy link"), hint("q", "quit"))
	return lipgloss.JoinVertical(lipgloss.Left, title, box, footer)
}
