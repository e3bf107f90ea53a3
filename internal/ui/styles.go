package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, spinner
	ColorHighlight = "205" // Magenta - selected card, keys
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - hints, guidance
	ColorText      = "252" // Light gray - normal text
	ColorDim       = "238" // Dark gray - skeleton blocks, idle borders
	ColorBadge     = "63"  // Blue - avatar background
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title lipgloss.Style
	Error lipgloss.Style

	// Card styles
	Card         lipgloss.Style // Idle card border
	CardSelected lipgloss.Style // Selected card border
	Skeleton     lipgloss.Style // Placeholder card border
	SkeletonFill lipgloss.Style // Placeholder blocks
	Avatar       lipgloss.Style // Initials badge
	Name         lipgloss.Style
	Tag          lipgloss.Style // Native/Learning badges
	Action       lipgloss.Style // Message affordance
	ActionActive lipgloss.Style

	// Page styles
	SearchBox        lipgloss.Style
	SearchBoxFocused lipgloss.Style
	EmptyBox         lipgloss.Style
	Muted            lipgloss.Style
	Normal           lipgloss.Style
	Hint             lipgloss.Style
	Link             lipgloss.Style // Clear-search and retry affordances
	Status           lipgloss.Style

	// Modal styles
	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalDetails lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	CardSelected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Skeleton: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDim)).
		Padding(0, 1),
	SkeletonFill: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
	Avatar: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color(ColorBadge)),
	Name: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Tag: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Action: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	ActionActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	SearchBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	SearchBoxFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	EmptyBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(1, 2).
		Align(lipgloss.Center),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Link: lipgloss.NewStyle().
		Underline(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	ModalBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	ModalTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	ModalDetails: lipgloss.NewStyle().
		Foreground(lipgloss.Color("208")),
}
