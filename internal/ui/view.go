package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a screen or modal with its own Init/Update/View. FriendsView,
// ChatView and ConfirmModal implement it; AppModel routes messages to them.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
