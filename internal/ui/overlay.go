package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay is a modal drawn over the current page.
type Overlay struct {
	View    View
	Dismiss string // Key that closes the modal without acting, e.g. "esc"
}

// OverlayStack holds open modals. The top one receives every key before
// the page or the keybinds do.
type OverlayStack struct {
	views   ViewStack
	dismiss []string
}

// Push opens o on top of any open modals.
func (s *OverlayStack) Push(o Overlay) {
	s.views.Push(o.View)
	s.dismiss = append(s.dismiss, o.Dismiss)
}

// Pop closes the top modal.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if s.views.Len() == 0 {
		return Overlay{}, false
	}
	key := s.dismiss[len(s.dismiss)-1]
	s.dismiss = s.dismiss[:len(s.dismiss)-1]
	return Overlay{View: s.views.Pop(), Dismiss: key}, true
}

// Top returns the top modal's view, or nil.
func (s *OverlayStack) Top() View {
	return s.views.Peek()
}

// Len returns the number of open modals.
func (s *OverlayStack) Len() int {
	return s.views.Len()
}

// HandleKey gives the top modal first claim on a key. Its dismiss key pops
// it; other keys go to its Update. Reports false when no modal is open.
func (s *OverlayStack) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if s.views.Len() == 0 {
		return nil, false
	}
	if msg.String() == s.dismiss[len(s.dismiss)-1] {
		s.Pop()
		return nil, true
	}
	return s.views.UpdateTop(msg)
}

// Render centers the top modal in a width x height area, replacing the
// page. Without a known size the modal is returned as is.
func (s *OverlayStack) Render(base string, width, height int) string {
	top := s.views.Peek()
	if top == nil {
		return base
	}
	if width <= 0 || height <= 0 {
		return top.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, top.View())
}
