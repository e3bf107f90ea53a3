package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModal asks a yes/no question. Enter or y confirms; Esc cancels
// (handled by the overlay's dismiss key).
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // Optional consequence shown under the label
	OnConfirm func() tea.Msg
}

var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{Title: title, Label: label, OnConfirm: onConfirm}
}

// WithDetails adds details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewForgetCacheConfirmModal asks before dropping the saved friends list.
func NewForgetCacheConfirmModal(count int) *ConfirmModal {
	label := "The saved copy of your friends list will be deleted."
	if count == 1 {
		label = "The saved copy of 1 friend will be deleted."
	} else if count > 1 {
		label = fmt.Sprintf("The saved copy of %d friends will be deleted.", count)
	}
	return NewConfirmModal("Forget cached friends?", label,
		func() tea.Msg { return ForgetCacheMsg{} }).
		WithDetails("The next start shows loading placeholders until the fetch completes.")
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "y":
			return m, tea.Batch(func() tea.Msg { return DismissModalMsg{} }, m.OnConfirm)
		case "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.ModalTitle.Render(m.Title) + "\n\n"
	content += Styles.Normal.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.ModalDetails.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  n/Esc: cancel")
	return Styles.ModalBox.Render(content)
}
