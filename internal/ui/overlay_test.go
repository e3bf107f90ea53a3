package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayStack_DismissKey(t *testing.T) {
	var s OverlayStack
	_, handled := s.HandleKey(keyMsg("esc"))
	assert.False(t, handled, "no modal, key passes through")

	s.Push(Overlay{View: NewForgetCacheConfirmModal(2), Dismiss: "esc"})
	require.Equal(t, 1, s.Len())

	cmd, handled := s.HandleKey(keyMsg("j"))
	assert.True(t, handled, "keys stop at the modal")
	assert.Nil(t, cmd)
	assert.Equal(t, 1, s.Len())

	_, handled = s.HandleKey(keyMsg("esc"))
	assert.True(t, handled)
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Top())
}

func TestOverlayStack_Render(t *testing.T) {
	var s OverlayStack
	assert.Equal(t, "page", s.Render("page", 80, 24))

	s.Push(Overlay{View: NewForgetCacheConfirmModal(1), Dismiss: "esc"})
	out := s.Render("page", 80, 24)
	assert.NotContains(t, out, "page")
	assert.Contains(t, out, "1 friend will be deleted")
	assert.Len(t, strings.Split(out, "\n"), 24)
}

func TestConfirmModal_Keys(t *testing.T) {
	m := NewForgetCacheConfirmModal(0)
	assert.Contains(t, m.View(), "friends list will be deleted")

	_, cmd := m.Update(keyMsg("n"))
	require.NotNil(t, cmd)
	assert.IsType(t, DismissModalMsg{}, cmd())

	_, cmd = m.Update(keyMsg("x"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var msgs []any
	for _, c := range batch {
		msgs = append(msgs, c())
	}
	assert.Contains(t, msgs, DismissModalMsg{})
	assert.Contains(t, msgs, ForgetCacheMsg{})
}
