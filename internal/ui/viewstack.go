package ui

import tea "github.com/charmbracelet/bubbletea"

// ViewStack holds views pushed on top of the friends list. The friends list
// itself is never on the stack, so popping the last view returns to it with
// its query and selection intact.
type ViewStack struct {
	Stack []View
}

// Push adds a view to the top of the stack.
func (s *ViewStack) Push(v View) {
	s.Stack = append(s.Stack, v)
}

// Pop removes and returns the top view, or nil if the stack is empty.
func (s *ViewStack) Pop() View {
	if len(s.Stack) == 0 {
		return nil
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack[len(s.Stack)-1] = nil
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top
}

// Peek returns the top view without removing it.
func (s *ViewStack) Peek() View {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// Len returns the number of views in the stack.
func (s *ViewStack) Len() int {
	return len(s.Stack)
}

// UpdateTop passes msg to the top view and replaces it with the result.
// Reports false when the stack is empty.
func (s *ViewStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	v, cmd := s.Stack[len(s.Stack)-1].Update(msg)
	s.Stack[len(s.Stack)-1] = v
	return cmd, true
}

// Broadcast passes msg to every view on the stack, e.g. window resizes.
func (s *ViewStack) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.Stack))
	for i, v := range s.Stack {
		nv, cmd := v.Update(msg)
		s.Stack[i] = nv
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}
