package ui

// AppMode represents the top-level application mode.
type AppMode int

const (
	ModeFriends AppMode = iota
	ModeChat
)

func (m AppMode) String() string {
	switch m {
	case ModeFriends:
		return "Friends"
	case ModeChat:
		return "Chat"
	default:
		return "Unknown"
	}
}
