package ui

import (
	"lingofriends/internal/cache"
	"lingofriends/internal/friend"
)

// FriendsCachedMsg carries the on-disk snapshot (phase 1: instant data).
// Err is cache.ErrMiss when nothing was saved yet.
type FriendsCachedMsg struct {
	Snapshot cache.Snapshot
	Err      error
}

// FriendsLoadedMsg carries the result of a fetch (phase 2: network data).
// Gen identifies the fetch; results from superseded fetches are dropped.
type FriendsLoadedMsg struct {
	Gen     int
	Friends []friend.Friend
	Err     error
}

// friendsSavedMsg reports the outcome of writing the cache.
type friendsSavedMsg struct {
	Err error
}

// RefreshMsg triggers a refetch of the friends list (r, ctrl+r, SPC r).
type RefreshMsg struct{}

// OpenChatMsg is sent when the user picks a friend's Message action.
type OpenChatMsg struct {
	FriendID string
}

// BackMsg pops the top view (esc in the chat view).
type BackMsg struct{}

// FocusSearchMsg moves focus to the search bar (SPC s).
type FocusSearchMsg struct{}

// ClearSearchMsg empties the search query (ctrl+l, SPC x).
type ClearSearchMsg struct{}

// CopyLinkMsg copies the current chat link to the clipboard (y, SPC y).
type CopyLinkMsg struct{}

// StatusMsg sets the status line.
type StatusMsg struct {
	Text    string
	IsError bool
}

// ShowForgetCacheMsg opens the confirmation for dropping the cache (SPC C).
type ShowForgetCacheMsg struct{}

// ForgetCacheMsg deletes the cached friends list once confirmed.
type ForgetCacheMsg struct{}

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}

// cacheClearedMsg reports the outcome of deleting the cache.
type cacheClearedMsg struct {
	Err error
}
