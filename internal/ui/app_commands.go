package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lingofriends/internal/cache"
	"lingofriends/internal/friend"
)

// fetchTimeout bounds a whole fetch, retries included.
const fetchTimeout = 30 * time.Second

// FriendsSource supplies the friends list. *api.Client implements it.
type FriendsSource interface {
	FetchFriends(ctx context.Context) ([]friend.Friend, error)
}

// FriendsCache persists the last fetched list. *cache.Store implements it.
type FriendsCache interface {
	Load() (cache.Snapshot, error)
	Save(friends []friend.Friend) error
	Clear() error
}

// loadCachedCmd reads the cached snapshot (phase 1: instant data).
func loadCachedCmd(c FriendsCache) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := c.Load()
		return FriendsCachedMsg{Snapshot: snap, Err: err}
	}
}

// fetchFriendsCmd fetches the list from the source (phase 2: network data).
func fetchFriendsCmd(src FriendsSource, gen int) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return FriendsLoadedMsg{Gen: gen, Friends: []friend.Friend{}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		friends, err := src.FetchFriends(ctx)
		return FriendsLoadedMsg{Gen: gen, Friends: friends, Err: err}
	}
}

// saveFriendsCmd writes a fresh list to the cache.
func saveFriendsCmd(c FriendsCache, friends []friend.Friend) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		return friendsSavedMsg{Err: c.Save(friends)}
	}
}

// clearCacheCmd deletes the cached snapshot.
func clearCacheCmd(c FriendsCache) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		return cacheClearedMsg{Err: c.Clear()}
	}
}

// copyCmd writes text to the clipboard and reports the result on the status line.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return StatusMsg{Text: "Copy failed: " + err.Error(), IsError: true}
		}
		return StatusMsg{Text: "Copied " + text}
	}
}
