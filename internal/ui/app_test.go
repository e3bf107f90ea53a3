package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingofriends/internal/cache"
	"lingofriends/internal/friend"
	"lingofriends/internal/friendlist"
	"lingofriends/internal/nav"
)

type fakeSource struct {
	friends []friend.Friend
	err     error
	calls   int
}

func (s *fakeSource) FetchFriends(context.Context) ([]friend.Friend, error) {
	s.calls++
	return s.friends, s.err
}

type fakeCache struct {
	snap    cache.Snapshot
	err     error
	saved   [][]friend.Friend
	cleared int
}

func (c *fakeCache) Load() (cache.Snapshot, error) { return c.snap, c.err }

func (c *fakeCache) Save(friends []friend.Friend) error {
	c.saved = append(c.saved, friends)
	return nil
}

func (c *fakeCache) Clear() error {
	c.cleared++
	return nil
}

type testApp struct {
	*AppModel
	model  tea.Model
	copied []string
}

func newTestApp(t *testing.T, src FriendsSource, c FriendsCache) *testApp {
	t.Helper()
	router, err := nav.NewRouter("https://app.example.com")
	require.NoError(t, err)
	ta := &testApp{}
	deps := Deps{
		Source: src,
		Router: router,
		Copy: func(s string) error {
			ta.copied = append(ta.copied, s)
			return nil
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if c != nil {
		deps.Cache = c
	}
	ta.AppModel = NewAppModel(deps)
	ta.model = ta.AsTeaModel()
	ta.model.Init()
	ta.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return ta
}

func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	_, cmd := ta.model.Update(msg)
	return cmd
}

// press sends a key and feeds the resulting message back, like the runtime would.
func (ta *testApp) press(s string) {
	if cmd := ta.send(keyMsg(s)); cmd != nil {
		if msg := runQuick(cmd); msg != nil {
			ta.send(msg)
		}
	}
}

// runQuick runs cmd unless it is a timer (spinner, cursor blink).
func runQuick(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func TestApp_InitialStateLoading(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	assert.Equal(t, ModeFriends, ta.Mode)
	assert.Equal(t, friendlist.KindLoading, ta.Friends.State().Kind)
	assert.Equal(t, 1, ta.fetchGen)
}

func TestApp_FetchPopulatesAndSavesCache(t *testing.T) {
	fc := &fakeCache{err: cache.ErrMiss}
	ta := newTestApp(t, &fakeSource{}, fc)

	ta.send(FriendsCachedMsg{Err: cache.ErrMiss})
	assert.Equal(t, friendlist.KindLoading, ta.Friends.State().Kind, "a miss keeps skeletons")

	cmd := ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	assert.Equal(t, friendlist.KindPopulated, ta.Friends.State().Kind)
	assert.False(t, ta.Friends.Fetching())

	require.NotNil(t, cmd)
	ta.send(cmd())
	require.Len(t, fc.saved, 1)
	assert.Len(t, fc.saved[0], 3)
}

func TestApp_CachedListShownUntilFetchCompletes(t *testing.T) {
	fc := &fakeCache{}
	ta := newTestApp(t, &fakeSource{}, fc)

	cached := sampleFriends()[:1]
	ta.send(FriendsCachedMsg{Snapshot: cache.Snapshot{Friends: cached}})
	assert.Equal(t, friendlist.KindPopulated, ta.Friends.State().Kind)
	assert.True(t, ta.Friends.Fetching())
	assert.Len(t, ta.Friends.State().Items, 1)

	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	assert.Len(t, ta.Friends.State().Items, 3)
}

func TestApp_LateCacheDoesNotOverwriteFreshData(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, &fakeCache{})
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	ta.send(FriendsCachedMsg{Snapshot: cache.Snapshot{Friends: sampleFriends()[:1]}})
	assert.Len(t, ta.Friends.State().Items, 3)
}

func TestApp_StaleFetchIgnored(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(RefreshMsg{})
	require.Equal(t, 2, ta.fetchGen)

	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	assert.False(t, ta.Friends.HasData(), "result of superseded fetch is dropped")
	assert.Equal(t, friendlist.KindLoading, ta.Friends.State().Kind)

	ta.send(FriendsLoadedMsg{Gen: 2, Friends: sampleFriends()[:2]})
	assert.Len(t, ta.Friends.State().Items, 2)
}

func TestApp_FetchErrorWithoutData(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(FriendsLoadedMsg{Gen: 1, Err: errors.New("dial tcp: connection refused")})

	st := ta.Friends.State()
	assert.Equal(t, "Empty(error)", st.String())
	assert.Empty(t, ta.Status, "the empty state carries the error")

	ta.press("r")
	assert.Equal(t, 2, ta.fetchGen)
	assert.Equal(t, friendlist.KindLoading, ta.Friends.State().Kind)
}

func TestApp_FetchErrorWithCachedDataStaysPopulated(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, &fakeCache{})
	ta.send(FriendsCachedMsg{Snapshot: cache.Snapshot{Friends: sampleFriends()}})
	ta.send(FriendsLoadedMsg{Gen: 1, Err: errors.New("502 Bad Gateway")})

	assert.Equal(t, friendlist.KindPopulated, ta.Friends.State().Kind)
	assert.True(t, ta.StatusIsError)
	assert.Contains(t, ta.Status, "Refresh failed")
	assert.Contains(t, ta.model.View(), "502 Bad Gateway")
}

func TestApp_OpenChatAndBack(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	ta.press("/")
	for _, r := range "lee" {
		ta.send(keyMsg(string(r)))
	}
	ta.press("enter") // leave search
	ta.press("enter") // open chat

	require.Equal(t, ModeChat, ta.Mode)
	require.Equal(t, 1, ta.Views.Len())
	chat, ok := ta.Views.Peek().(*ChatView)
	require.True(t, ok)
	assert.Equal(t, "2", chat.Friend.ID)
	assert.Equal(t, nav.Destination{Path: "/chat/2", URL: "https://app.example.com/chat/2"}, chat.Destination)

	out := ta.model.View()
	assert.Contains(t, out, "Chat with Bruce Lee")
	assert.Contains(t, out, "/chat/2")

	ta.press("esc")
	assert.Equal(t, ModeFriends, ta.Mode)
	assert.Equal(t, 0, ta.Views.Len())
	assert.Equal(t, "lee", ta.Friends.Search.Query, "query survives the round trip")
	assert.Contains(t, ta.model.View(), "Found 1 result for 'lee'")
}

func TestApp_OpenChatUnknownFriend(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(OpenChatMsg{FriendID: "nope"})
	assert.Equal(t, ModeFriends, ta.Mode)
	assert.True(t, ta.StatusIsError)
}

func TestApp_CopyLink(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	ta.send(OpenChatMsg{FriendID: "1"})

	cmd := ta.send(keyMsg("y"))
	require.NotNil(t, cmd)
	cmd = ta.send(cmd())
	require.NotNil(t, cmd)
	ta.send(cmd())

	assert.Equal(t, []string{"https://app.example.com/chat/1"}, ta.copied)
	assert.Contains(t, ta.Status, "Copied")
	assert.False(t, ta.StatusIsError)
}

func TestApp_KeybindsSuspendedWhileTyping(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})
	ta.press("/")
	require.True(t, ta.Friends.SearchFocused())

	ta.send(keyMsg("q"))
	ta.send(keyMsg(" "))
	assert.Equal(t, "q ", ta.Friends.Search.Query)
	assert.False(t, ta.KeyHandler.LeaderWaiting)

	ta.press("ctrl+l")
	assert.Equal(t, "", ta.Friends.Search.Query)

	cmd := ta.send(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_LeaderMenu(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})

	ta.send(keyMsg(" "))
	require.True(t, ta.KeyHandler.LeaderWaiting)
	out := ta.model.View()
	assert.Contains(t, out, "Refresh")
	assert.Contains(t, out, "Search")
	assert.NotContains(t, out, "Copy link", "chat bindings are hidden on the friends page")

	cmd := ta.send(keyMsg("r"))
	require.NotNil(t, cmd)
	assert.IsType(t, RefreshMsg{}, cmd())
}

func TestApp_BurstSearchInputFromGrid(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})

	ta.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/lee")})

	assert.True(t, ta.Friends.SearchFocused())
	assert.Equal(t, "lee", ta.Friends.Search.Query)
	assert.Contains(t, ta.model.View(), "Found 1 result for 'lee'")
}

func TestApp_QuitFromGrid(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	cmd := ta.send(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ForgetCacheConfirmed(t *testing.T) {
	fc := &fakeCache{err: cache.ErrMiss}
	ta := newTestApp(t, &fakeSource{}, fc)
	ta.send(FriendsLoadedMsg{Gen: 1, Friends: sampleFriends()})

	ta.press(" ")
	ta.press("C")
	require.Equal(t, 1, ta.Overlays.Len())
	out := ta.model.View()
	assert.Contains(t, out, "Forget cached friends?")
	assert.Contains(t, out, "3 friends")

	// q is not quit while the modal is open.
	assert.Nil(t, ta.send(keyMsg("q")))

	cmd := ta.send(keyMsg("y"))
	require.NotNil(t, cmd)
	for _, msg := range cmd().(tea.BatchMsg) {
		ta.send(msg())
	}
	assert.Equal(t, 0, ta.Overlays.Len())

	cmd = ta.send(ForgetCacheMsg{})
	require.NotNil(t, cmd)
	ta.send(cmd())
	assert.Equal(t, 1, fc.cleared)
	assert.Equal(t, "Cached friends forgotten", ta.Status)
	assert.False(t, ta.StatusIsError)
}

func TestApp_ForgetCacheCancelled(t *testing.T) {
	fc := &fakeCache{err: cache.ErrMiss}
	ta := newTestApp(t, &fakeSource{}, fc)

	ta.send(ShowForgetCacheMsg{})
	require.Equal(t, 1, ta.Overlays.Len())
	ta.press("esc")
	assert.Equal(t, 0, ta.Overlays.Len())
	assert.Equal(t, 0, fc.cleared)
	assert.Equal(t, friendlist.KindLoading, ta.Friends.State().Kind, "esc does not reach the page")
}

func TestApp_ForgetCacheWithoutCache(t *testing.T) {
	ta := newTestApp(t, &fakeSource{}, nil)
	ta.send(ShowForgetCacheMsg{})
	assert.Equal(t, 0, ta.Overlays.Len())
	assert.True(t, ta.StatusIsError)
}

func TestCommands(t *testing.T) {
	src := &fakeSource{friends: sampleFriends()}
	msg := fetchFriendsCmd(src, 7)()
	loaded, ok := msg.(FriendsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 7, loaded.Gen)
	assert.Len(t, loaded.Friends, 3)
	assert.Equal(t, 1, src.calls)

	assert.Nil(t, loadCachedCmd(nil))
	assert.Nil(t, saveFriendsCmd(nil, nil))
	assert.Nil(t, clearCacheCmd(nil))

	fc := &fakeCache{err: cache.ErrMiss}
	cached := loadCachedCmd(fc)().(FriendsCachedMsg)
	assert.ErrorIs(t, cached.Err, cache.ErrMiss)

	failing := copyCmd(func(string) error { return errors.New("no clipboard") }, "x")().(StatusMsg)
	assert.True(t, failing.IsError)
}
