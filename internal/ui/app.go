package ui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"lingofriends/internal/cache"
	"lingofriends/internal/nav"
)

// Deps are the collaborators of the app model.
type Deps struct {
	Source FriendsSource
	// Cache is optional; nil disables the instant cached render.
	Cache  FriendsCache
	Router *nav.Router
	// Columns fixes the grid width; 0 picks from the terminal width.
	Columns int
	// Copy writes to the clipboard; nil uses the system clipboard.
	Copy   func(string) error
	Logger *slog.Logger
}

// AppModel is the root model. It owns data loading and navigation; the
// friends list is always at the bottom and other views are pushed on Views.
type AppModel struct {
	Mode       AppMode
	Friends    *FriendsView
	Views      ViewStack
	Overlays   OverlayStack
	KeyHandler *KeyHandler

	Status        string
	StatusIsError bool

	source FriendsSource
	cache  FriendsCache
	router *nav.Router
	copy   func(string) error
	logger *slog.Logger

	// fetchGen identifies the latest fetch; older results are ignored.
	fetchGen int
	// fresh is set once a fetch succeeded, so a late cache read cannot
	// overwrite newer data.
	fresh bool
	size  *tea.WindowSizeMsg
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(deps Deps) *AppModel {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	copyFn := deps.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	return &AppModel{
		Mode:       ModeFriends,
		Friends:    NewFriendsView(deps.Columns),
		KeyHandler: NewKeyHandler(defaultKeybinds()),
		source:     deps.Source,
		cache:      deps.Cache,
		router:     deps.Router,
		copy:       copyFn,
		logger:     logger,
	}
}

func defaultKeybinds() *KeybindRegistry {
	friends := []AppMode{ModeFriends}
	chat := []AppMode{ModeChat}
	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+r", func() tea.Msg { return RefreshMsg{} }, "Refresh")
	reg.BindWithDescForMode("ctrl+l", func() tea.Msg { return ClearSearchMsg{} }, "Clear search", friends)
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC r", func() tea.Msg { return RefreshMsg{} }, "Refresh")
	reg.BindWithDescForMode("SPC s", func() tea.Msg { return FocusSearchMsg{} }, "Search", friends)
	reg.BindWithDescForMode("SPC x", func() tea.Msg { return ClearSearchMsg{} }, "Clear search", friends)
	reg.BindWithDescForMode("SPC C", func() tea.Msg { return ShowForgetCacheMsg{} }, "Forget cache", friends)
	reg.BindWithDescForMode("SPC y", func() tea.Msg { return CopyLinkMsg{} }, "Copy link", chat)
	reg.BindWithDescForMode("SPC b", func() tea.Msg { return BackMsg{} }, "Back", chat)
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model: render the cached list if there is one and
// fetch a fresh copy.
func (a *appModelAdapter) Init() tea.Cmd {
	a.fetchGen++
	return tea.Batch(
		a.Friends.Init(),
		loadCachedCmd(a.cache),
		fetchFriendsCmd(a.source, a.fetchGen),
	)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size = &msg
		_, cmd := a.Friends.Update(msg)
		return a, tea.Batch(cmd, a.Views.Broadcast(msg))
	case FriendsCachedMsg:
		a.handleCached(msg)
		return a, nil
	case FriendsLoadedMsg:
		return a, a.handleLoaded(msg)
	case friendsSavedMsg:
		if msg.Err != nil {
			a.logger.Warn("save friends cache", "err", msg.Err)
		}
		return a, nil
	case RefreshMsg:
		return a, a.refresh()
	case OpenChatMsg:
		return a, a.openChat(msg.FriendID)
	case BackMsg:
		a.back()
		return a, nil
	case FocusSearchMsg:
		if a.Mode != ModeFriends {
			return a, nil
		}
		return a, a.Friends.FocusSearch()
	case ClearSearchMsg:
		a.Friends.ClearSearch()
		return a, nil
	case CopyLinkMsg:
		if chat, ok := a.Views.Peek().(*ChatView); ok {
			return a, copyCmd(a.copy, chat.Link())
		}
		return a, nil
	case StatusMsg:
		a.setStatus(msg.Text, msg.IsError)
		return a, nil
	case ShowForgetCacheMsg:
		a.showForgetCache()
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case ForgetCacheMsg:
		return a, clearCacheCmd(a.cache)
	case cacheClearedMsg:
		if msg.Err != nil {
			a.logger.Warn("clear friends cache", "err", msg.Err)
			a.setStatus("Could not forget cache: "+msg.Err.Error(), true)
			return a, nil
		}
		a.setStatus("Cached friends forgotten", false)
		return a, nil
	case tea.KeyMsg:
		a.clearStatus()
		if msg.String() != "ctrl+c" {
			if cmd, handled := a.Overlays.HandleKey(msg); handled {
				return a, cmd
			}
		}
		if a.KeyHandler != nil && a.keybindsActive(msg) {
			if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
				return a, cmd
			}
		}
	}

	// The spinner belongs to the friends view even while a chat is open.
	if _, isKey := msg.(tea.KeyMsg); !isKey && a.Views.Len() > 0 {
		_, cmd := a.Friends.Update(msg)
		topCmd, _ := a.Views.UpdateTop(msg)
		return a, tea.Batch(cmd, topCmd)
	}
	if cmd, ok := a.Views.UpdateTop(msg); ok {
		return a, cmd
	}
	_, cmd := a.Friends.Update(msg)
	return a, cmd
}

// keybindsActive reports whether msg may be handled by the keybind system.
// While the search bar has focus only ctrl chords are, so text (including
// space and q) reaches the input.
func (a *AppModel) keybindsActive(msg tea.KeyMsg) bool {
	if a.Mode != ModeFriends || !a.Friends.SearchFocused() {
		return true
	}
	return strings.HasPrefix(msg.String(), "ctrl+")
}

func (a *AppModel) handleCached(msg FriendsCachedMsg) {
	if msg.Err != nil {
		if !errors.Is(msg.Err, cache.ErrMiss) {
			a.logger.Warn("load friends cache", "err", msg.Err)
		}
		return
	}
	if a.fresh {
		return
	}
	a.logger.Debug("showing cached friends", "count", len(msg.Snapshot.Friends), "fetched_at", msg.Snapshot.FetchedAt)
	a.Friends.SetFriends(msg.Snapshot.Friends, false)
}

func (a *AppModel) handleLoaded(msg FriendsLoadedMsg) tea.Cmd {
	if msg.Gen != a.fetchGen {
		a.logger.Debug("dropping stale fetch", "gen", msg.Gen, "current", a.fetchGen)
		return nil
	}
	if msg.Err != nil {
		a.logger.Error("fetch friends", "err", msg.Err)
		a.Friends.SetError(msg.Err)
		if a.Friends.HasData() {
			a.setStatus("Refresh failed: "+msg.Err.Error(), true)
		}
		return nil
	}
	a.fresh = true
	a.logger.Info("fetched friends", "count", len(msg.Friends))
	a.Friends.SetFriends(msg.Friends, true)
	return saveFriendsCmd(a.cache, a.Friends.Friends())
}

func (a *AppModel) refresh() tea.Cmd {
	a.fetchGen++
	a.clearStatus()
	return tea.Batch(a.Friends.BeginFetch(), fetchFriendsCmd(a.source, a.fetchGen))
}

func (a *AppModel) openChat(id string) tea.Cmd {
	f, ok := a.Friends.FriendByID(id)
	if !ok {
		a.setStatus("Unknown friend "+id, true)
		return nil
	}
	dest, err := a.router.Resolve(nav.OpenChat{FriendID: id})
	if err != nil {
		a.setStatus(err.Error(), true)
		return nil
	}
	a.logger.Debug("open chat", "path", dest.Path)
	chat := NewChatView(f, dest)
	var cmd tea.Cmd
	if a.size != nil {
		_, cmd = chat.Update(*a.size)
	}
	a.Views.Push(chat)
	a.Mode = ModeChat
	return tea.Batch(cmd, chat.Init())
}

func (a *AppModel) showForgetCache() {
	if a.cache == nil {
		a.setStatus("Cache is disabled", true)
		return
	}
	if a.Overlays.Len() > 0 {
		return
	}
	a.Overlays.Push(Overlay{View: NewForgetCacheConfirmModal(len(a.Friends.Friends())), Dismiss: "esc"})
}

func (a *AppModel) back() {
	a.Views.Pop()
	if a.Views.Len() == 0 {
		a.Mode = ModeFriends
	}
}

func (a *AppModel) setStatus(text string, isErr bool) {
	a.Status = text
	a.StatusIsError = isErr
}

func (a *AppModel) clearStatus() {
	a.Status = ""
	a.StatusIsError = false
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var base string
	if top := a.Views.Peek(); top != nil {
		base = top.View()
	} else {
		base = a.Friends.View()
	}
	if a.Overlays.Len() > 0 {
		w, h := 0, 0
		if a.size != nil {
			w, h = a.size.Width, a.size.Height
		}
		return a.Overlays.Render(base, w, h)
	}
	if a.Status != "" {
		style := Styles.Status
		if a.StatusIsError {
			style = Styles.Error
		}
		base += "\n" + style.Render(a.Status)
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	return base
}
