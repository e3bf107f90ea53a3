package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lingofriends/internal/friend"
	"lingofriends/internal/friendlist"
	"lingofriends/internal/search"
)

const (
	pageTitle         = "Friends"
	searchPlaceholder = "Search friends by name, location, or language..."
	clearGlyph        = "✕"

	defaultWidth  = 80
	defaultHeight = 24
	gridGap       = 1
	// statusReserve keeps a line free for the app status line.
	statusReserve = 1
)

// FriendsView is the friends page: title, search bar, result summary and a
// grid of friend cards.
type FriendsView struct {
	// Search owns the query. It is the only place the query is stored.
	Search   search.State
	Selected int

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	focus    FocusManager

	friends  []friend.Friend
	hasData  bool
	fetching bool
	ticking  bool
	err      error

	columns int // fixed column count; 0 picks from width
	width   int
	height  int
}

// Ensure FriendsView implements View.
var _ View = (*FriendsView)(nil)

// NewFriendsView creates the view in its initial loading state. columns
// fixes the grid width; 0 picks 1-3 columns from the terminal width.
func NewFriendsView(columns int) *FriendsView {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = "/ "
	ti.CharLimit = 0

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	v := &FriendsView{
		input:    ti,
		spinner:  s,
		viewport: viewport.New(defaultWidth, defaultHeight),
		fetching: true,
		columns:  columns,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	v.focus = FocusManager{
		Current:  FocusGrid,
		Order:    []string{FocusSearch, FocusGrid},
		OnChange: v.onFocusChange,
	}
	v.layout()
	return v
}

func (v *FriendsView) onFocusChange(_, to string) {
	if to == FocusSearch {
		v.input.Focus()
		return
	}
	v.input.Blur()
}

// Init implements View.
func (v *FriendsView) Init() tea.Cmd {
	return v.startSpinner()
}

func (v *FriendsView) startSpinner() tea.Cmd {
	if v.ticking {
		return nil
	}
	v.ticking = true
	return v.spinner.Tick
}

// State derives the list state from the current data and query.
func (v *FriendsView) State() friendlist.State {
	return friendlist.Derive(friendlist.Input{
		Loading: v.fetching && !v.hasData,
		Err:     v.err,
		Friends: v.friends,
		Query:   v.Search.Query,
	})
}

// HasData reports whether any list, cached or fetched, has arrived.
func (v *FriendsView) HasData() bool {
	return v.hasData
}

// Fetching reports whether a fetch is in flight.
func (v *FriendsView) Fetching() bool {
	return v.fetching
}

// Friends returns the unfiltered list.
func (v *FriendsView) Friends() []friend.Friend {
	return v.friends
}

// SetFriends replaces the list. A cached list keeps the fetch spinner
// running; a fresh one ends the fetch.
func (v *FriendsView) SetFriends(friends []friend.Friend, fresh bool) {
	if friends == nil {
		friends = []friend.Friend{}
	}
	v.friends = friends
	v.hasData = true
	if fresh {
		v.fetching = false
		v.err = nil
	}
	v.clampSelection()
	v.layout()
}

// SetError ends the fetch with err.
func (v *FriendsView) SetError(err error) {
	v.fetching = false
	v.err = err
	v.layout()
}

// BeginFetch marks a fetch as in flight and starts the spinner.
func (v *FriendsView) BeginFetch() tea.Cmd {
	v.fetching = true
	v.err = nil
	v.layout()
	return v.startSpinner()
}

// SearchFocused reports whether keystrokes go to the search bar.
func (v *FriendsView) SearchFocused() bool {
	return v.focus.Is(FocusSearch)
}

// FocusSearch moves focus to the search bar.
func (v *FriendsView) FocusSearch() tea.Cmd {
	v.focus.SetFocus(FocusSearch)
	v.layout()
	return textinput.Blink
}

// ClearSearch empties the query and the search bar.
func (v *FriendsView) ClearSearch() {
	v.input.Reset()
	v.setQuery("")
}

func (v *FriendsView) setQuery(q string) {
	if q == v.Search.Query {
		return
	}
	if q == "" {
		v.Search.Clear()
	} else {
		v.Search.SetQuery(q)
	}
	v.Selected = 0
	v.viewport.GotoTop()
	v.layout()
}

// SelectedFriend returns the highlighted card's friend.
func (v *FriendsView) SelectedFriend() (friend.Friend, bool) {
	st := v.State()
	if st.Kind != friendlist.KindPopulated || v.Selected < 0 || v.Selected >= len(st.Items) {
		return friend.Friend{}, false
	}
	return st.Items[v.Selected], true
}

// FriendByID looks a friend up in the unfiltered list.
func (v *FriendsView) FriendByID(id string) (friend.Friend, bool) {
	for _, f := range v.friends {
		if f.ID == id {
			return f, true
		}
	}
	return friend.Friend{}, false
}

// Columns returns the grid column count for the current width.
func (v *FriendsView) Columns() int {
	if v.columns > 0 {
		return v.columns
	}
	switch {
	case v.width < 60:
		return 1
	case v.width < 100:
		return 2
	default:
		return 3
	}
}

// Update implements View.
func (v *FriendsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.layout()
		return v, nil
	case spinner.TickMsg:
		if !v.fetching {
			v.ticking = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		if v.SearchFocused() {
			return v.updateSearch(msg)
		}
		return v.updateGrid(msg)
	}

	if v.SearchFocused() {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *FriendsView) updateSearch(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if v.Search.Active() {
			v.ClearSearch()
			return v, nil
		}
		v.focus.SetFocus(FocusGrid)
		v.layout()
		return v, nil
	case "enter", "tab", "shift+tab", "down":
		v.focus.SetFocus(FocusGrid)
		v.layout()
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.setQuery(v.input.Value())
	return v, cmd
}

func (v *FriendsView) updateGrid(msg tea.KeyMsg) (View, tea.Cmd) {
	// Input read in one burst (paste, fast typing) arrives as one KeyMsg;
	// "/lee" opens the search bar and types the rest.
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 && msg.Runes[0] == '/' {
		focusCmd := v.FocusSearch()
		rest := msg
		rest.Runes = msg.Runes[1:]
		_, cmd := v.updateSearch(rest)
		return v, tea.Batch(focusCmd, cmd)
	}
	cols := v.Columns()
	switch msg.String() {
	case "/", "tab", "shift+tab":
		return v, v.FocusSearch()
	case "left", "h":
		v.move(-1, false)
	case "right", "l":
		v.move(1, false)
	case "up", "k":
		v.move(-cols, true)
	case "down", "j":
		v.move(cols, true)
	case "home", "g":
		v.Selected = 0
	case "end", "G":
		v.Selected = max(len(v.State().Items)-1, 0)
	case "enter":
		if f, ok := v.SelectedFriend(); ok {
			id := f.ID
			return v, func() tea.Msg { return OpenChatMsg{FriendID: id} }
		}
		return v, nil
	case "r":
		return v, func() tea.Msg { return RefreshMsg{} }
	case "c", "esc":
		if v.Search.Active() {
			v.ClearSearch()
		}
		return v, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	default:
		return v, nil
	}
	v.layout()
	return v, nil
}

// move shifts the selection. Vertical moves past the last row land on the
// last card; other out-of-range moves are ignored.
func (v *FriendsView) move(delta int, vertical bool) {
	n := len(v.State().Items)
	if n == 0 {
		return
	}
	next := v.Selected + delta
	switch {
	case next >= 0 && next < n:
		v.Selected = next
	case vertical && next >= n && (n-1)/v.Columns() > v.Selected/v.Columns():
		v.Selected = n - 1
	}
}

func (v *FriendsView) clampSelection() {
	n := len(v.State().Items)
	if v.Selected >= n {
		v.Selected = max(n-1, 0)
	}
}

// layout sizes the search bar and viewport and refreshes the grid content.
func (v *FriendsView) layout() {
	v.input.Width = max(v.width-12, 10)
	header := v.renderHeader()
	footer := v.renderFooter()
	v.viewport.Width = v.width
	v.viewport.Height = max(v.height-lipgloss.Height(header)-lipgloss.Height(footer)-statusReserve, 1)
	v.viewport.SetContent(v.renderBody())
	v.ensureVisible()
}

// ensureVisible scrolls the viewport so the selected card's row is in view.
func (v *FriendsView) ensureVisible() {
	if v.State().Kind != friendlist.KindPopulated {
		return
	}
	top := (v.Selected / v.Columns()) * cardHeight
	bottom := top + cardHeight
	switch {
	case top < v.viewport.YOffset:
		v.viewport.SetYOffset(top)
	case bottom > v.viewport.YOffset+v.viewport.Height:
		v.viewport.SetYOffset(bottom - v.viewport.Height)
	}
}

func (v *FriendsView) cardWidth() int {
	cols := v.Columns()
	return (v.width - (cols-1)*gridGap) / cols
}

func (v *FriendsView) renderHeader() string {
	var b strings.Builder
	title := Styles.Title.Render(pageTitle)
	if v.fetching {
		title += " " + v.spinner.View()
		if v.hasData {
			title += Styles.Muted.Render(" refreshing")
		}
	}
	b.WriteString(title + "\n")

	box := Styles.SearchBox
	if v.SearchFocused() {
		box = Styles.SearchBoxFocused
	}
	bar := v.input.View()
	if v.Search.Query != "" {
		bar += " " + Styles.Muted.Render(clearGlyph)
	}
	b.WriteString(box.Width(max(v.width-2, 12)).Render(bar))

	st := v.State()
	if st.ShowSummary() {
		line := Styles.Normal.Render(st.Summary())
		if st.SummaryClearable() {
			line += "  " + Styles.Link.Render("Clear search") + Styles.Muted.Render(" (ctrl+l)")
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (v *FriendsView) renderFooter() string {
	if v.SearchFocused() {
		return renderFooter(v.width,
			hint("enter", "results"),
			hint("esc", "clear/back"),
			hint("ctrl+l", "clear"),
		)
	}
	return renderFooter(v.width,
		hint("/", "search"),
		hint("←↑↓→", "select"),
		hint("enter", "message"),
		hint("r", "refresh"),
		hint("SPC", "commands"),
		hint("q", "quit"),
	)
}

// renderBody renders the unclipped grid or message for the current state.
func (v *FriendsView) renderBody() string {
	st := v.State()
	w := v.cardWidth()
	switch st.Kind {
	case friendlist.KindLoading:
		cards := make([]string, st.Skeletons)
		for i := range cards {
			cards[i] = renderSkeleton(w)
		}
		return v.grid(cards)
	case friendlist.KindPopulated:
		cards := make([]string, len(st.Items))
		for i, f := range st.Items {
			cards[i] = renderCard(f, w, i == v.Selected)
		}
		return v.grid(cards)
	default:
		return v.renderEmpty(st)
	}
}

func (v *FriendsView) grid(cards []string) string {
	cols := v.Columns()
	gap := strings.Repeat(" ", gridGap)
	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		parts := make([]string, 0, 2*cols)
		for i, c := range cards[start:end] {
			if i > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(rows, "\n")
}

func (v *FriendsView) renderEmpty(st friendlist.State) string {
	lines := []string{
		Styles.Name.Render(st.Headline()),
		Styles.Muted.Render(st.Guidance()),
	}
	switch {
	case st.CanClear():
		lines = append(lines, "", Styles.Link.Render("Clear your search")+Styles.Muted.Render(" (ctrl+l)"))
	case st.CanRetry():
		lines = append(lines, "", Styles.Link.Render("Retry")+Styles.Muted.Render(" (r)"))
	}
	box := Styles.EmptyBox
	if st.Reason == friendlist.ReasonError {
		box = box.BorderForeground(lipgloss.Color(ColorDanger))
	}
	return box.Width(max(v.width-2, 20)).Render(strings.Join(lines, "\n"))
}

// View implements View.
func (v *FriendsView) View() string {
	return v.renderHeader() + "\n" + v.viewport.View() + "\n" + v.renderFooter()
}
