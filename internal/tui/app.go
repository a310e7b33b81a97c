package tui

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/suhanovs/paintx-frontend/internal/adapter"
	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/session"
	"github.com/suhanovs/paintx-frontend/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateDetail
	StateHelp
)

// Layout
const (
	// Header line with the active filter and footer status line
	ChromeHeight = 2

	DefaultNarrowWidth = 100
	DefaultLookahead   = 4
	pageLinkSpan       = 2
	spinnerInterval    = 100 * time.Millisecond
)

// Opener launches images and pages outside the terminal
type Opener interface {
	OpenImage(url string) error
	OpenPage(url string) error
}

// Deps are the collaborators the model drives
type Deps struct {
	Backend  domain.Backend
	Loader   *catalog.Loader
	Bus      *catalog.Bus
	Sessions *session.Cache           // nil disables return-to-list restore
	URLs     *catalog.URLSync         // nil disables URL mirroring
	Commits  *ChannelObserver[string] // debounced URL commits from URLs
	Tokens   catalog.TokenSource
	Opener   Opener
	Images   domain.ImageURLs
}

// Options tunes browsing behaviour
type Options struct {
	SiteURL      string
	NarrowWidth  int           // below this width the list scrolls infinitely
	Lookahead    int           // rows from the end that load the next page
	RestoreDelay time.Duration // wait before reapplying a restored scroll offset
	InitialWidth int           // terminal width known before the first resize
}

type choiceTarget int

const (
	choiceNone choiceTarget = iota
	choiceStatus
	choiceSort
	choiceStrategy
)

// actionQueue holds filter fetches issued by the bus subscriber until the
// update loop schedules them.
type actionQueue struct {
	mu      sync.Mutex
	actions []catalog.Action
}

func (q *actionQueue) push(a catalog.Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.actions = append(q.actions, a)
}

func (q *actionQueue) take() []catalog.Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.actions
	q.actions = nil
	return out
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State     ApplicationState
	prevState ApplicationState
	Ready     bool

	deps        Deps
	opts        Options
	pending     *actionQueue
	unsubscribe func()
	trigger     catalog.ContinuationTrigger

	// UI Components
	List    *components.PaintingList
	Detail  components.DetailView
	Search  components.InputModal
	Price   components.InputModal
	Choice  components.ChoiceModal
	Inquiry components.InquiryModal

	choiceFor choiceTarget
	detailID  string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
	URL          string
	Liked        map[string]bool

	snap       catalog.Snapshot
	lastLoad   tea.Cmd
	retryArmed bool // a failed page may be retried by scrolling
}

// NewModel creates a new application model and subscribes it to the
// filter bus. Every emission switches the loader to the new filter
// immediately; the fetch itself runs as a command.
func NewModel(deps Deps, opts Options) Model {
	if opts.NarrowWidth <= 0 {
		opts.NarrowWidth = DefaultNarrowWidth
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = DefaultLookahead
	}
	if opts.RestoreDelay <= 0 {
		opts.RestoreDelay = session.RestoreScrollDelay
	}

	pending := &actionQueue{}
	loader, urls := deps.Loader, deps.URLs
	unsubscribe := deps.Bus.Subscribe(func(q domain.CatalogQuery) {
		pending.push(loader.BeginFilter(q))
		if urls != nil {
			urls.Update(q, 1)
		}
	})

	liked := map[string]bool{}
	list := components.NewPaintingList("Paintings")
	list.SetLiked(liked)

	return Model{
		State:       StateBrowsing,
		deps:        deps,
		opts:        opts,
		pending:     pending,
		unsubscribe: unsubscribe,
		trigger:     catalog.SelectTrigger(opts.InitialWidth, opts.NarrowWidth, opts.Lookahead, deps.Loader),
		List:        list,
		Detail:      components.NewDetailView(),
		Search:      components.NewInputModal("title, artist or style...", 120),
		Price:       components.NewInputModal("e.g. 500", 9),
		Choice:      components.NewChoiceModal(),
		Inquiry:     components.NewInquiryModal(),
		Liked:       liked,
		URL:         "/",
		Loading:     true,
	}
}

// Close detaches the model from the filter bus
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Trigger returns the active continuation strategy
func (m Model) Trigger() catalog.ContinuationTrigger { return m.trigger }

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		MountCmd(m.deps.Sessions, m.deps.Loader, m.deps.Bus),
		LoadLikedIDsCmd(m.deps.Backend, m.deps.Tokens),
		TickCmd(spinnerInterval),
	}
	if m.deps.Commits != nil {
		cmds = append(cmds, m.waitForURL())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForURL() tea.Cmd {
	return m.deps.Commits.Wait(func(url string) tea.Msg { return URLCommittedMsg{URL: url} })
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		m.selectTrigger()
		next := m.checkViewport(false)
		return m, next

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(spinnerInterval)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case RestoredMsg:
		m.syncFromLoader(false)
		return m, RestoreScrollCmd(m.opts.RestoreDelay, msg.ScrollOffset)

	case RestoreScrollMsg:
		m.List.SetSelectedIndex(msg.ScrollOffset)
		next := m.checkViewport(false)
		return m, next

	case URLCommittedMsg:
		m.URL = msg.URL
		return m, m.waitForURL()

	case DetailLoadedMsg:
		if msg.Detail == nil || msg.Detail.ID != m.detailID {
			return m, nil
		}
		m.Detail.SetDetail(msg.Detail, m.Liked[msg.Detail.ID])
		return m, nil

	case RelatedLoadedMsg:
		if msg.PaintingID == m.detailID {
			m.Detail.SetRelated(msg.Kind, msg.Items)
		}
		return m, nil

	case LikeToggledMsg:
		if msg.Result.Liked {
			m.Liked[msg.PaintingID] = true
			m.StatusMsg = "Added to liked paintings"
		} else {
			delete(m.Liked, msg.PaintingID)
			m.StatusMsg = "Removed from liked paintings"
		}
		m.StatusIsErr = false
		if msg.PaintingID == m.detailID {
			m.Detail.SetLiked(msg.Result.Liked, msg.Result.LikesCount)
		}
		return m, ClearStatusCmd(3 * time.Second)

	case LikedIDsMsg:
		for _, id := range msg.IDs {
			m.Liked[id] = true
		}
		return m, nil

	case InquirySentMsg:
		m.StatusMsg = "Inquiry sent. The gallery will reply by email."
		m.StatusIsErr = false
		return m, ClearStatusCmd(5 * time.Second)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		if errors.Is(msg.Err, domain.ErrRateLimited) {
			m.StatusMsg = "Too many requests, please try again later"
		}
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	switch msg.Outcome {
	case catalog.OutcomeStale, catalog.OutcomeDropped:
		// A newer request owns the list
		m.Loading = m.deps.Loader.Snapshot().Loading
		m.List.SetLoading(m.Loading)
		return m, nil

	case catalog.OutcomeFailed:
		m.syncFromLoader(true)
		m.retryArmed = true
		m.StatusMsg = ErrMsg{Err: msg.Err, Context: "loading paintings"}.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)
	}

	m.syncFromLoader(msg.Append)
	if m.trigger.Mode() == catalog.ModePageLinks && m.deps.URLs != nil {
		m.deps.URLs.Update(m.snap.Query, m.snap.Page)
	}
	next := m.checkViewport(false)
	return m, next
}

// syncFromLoader copies the loader state into the list.
func (m *Model) syncFromLoader(keepCursor bool) {
	m.snap = m.deps.Loader.Snapshot()
	m.Loading = m.snap.Loading
	m.List.SetLoading(m.snap.Loading)
	m.List.SetItems(m.snap.Items, keepCursor)
	m.List.SetTitle(listTitle(m.snap))
}

// checkViewport asks the trigger whether the visible rows call for the
// next page. After a failed page only a move made by the user retries,
// and only once per failure.
func (m *Model) checkViewport(userMove bool) tea.Cmd {
	if m.State != StateBrowsing || m.Loading {
		return nil
	}
	last := m.List.LastVisible()
	if last < 0 {
		return nil
	}
	failed := m.snap.State == catalog.StateError
	if failed && (!userMove || !m.retryArmed) {
		return nil
	}
	action := m.trigger.Viewport(last, len(m.snap.Items), m.snap.HasMore)
	if action == nil {
		return nil
	}
	if failed {
		m.retryArmed = false
	}
	m.Loading = true
	m.List.SetLoading(true)
	m.lastLoad = RunActionCmd(action, true)
	return m.lastLoad
}

// selectPage navigates to page n when the trigger uses page links.
func (m *Model) selectPage(n int) tea.Cmd {
	if m.Loading || n < 1 || (m.snap.TotalPages > 0 && n > m.snap.TotalPages) {
		return nil
	}
	action := m.trigger.Select(n)
	if action == nil {
		return nil
	}
	m.Loading = true
	m.List.SetLoading(true)
	m.lastLoad = RunActionCmd(action, false)
	return m.lastLoad
}

// flushFilters schedules the fetches queued by bus emissions.
func (m *Model) flushFilters() tea.Cmd {
	actions := m.pending.take()
	if len(actions) == 0 {
		return nil
	}
	m.List.ClearFilter()
	m.syncFromLoader(false)
	m.Loading = true
	m.List.SetLoading(true)

	loader, bus := m.deps.Loader, m.deps.Bus
	m.lastLoad = RunActionCmd(func(ctx context.Context) (catalog.Outcome, error) {
		return loader.ApplyFilter(ctx, bus.Current())
	}, false)

	cmds := make([]tea.Cmd, 0, len(actions))
	for _, a := range actions {
		cmds = append(cmds, RunActionCmd(a, false))
	}
	return tea.Batch(cmds...)
}

// patchFilter edits one field of the active filter and emits it.
func (m *Model) patchFilter(edit func(q *domain.CatalogQuery)) tea.Cmd {
	m.deps.Bus.Patch(edit)
	return m.flushFilters()
}

func (m *Model) retry() tea.Cmd {
	if m.Loading {
		return nil
	}
	if m.snap.State == catalog.StateError && m.lastLoad != nil {
		m.Loading = true
		m.List.SetLoading(true)
		return m.lastLoad
	}
	m.deps.Bus.Emit(m.deps.Bus.Current())
	return m.flushFilters()
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = m.prevState
		return m, nil
	}

	// Modals take every key while visible
	if m.Inquiry.IsVisible() {
		var cmd tea.Cmd
		var in *domain.Inquiry
		m.Inquiry, cmd, in = m.Inquiry.Update(msg)
		if in != nil {
			m.StatusMsg = "Sending inquiry..."
			m.StatusIsErr = false
			return m, tea.Batch(cmd, SubmitInquiryCmd(m.deps.Backend, m.deps.Tokens, *in))
		}
		return m, cmd
	}

	if m.Search.IsVisible() {
		var cmd tea.Cmd
		var changed bool
		m.Search, cmd, _, changed = m.Search.Update(msg)
		if changed {
			text := m.Search.Value()
			next := tea.Batch(cmd, m.patchFilter(func(q *domain.CatalogQuery) { q.Text = text }))
			return m, next
		}
		return m, cmd
	}

	if m.Price.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Price, cmd, submitted, _ = m.Price.Update(msg)
		if submitted {
			next := tea.Batch(cmd, m.applyMinPrice(m.Price.Value()))
			return m, next
		}
		return m, cmd
	}

	if m.Choice.IsVisible() {
		_, sel := m.Choice.HandleKey(msg.String())
		if sel == nil {
			return m, nil
		}
		next := m.applyChoice(*sel)
		return m, next
	}

	if m.State == StateDetail {
		return m.handleDetailKey(msg)
	}

	// Local filter typing owns the keyboard
	if m.List.IsFilterTyping() {
		return m, m.List.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.prevState = m.State
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Open):
		p := m.List.SelectedPainting()
		if p == nil {
			return m, nil
		}
		next := m.openPainting(p.ID)
		return m, next

	case key.Matches(msg, Keys.LocalFilter):
		m.List.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Search.Show("Search paintings", m.deps.Bus.Current().Text, "Results update as you type. enter/esc to close")
		return m, nil

	case key.Matches(msg, Keys.Availability):
		m.choiceFor = choiceStatus
		m.Choice.Show("Availability", components.StatusOptions(), string(m.deps.Bus.Current().Status))
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.choiceFor = choiceSort
		m.Choice.Show("Sort by", components.SortOptions(), string(m.deps.Bus.Current().Sort))
		return m, nil

	case key.Matches(msg, Keys.Strategy):
		m.choiceFor = choiceStrategy
		m.Choice.Show("Selection", components.StrategyOptions(), string(m.deps.Bus.Current().Strategy))
		return m, nil

	case key.Matches(msg, Keys.MinPrice):
		current := ""
		if p := m.deps.Bus.Current().MinPrice; p != nil {
			current = strconv.Itoa(*p)
		}
		m.Price.Show("Minimum price", current, "Whole units. Leave empty for no minimum")
		return m, nil

	case key.Matches(msg, Keys.ClearFilters):
		m.deps.Bus.Emit(domain.DefaultQuery())
		next := m.flushFilters()
		return m, next

	case key.Matches(msg, Keys.PrevPage):
		next := m.selectPage(m.snap.Page - 1)
		return m, next

	case key.Matches(msg, Keys.NextPage):
		next := m.selectPage(m.snap.Page + 1)
		return m, next

	case key.Matches(msg, Keys.Retry):
		next := m.retry()
		return m, next

	case key.Matches(msg, Keys.Like):
		if p := m.List.SelectedPainting(); p != nil {
			return m, ToggleLikeCmd(m.deps.Backend, m.deps.Tokens, p.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.OpenImage):
		if p := m.List.SelectedPainting(); p != nil {
			return m, m.openImage(firstNonEmpty(m.deps.Images.Mid(p.MidResFile), m.deps.Images.Thumb(p.ThumbnailFile)))
		}
		return m, nil

	case key.Matches(msg, Keys.OpenWeb):
		if p := m.List.SelectedPainting(); p != nil {
			return m, m.openPage(p.Slug)
		}
		return m, nil

	case key.Matches(msg, Keys.Contact):
		subject := ""
		if p := m.List.SelectedPainting(); p != nil {
			subject = p.DisplayTitle()
		}
		m.Inquiry.Show(subject)
		return m, nil
	}

	cmd := m.List.Update(msg)
	next := tea.Batch(cmd, m.checkViewport(true))
	return m, next
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.prevState = m.State
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Back):
		next := m.backToList()
		return m, next

	case msg.String() == "enter":
		if r := m.Detail.SelectedRelated(); r != nil {
			next := m.openPainting(r.ID)
			return m, next
		}
		return m, nil

	case key.Matches(msg, Keys.Like):
		if m.detailID != "" {
			return m, ToggleLikeCmd(m.deps.Backend, m.deps.Tokens, m.detailID)
		}
		return m, nil

	case key.Matches(msg, Keys.OpenImage):
		if d := m.Detail.Detail(); d != nil {
			return m, m.openImage(firstNonEmpty(m.deps.Images.Full(d.FullResFile), m.deps.Images.Mid(d.MidResFile)))
		}
		return m, nil

	case key.Matches(msg, Keys.OpenWeb):
		if d := m.Detail.Detail(); d != nil {
			return m, m.openPage(d.Slug)
		}
		return m, nil

	case key.Matches(msg, Keys.Contact):
		if d := m.Detail.Detail(); d != nil {
			m.Inquiry.Show(d.DisplayTitle())
		} else {
			m.Inquiry.Show("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	var k tea.KeyMsg
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		k = tea.KeyMsg{Type: tea.KeyDown}
	case tea.MouseButtonWheelUp:
		k = tea.KeyMsg{Type: tea.KeyUp}
	default:
		return m, nil
	}
	if m.State == StateDetail {
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(k)
		return m, cmd
	}
	if m.State != StateBrowsing || m.List.IsFilterTyping() {
		return m, nil
	}
	cmd := m.List.Update(k)
	next := tea.Batch(cmd, m.checkViewport(true))
	return m, next
}

// openPainting switches to the detail view. Leaving the list records
// where to come back to.
func (m *Model) openPainting(id string) tea.Cmd {
	if m.State == StateBrowsing && m.deps.Sessions != nil {
		if err := m.deps.Sessions.MarkReturn(m.List.SelectedIndex()); err != nil {
			slog.Warn("return position not saved", "error", err)
		}
	}

	m.State = StateDetail
	m.detailID = id
	m.Detail.Reset()
	m.List.SetFocused(false)

	return tea.Batch(
		LoadDetailCmd(m.deps.Backend, id),
		LoadRelatedCmd(m.deps.Backend, id, domain.RelatedByArtist),
		LoadRelatedCmd(m.deps.Backend, id, domain.RelatedByStyle),
		RecordDetailsClickCmd(m.deps.Backend, m.deps.Tokens, id),
	)
}

func (m *Model) backToList() tea.Cmd {
	m.State = StateBrowsing
	m.detailID = ""
	m.List.SetFocused(true)
	if m.deps.Sessions == nil {
		return nil
	}
	return MountCmd(m.deps.Sessions, m.deps.Loader, m.deps.Bus)
}

func (m *Model) applyChoice(opt components.Option) tea.Cmd {
	target := m.choiceFor
	m.choiceFor = choiceNone
	switch target {
	case choiceStatus:
		return m.patchFilter(func(q *domain.CatalogQuery) { q.Status = domain.Status(opt.Value) })
	case choiceSort:
		return m.patchFilter(func(q *domain.CatalogQuery) { q.Sort = domain.Sort(opt.Value) })
	case choiceStrategy:
		return m.patchFilter(func(q *domain.CatalogQuery) { q.Strategy = domain.Strategy(opt.Value) })
	}
	return nil
}

func (m *Model) applyMinPrice(raw string) tea.Cmd {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m.patchFilter(func(q *domain.CatalogQuery) { q.MinPrice = nil })
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		m.StatusMsg = "Minimum price must be a whole non-negative number"
		m.StatusIsErr = true
		return ClearStatusCmd(3 * time.Second)
	}
	return m.patchFilter(func(q *domain.CatalogQuery) { q.MinPrice = &n })
}

func (m Model) openImage(url string) tea.Cmd {
	if m.deps.Opener == nil || url == "" {
		return nil
	}
	return OpenURLCmd(m.deps.Opener.OpenImage, url, "image")
}

func (m Model) openPage(slug string) tea.Cmd {
	if m.deps.Opener == nil || slug == "" {
		return nil
	}
	return OpenURLCmd(m.deps.Opener.OpenPage, adapter.PaintingPageURL(m.opts.SiteURL, slug), "painting page")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
