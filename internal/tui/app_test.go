package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/session"
	"github.com/suhanovs/paintx-frontend/internal/store"
)

const testPageSize = 10

type staticToken string

func (s staticToken) EnsureToken(context.Context) string { return string(s) }

// fakeBackend serves total paintings per query. IDs are prefixed with the
// search text ("p" without one).
type fakeBackend struct {
	mu        sync.Mutex
	total     int
	fail      map[int]bool
	fetches   []fetch
	liked     map[string]bool
	clicks    []string
	inquiries []domain.Inquiry
}

type fetch struct {
	text string
	page int
}

func newFakeBackend(total int) *fakeBackend {
	return &fakeBackend{total: total, fail: map[int]bool{}, liked: map[string]bool{}}
}

func prefix(text string) string {
	if text == "" {
		return "p"
	}
	return text
}

func (b *fakeBackend) FetchCatalogPage(_ context.Context, q domain.CatalogQuery, page, size int, _ string) (domain.CatalogPage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fetches = append(b.fetches, fetch{text: q.Text, page: page})
	if b.fail[page] {
		return domain.CatalogPage{}, &domain.FetchError{Op: "fetch catalog page", StatusCode: 502, Err: domain.ErrServerOffline}
	}

	var items []domain.Painting
	for i := (page - 1) * size; i < min(page*size, b.total); i++ {
		items = append(items, domain.Painting{
			ID:         fmt.Sprintf("%s-%d", prefix(q.Text), i),
			Slug:       fmt.Sprintf("painting-%d", i),
			Title:      fmt.Sprintf("Painting %d", i),
			ArtistName: "Anna Petrova",
		})
	}
	return domain.CatalogPage{
		Items:      items,
		Page:       page,
		TotalPages: (b.total + size - 1) / size,
		Total:      b.total,
	}, nil
}

func (b *fakeBackend) GetPainting(_ context.Context, id string) (*domain.PaintingDetail, error) {
	return &domain.PaintingDetail{
		Painting:     domain.Painting{ID: id, Title: "Painting " + id, ArtistName: "Anna Petrova"},
		Availability: "available",
	}, nil
}

func (b *fakeBackend) GetPaintingBySlug(ctx context.Context, slug string) (*domain.PaintingDetail, error) {
	return b.GetPainting(ctx, slug)
}

func (b *fakeBackend) Related(_ context.Context, id string, kind domain.RelatedKind) ([]domain.RelatedPainting, error) {
	if kind == domain.RelatedByStyle {
		return nil, domain.ErrServerOffline
	}
	return []domain.RelatedPainting{{ID: "rel-" + id, Title: "Sibling of " + id}}, nil
}

func (b *fakeBackend) ToggleLike(_ context.Context, id string, _ domain.RequestMeta) (domain.LikeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.liked[id] = !b.liked[id]
	if b.liked[id] {
		return domain.LikeResult{Liked: true, LikesCount: 1}, nil
	}
	return domain.LikeResult{Liked: false, LikesCount: 0}, nil
}

func (b *fakeBackend) LikedIDs(context.Context, domain.RequestMeta) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var ids []string
	for id, ok := range b.liked {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (b *fakeBackend) RecordDetailsClick(_ context.Context, id string, meta domain.RequestMeta) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clicks = append(b.clicks, id+"@"+meta.VisitorToken)
	return nil
}

func (b *fakeBackend) SubmitInquiry(_ context.Context, in domain.Inquiry, _ domain.RequestMeta) error {
	if strings.HasPrefix(in.Email, "flood") {
		return fmt.Errorf("submit inquiry: %w", domain.ErrRateLimited)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inquiries = append(b.inquiries, in)
	return nil
}

func (b *fakeBackend) fetchLog() []fetch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]fetch(nil), b.fetches...)
}

func (b *fakeBackend) setFail(page int, fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[page] = fail
}

// run executes one command, giving up on timers and waits that do not
// answer quickly.
func run(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

// drain runs cmd and every command its messages produce, feeding the
// messages back into m in order.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "update loop does not settle")

		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := run(c).(type) {
		case nil, TickMsg, ClearStatusMsg:
			// the spinner would tick forever
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

type harness struct {
	backend  *fakeBackend
	loader   *catalog.Loader
	bus      *catalog.Bus
	sessions *session.Cache
}

func newHarness(t *testing.T, total int) *harness {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	be := newFakeBackend(total)
	sessions := session.New(s, adapter.NullLogger())
	return &harness{
		backend:  be,
		loader:   catalog.NewLoader(be, staticToken("vid-1"), sessions, testPageSize, adapter.NullLogger()),
		bus:      catalog.NewBus(domain.DefaultQuery()),
		sessions: sessions,
	}
}

func (h *harness) start(t *testing.T, width, height int) Model {
	t.Helper()
	m := NewModel(Deps{
		Backend:  h.backend,
		Loader:   h.loader,
		Bus:      h.bus,
		Sessions: h.sessions,
		Tokens:   staticToken("vid-1"),
		Images:   domain.NewImageURLs("https://img.paintx.test"),
	}, Options{SiteURL: "https://paintx.test", InitialWidth: width})
	t.Cleanup(m.Close)

	m = drain(t, m, m.Init())
	next, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return drain(t, next.(Model), cmd)
}

func TestModel_InfiniteScrollFillsTallScreen(t *testing.T) {
	h := newHarness(t, 25)
	m := h.start(t, 60, 30)

	assert.Equal(t, catalog.ModeInfiniteScroll, m.Trigger().Mode())
	assert.Equal(t, 25, m.List.ItemCount())
	assert.Equal(t, []fetch{{"", 1}, {"", 2}, {"", 3}}, h.backend.fetchLog())
	assert.Contains(t, m.listFooter(), "All 25 paintings loaded")
}

func TestModel_ScrollingLoadsNextPage(t *testing.T) {
	h := newHarness(t, 100)
	m := h.start(t, 60, 12) // five rows

	require.Equal(t, 10, m.List.ItemCount())
	assert.Contains(t, m.listFooter(), "10 of 100")

	// Rows 0..4 are on screen; moving to row 5 scrolls the last visible
	// row into the lookahead.
	m = press(t, m, "j", "j", "j", "j", "j")
	assert.Equal(t, 20, m.List.ItemCount())
	assert.Equal(t, 5, m.List.SelectedIndex(), "appending keeps the cursor")
	assert.Len(t, h.backend.fetchLog(), 2)
}

func TestModel_PageLinksOnWideScreen(t *testing.T) {
	h := newHarness(t, 35)
	m := h.start(t, 120, 30)

	require.Equal(t, catalog.ModePageLinks, m.Trigger().Mode())
	assert.Equal(t, 10, m.List.ItemCount(), "page links never load on scroll")

	m = press(t, m, "]")
	require.Equal(t, 10, m.List.ItemCount())
	assert.Equal(t, "p-10", m.List.Items()[0].ID)
	assert.Contains(t, m.listFooter(), "[ ]")

	m = press(t, m, "]", "]", "]")
	assert.Equal(t, "p-30", m.List.Items()[0].ID, "stops at the last page")
	assert.Equal(t, 5, m.List.ItemCount())

	m = press(t, m, "[")
	assert.Equal(t, "p-20", m.List.Items()[0].ID)
}

func TestModel_ResizeSwitchesTrigger(t *testing.T) {
	h := newHarness(t, 35)
	m := h.start(t, 120, 30)
	require.Equal(t, catalog.ModePageLinks, m.Trigger().Mode())

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = drain(t, next.(Model), cmd)
	assert.Equal(t, catalog.ModeInfiniteScroll, m.Trigger().Mode())
	assert.Equal(t, 35, m.List.ItemCount(), "narrow screens fill by appending")
}

func TestModel_SearchKeystrokesResolveToLastQuery(t *testing.T) {
	h := newHarness(t, 15)
	m := h.start(t, 120, 30)

	m = press(t, m, "f")
	require.True(t, m.Search.IsVisible())

	// Collect every keystroke's fetch before any of them completes
	var cmds []tea.Cmd
	for _, r := range "rose" {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	assert.True(t, m.Loading)
	m = drain(t, m, tea.Batch(cmds...))

	assert.Equal(t, "rose", h.bus.Current().Text)
	require.Equal(t, 10, m.List.ItemCount())
	for _, p := range m.List.Items() {
		assert.True(t, strings.HasPrefix(p.ID, "rose-"), p.ID)
	}

	m = press(t, m, "enter")
	assert.False(t, m.Search.IsVisible())
}

func TestModel_ChoiceAndClearFilters(t *testing.T) {
	h := newHarness(t, 5)
	m := h.start(t, 120, 30)

	m = press(t, m, "a", "j", "enter")
	assert.Equal(t, domain.StatusSold, h.bus.Current().Status)

	m = press(t, m, "$", "5", "0", "0", "enter")
	require.NotNil(t, h.bus.Current().MinPrice)
	assert.Equal(t, 500, *h.bus.Current().MinPrice)

	m = press(t, m, "x")
	assert.True(t, h.bus.Current().Equal(domain.DefaultQuery()))
	assert.Equal(t, 5, m.List.ItemCount())
	assert.Equal(t, "Available · Newest", filterSummary(h.bus.Current()))
}

func TestModel_InvalidMinPrice(t *testing.T) {
	h := newHarness(t, 5)
	m := h.start(t, 120, 30)
	before := len(h.backend.fetchLog())

	m = press(t, m, "$", "a", "b", "enter")
	assert.True(t, m.StatusIsErr)
	assert.Nil(t, h.bus.Current().MinPrice)
	assert.Len(t, h.backend.fetchLog(), before)
}

func TestModel_DetailAndBackRestoresPosition(t *testing.T) {
	h := newHarness(t, 25)
	m := h.start(t, 60, 30)
	m = press(t, m, "j", "j", "j", "j", "j")
	require.Equal(t, "p-5", m.List.SelectedPainting().ID)
	fetched := len(h.backend.fetchLog())

	m = press(t, m, "enter")
	require.Equal(t, StateDetail, m.State)
	require.NotNil(t, m.Detail.Detail())
	assert.Equal(t, "p-5", m.Detail.Detail().ID)
	assert.Equal(t, []string{"p-5@vid-1"}, h.backend.clicks)

	// Only the artist strip arrived; the style strip failed quietly
	m = press(t, m, "tab")
	require.NotNil(t, m.Detail.SelectedRelated())
	assert.Equal(t, "rel-p-5", m.Detail.SelectedRelated().ID)
	assert.False(t, m.StatusIsErr)

	m = press(t, m, "esc")
	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, 25, m.List.ItemCount())
	assert.Equal(t, 5, m.List.SelectedIndex())
	assert.Len(t, h.backend.fetchLog(), fetched, "returning replays the session snapshot")
}

func TestModel_RelatedNavigationKeepsReturnPosition(t *testing.T) {
	h := newHarness(t, 25)
	m := h.start(t, 60, 30)
	m = press(t, m, "j", "j", "enter", "tab", "enter")

	require.Equal(t, StateDetail, m.State)
	assert.Equal(t, "rel-p-2", m.Detail.Detail().ID)

	m = press(t, m, "esc")
	assert.Equal(t, 2, m.List.SelectedIndex())
}

func TestModel_LikeToggle(t *testing.T) {
	h := newHarness(t, 5)
	h.backend.liked["p-3"] = true
	m := h.start(t, 120, 30)
	assert.True(t, m.Liked["p-3"], "liked ids load at start")

	m = press(t, m, "l")
	assert.True(t, m.Liked["p-0"])
	assert.Equal(t, "Added to liked paintings", m.StatusMsg)

	m = press(t, m, "enter")
	assert.True(t, m.Detail.Liked(), "detail picks up the like made on the list")
	m = press(t, m, "l")
	assert.False(t, m.Liked["p-0"])
	assert.False(t, m.Detail.Liked())
}

func TestModel_FailedPageRetries(t *testing.T) {
	h := newHarness(t, 25)
	h.backend.setFail(2, true)
	m := h.start(t, 60, 30)

	assert.Equal(t, 10, m.List.ItemCount(), "loaded rows survive a failed page")
	assert.Contains(t, m.listFooter(), "Loading failed")
	assert.True(t, m.StatusIsErr)

	h.backend.setFail(2, false)
	m = press(t, m, "r")
	assert.Equal(t, 25, m.List.ItemCount())
	assert.Contains(t, m.listFooter(), "All 25 paintings loaded")
}

func TestModel_ScrollRetriesFailedPage(t *testing.T) {
	h := newHarness(t, 25)
	h.backend.setFail(2, true)
	m := h.start(t, 60, 30)
	require.Len(t, h.backend.fetchLog(), 2)

	// Resizing is not a user scroll
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = drain(t, next.(Model), cmd)
	assert.Len(t, h.backend.fetchLog(), 2)

	// One retry per failure
	m = press(t, m, "j")
	assert.Equal(t, []fetch{{"", 1}, {"", 2}, {"", 2}}, h.backend.fetchLog())
	assert.Contains(t, m.listFooter(), "Loading failed")

	h.backend.setFail(2, false)
	m = press(t, m, "k")
	assert.Equal(t, 25, m.List.ItemCount())
	assert.Contains(t, m.listFooter(), "All 25 paintings loaded")
}

func TestModel_Inquiry(t *testing.T) {
	h := newHarness(t, 5)
	m := h.start(t, 120, 30)

	m = press(t, m, "c")
	require.True(t, m.Inquiry.IsVisible())
	m = press(t, m, "buyer@example.com", "ctrl+s")
	assert.False(t, m.Inquiry.IsVisible())
	require.Len(t, h.backend.inquiries, 1)
	assert.Equal(t, "I am interested in Painting 0.", h.backend.inquiries[0].Comment)
	assert.Contains(t, m.StatusMsg, "Inquiry sent")

	m = press(t, m, "c", "flood@example.com", "ctrl+s")
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "Too many requests, please try again later", m.StatusMsg)
}

func TestModel_LocalFilterDoesNotLoad(t *testing.T) {
	h := newHarness(t, 100)
	m := h.start(t, 60, 12)
	fetched := len(h.backend.fetchLog())

	m = press(t, m, "/", "9")
	assert.True(t, m.List.IsFiltering())
	assert.Len(t, h.backend.fetchLog(), fetched)

	// While typing, q goes to the filter instead of quitting
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, next.(Model).List.IsFilterTyping())
}

func TestModel_URLCommitsReachHeader(t *testing.T) {
	h := newHarness(t, 5)
	commits := NewChannelObserver[string](4)
	urls := catalog.NewURLSync(10*time.Millisecond, commits.Notify)

	m := NewModel(Deps{
		Backend: h.backend, Loader: h.loader, Bus: h.bus, Sessions: h.sessions,
		URLs: urls, Commits: commits, Tokens: staticToken("vid-1"),
	}, Options{InitialWidth: 120})
	t.Cleanup(m.Close)

	h.bus.Patch(func(q *domain.CatalogQuery) { q.Text = "birch" })
	next, _ := m.Update(m.waitForURL()())
	m = next.(Model)
	assert.Equal(t, urls.Current(), m.URL)
	assert.Contains(t, m.URL, "search=birch")
}

func TestModel_HelpReturnsOnAnyKey(t *testing.T) {
	h := newHarness(t, 5)
	m := h.start(t, 120, 30)

	m = press(t, m, "?")
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "Curated selection")

	m = press(t, m, "z")
	assert.Equal(t, StateBrowsing, m.State)
	assert.Contains(t, m.View(), "Painting 0")
}
