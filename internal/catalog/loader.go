// Package catalog implements incremental loading of the paginated
// painting listing and the filter plumbing around it.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/session"
)

// DefaultPageSize is the listing page size used by the storefront.
const DefaultPageSize = 30

// State is the loader's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Mode says how an arriving page combines with what is loaded.
type Mode int

const (
	ModeReplace Mode = iota
	ModeAppend
)

// Outcome reports what became of a load request.
type Outcome int

const (
	// OutcomeApplied means the page was fetched and applied.
	OutcomeApplied Outcome = iota
	// OutcomeDropped means the request was not issued: a fetch was
	// already in flight or there are no more pages.
	OutcomeDropped
	// OutcomeStale means the response arrived for a filter that is no
	// longer active and was discarded.
	OutcomeStale
	// OutcomeFailed means the fetch failed; the error is returned too.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDropped:
		return "dropped"
	case OutcomeStale:
		return "stale"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TokenSource supplies the visitor token attached to listing requests.
type TokenSource interface {
	EnsureToken(ctx context.Context) string
}

// SessionSaver receives a snapshot after every applied page.
type SessionSaver interface {
	Save(s session.State) error
}

// Snapshot is a consistent copy of the loader state.
type Snapshot struct {
	State      State
	Items      []domain.Painting
	Page       int // last applied page, 0 before the first
	TotalPages int
	Total      int
	HasMore    bool
	Loading    bool
	Query      domain.CatalogQuery
	Err        error // last failure, cleared on success
	Generation uint64
}

// ticket identifies one issued fetch.
type ticket struct {
	seq        uint64
	generation uint64
	query      domain.CatalogQuery
	page       int
	mode       Mode
}

// Loader accumulates listing pages for the active filter.
//
// Continuation and page requests are single-flight: while a fetch is in
// flight they are dropped, not queued. A filter change always proceeds
// and supersedes whatever is in flight; responses tagged with an older
// generation or a different query are discarded on arrival.
type Loader struct {
	repo     domain.CatalogRepository
	tokens   TokenSource
	saver    SessionSaver
	pageSize int
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	items      []domain.Painting
	page       int
	totalPages int
	total      int
	hasMore    bool
	query      domain.CatalogQuery
	generation uint64
	seq        uint64 // last issued ticket
	inflight   bool
	lastErr    error
}

// NewLoader creates a loader for the default query. tokens and saver may
// be nil.
func NewLoader(repo domain.CatalogRepository, tokens TokenSource, saver SessionSaver, pageSize int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{
		repo:     repo,
		tokens:   tokens,
		saver:    saver,
		pageSize: pageSize,
		logger:   logger,
		hasMore:  true,
		query:    domain.DefaultQuery(),
	}
}

// Seed takes over a page that was rendered before the loader existed.
func (l *Loader) Seed(q domain.CatalogQuery, p domain.CatalogPage) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.generation++
	l.inflight = false
	l.query = q.Normalize()
	l.items = append([]domain.Painting(nil), p.Items...)
	l.page = p.Page
	l.totalPages = p.TotalPages
	l.total = p.Total
	l.hasMore = p.HasMore()
	l.state = StateLoaded
	l.lastErr = nil
	l.saveLocked()
}

// Restore replays a session snapshot.
func (l *Loader) Restore(s session.State) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.generation++
	l.inflight = false
	l.query = s.Query.Normalize()
	l.items = append([]domain.Painting(nil), s.Items...)
	l.page = s.Page
	l.totalPages = s.TotalPages
	l.total = 0
	l.hasMore = s.HasMore
	l.state = StateLoaded
	l.lastErr = nil
}

// ApplyFilter makes q the active filter and fetches its first page,
// replacing the accumulated items. It never drops.
func (l *Loader) ApplyFilter(ctx context.Context, q domain.CatalogQuery) (Outcome, error) {
	return l.BeginFilter(q)(ctx)
}

// BeginFilter switches to q immediately and returns the fetch of its
// first page. Callers that run fetches elsewhere use it so that filter
// changes take effect in emission order.
func (l *Loader) BeginFilter(q domain.CatalogQuery) Action {
	l.mu.Lock()
	l.generation++
	l.query = q.Normalize()
	l.items = nil
	l.page = 0
	l.totalPages = 0
	l.total = 0
	l.hasMore = true
	t := l.issueLocked(1, ModeReplace)
	l.mu.Unlock()

	l.logger.Debug("filter applied", "query", domain.ListingURL(t.query, 1), "generation", t.generation)
	return func(ctx context.Context) (Outcome, error) {
		return l.fetch(ctx, t)
	}
}

// Continue fetches the page after the last applied one and appends it.
// It is dropped while a fetch is in flight or once no pages remain, and
// retries after a failure.
func (l *Loader) Continue(ctx context.Context) (Outcome, error) {
	l.mu.Lock()
	if l.inflight || !l.hasMore {
		l.mu.Unlock()
		return OutcomeDropped, nil
	}
	t := l.issueLocked(l.page+1, ModeAppend)
	l.mu.Unlock()

	return l.fetch(ctx, t)
}

// GoToPage fetches page n and replaces the list with it, for discrete
// page navigation. Same single-flight rule as Continue.
func (l *Loader) GoToPage(ctx context.Context, n int) (Outcome, error) {
	l.mu.Lock()
	if l.inflight || n < 1 || (l.totalPages > 0 && n > l.totalPages) {
		l.mu.Unlock()
		return OutcomeDropped, nil
	}
	t := l.issueLocked(n, ModeReplace)
	l.mu.Unlock()

	return l.fetch(ctx, t)
}

// Snapshot returns a copy of the current state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{
		State:      l.state,
		Items:      append([]domain.Painting(nil), l.items...),
		Page:       l.page,
		TotalPages: l.totalPages,
		Total:      l.total,
		HasMore:    l.hasMore,
		Loading:    l.inflight,
		Query:      l.query,
		Err:        l.lastErr,
		Generation: l.generation,
	}
}

func (l *Loader) issueLocked(page int, mode Mode) ticket {
	l.seq++
	l.inflight = true
	l.state = StateLoading
	return ticket{seq: l.seq, generation: l.generation, query: l.query, page: page, mode: mode}
}

func (l *Loader) fetch(ctx context.Context, t ticket) (Outcome, error) {
	var token string
	if l.tokens != nil {
		token = l.tokens.EnsureToken(ctx)
	}
	p, err := l.repo.FetchCatalogPage(ctx, t.query, t.page, l.pageSize, token)
	return l.finish(t, p, err)
}

func (l *Loader) finish(t ticket, p domain.CatalogPage, err error) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.generation != l.generation || !t.query.Equal(l.query) {
		l.logger.Debug("discarding stale page", "page", t.page, "generation", t.generation, "active", l.generation)
		return OutcomeStale, nil
	}
	if t.seq == l.seq {
		l.inflight = false
	}

	if err != nil {
		l.state = StateError
		l.lastErr = err
		l.logger.Error("failed to fetch catalog page", "error", err, "page", t.page, "query", domain.ListingURL(t.query, t.page))
		return OutcomeFailed, err
	}

	switch t.mode {
	case ModeAppend:
		l.items = append(l.items, p.Items...)
	default:
		l.items = append([]domain.Painting(nil), p.Items...)
	}
	l.page = t.page
	l.totalPages = p.TotalPages
	if l.totalPages < l.page {
		l.totalPages = l.page
	}
	l.total = p.Total
	l.hasMore = l.page < l.totalPages
	l.state = StateLoaded
	l.lastErr = nil

	l.logger.Debug("catalog page applied", "page", l.page, "pages", l.totalPages, "items", len(l.items))
	l.saveLocked()
	return OutcomeApplied, nil
}

func (l *Loader) saveLocked() {
	if l.saver == nil {
		return
	}
	// Errors are logged by the saver; the loader keeps going.
	_ = l.saver.Save(session.State{
		Items:      append([]domain.Painting(nil), l.items...),
		Page:       l.page,
		TotalPages: l.totalPages,
		HasMore:    l.hasMore,
		Query:      l.query,
	})
}
