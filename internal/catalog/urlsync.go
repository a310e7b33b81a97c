package catalog

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// DefaultURLDebounce is the quiet period before the listing URL is
// rewritten after a filter change.
const DefaultURLDebounce = 400 * time.Millisecond

// URLSync mirrors the active filter into a shareable listing URL. Rapid
// edits (typing in the search box) are coalesced and only the final state
// is committed; the loader itself reacts to every change immediately.
type URLSync struct {
	debounced func(func())
	commit    func(string)

	mu      sync.Mutex
	pending string
	current string
}

// NewURLSync creates a URLSync that calls commit with the new listing URL
// once changes stop for wait.
func NewURLSync(wait time.Duration, commit func(url string)) *URLSync {
	if wait <= 0 {
		wait = DefaultURLDebounce
	}
	return &URLSync{
		debounced: debounce.New(wait),
		commit:    commit,
		current:   "/",
	}
}

// Update schedules a commit for q at page.
func (u *URLSync) Update(q domain.CatalogQuery, page int) {
	next := domain.ListingURL(q, page)

	u.mu.Lock()
	u.pending = next
	u.mu.Unlock()

	u.debounced(u.flush)
}

func (u *URLSync) flush() {
	u.mu.Lock()
	next := u.pending
	if next == u.current {
		u.mu.Unlock()
		return
	}
	u.current = next
	commit := u.commit
	u.mu.Unlock()

	if commit != nil {
		commit(next)
	}
}

// Current returns the last committed URL.
func (u *URLSync) Current() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.current
}
