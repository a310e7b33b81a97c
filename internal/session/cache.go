// Package session mirrors the browsing state so that returning from a
// detail view lands on the same list at the same scroll position.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

const (
	keySnapshot = "catalog-snapshot"
	keyMarker   = "return-marker"
)

// RestoreScrollDelay is how long the caller waits after replaying a
// snapshot before applying its scroll offset, so restored rows are laid
// out first.
const RestoreScrollDelay = 50 * time.Millisecond

// State is a snapshot of the incremental loader plus viewport position.
type State struct {
	Items        []domain.Painting
	Page         int
	TotalPages   int
	HasMore      bool
	Query        domain.CatalogQuery
	ScrollOffset int
	SavedAt      time.Time
}

// returnMarker is written when the user leaves for a detail view.
type returnMarker struct {
	ScrollOffset int
	MarkedAt     time.Time
}

// Cache is the session-scoped snapshot holder. It is written by the
// loader after every successful fetch and consulted once on mount.
type Cache struct {
	store  domain.SessionStore
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// New creates a Cache over store.
func New(store domain.SessionStore, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, logger: logger, now: time.Now}
}

// Save overwrites the snapshot. Last write wins.
func (c *Cache) Save(s State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s.SavedAt = c.now()
	if err := c.store.SaveSession(keySnapshot, s); err != nil {
		c.logger.Error("failed to save session snapshot", "error", err)
		return err
	}
	return nil
}

// MarkReturn records that the user is navigating to a detail view and
// where the list was scrolled to.
func (c *Cache) MarkReturn(scrollOffset int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := returnMarker{ScrollOffset: scrollOffset, MarkedAt: c.now()}
	if err := c.store.SaveSession(keyMarker, m); err != nil {
		c.logger.Error("failed to save return marker", "error", err)
		return err
	}
	return nil
}

// TryRestore reads and clears the return marker. It yields the snapshot
// only when the marker was present; the snapshot itself stays until the
// next Save overwrites it.
func (c *Cache) TryRestore() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var m returnMarker
	ok, err := c.store.GetSession(keyMarker, &m)
	if err != nil {
		c.logger.Error("failed to read return marker", "error", err)
	}
	if !ok {
		return State{}, false
	}
	if err := c.store.DeleteSession(keyMarker); err != nil {
		c.logger.Error("failed to clear return marker", "error", err)
	}

	var s State
	ok, err = c.store.GetSession(keySnapshot, &s)
	if err != nil {
		c.logger.Error("failed to read session snapshot", "error", err)
		return State{}, false
	}
	if !ok {
		return State{}, false
	}

	s.ScrollOffset = m.ScrollOffset
	c.logger.Debug("restoring session", "items", len(s.Items), "page", s.Page, "scroll", s.ScrollOffset)
	return s, true
}
