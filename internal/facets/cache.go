package facets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// DefaultTTL is how long a collected index is served before the catalog
// is walked again.
const DefaultTTL = time.Hour

// Cache serves a collected Index and refreshes it once it is older than
// the TTL. A failed refresh keeps serving the previous index.
type Cache struct {
	repo   domain.CatalogRepository
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu        sync.RWMutex
	index     Index
	fetchedAt time.Time
	refresh   sync.Mutex
}

// NewCache creates a cache over repo.
func NewCache(repo domain.CatalogRepository, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{repo: repo, ttl: ttl, logger: logger, now: time.Now}
}

// Get returns a fresh index, walking the catalog when needed.
func (c *Cache) Get(ctx context.Context) (Index, error) {
	if ix, ok := c.fresh(); ok {
		return ix, nil
	}

	// One walk at a time; late arrivals reuse its result.
	c.refresh.Lock()
	defer c.refresh.Unlock()
	if ix, ok := c.fresh(); ok {
		return ix, nil
	}

	ix, err := Collect(ctx, c.repo, c.logger, nil)
	if err != nil {
		c.mu.RLock()
		prev, had := c.index, !c.fetchedAt.IsZero()
		c.mu.RUnlock()
		if had {
			c.logger.Warn("facet refresh failed, serving previous index", "error", err)
			return prev, nil
		}
		return Index{}, err
	}

	c.mu.Lock()
	c.index = ix
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return ix, nil
}

func (c *Cache) fresh() (Index, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > c.ttl {
		return Index{}, false
	}
	return c.index, true
}
