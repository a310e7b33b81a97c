package catalog

import (
	"sync"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// Bus carries full filter state from the widgets that edit it (search
// box, status and sort selectors) to the single loader that consumes it.
//
// There is exactly one subscriber; subscribing again replaces it. Emit
// delivers synchronously and every emission is delivered.
type Bus struct {
	mu      sync.Mutex
	current domain.CatalogQuery
	handler func(domain.CatalogQuery)
	subID   uint64
}

// NewBus creates a bus whose Current starts at initial.
func NewBus(initial domain.CatalogQuery) *Bus {
	return &Bus{current: initial.Normalize()}
}

// Subscribe installs fn as the consumer and returns a function that
// removes it. Removing a subscription that was already replaced is a no-op.
func (b *Bus) Subscribe(fn func(domain.CatalogQuery)) (unsubscribe func()) {
	b.mu.Lock()
	b.subID++
	id := b.subID
	b.handler = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.subID == id {
			b.handler = nil
		}
	}
}

// Emit records q as the current filter and hands it to the subscriber.
func (b *Bus) Emit(q domain.CatalogQuery) {
	q = q.Normalize()

	b.mu.Lock()
	b.current = q
	fn := b.handler
	b.mu.Unlock()

	if fn != nil {
		fn(q)
	}
}

// Patch applies edit to a copy of the current filter and emits the result,
// so a widget owning one field never drops the others.
func (b *Bus) Patch(edit func(q *domain.CatalogQuery)) domain.CatalogQuery {
	q := b.Current()
	edit(&q)
	b.Emit(q)
	return b.Current()
}

// Current returns the last emitted filter.
func (b *Bus) Current() domain.CatalogQuery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current.Normalize()
}
