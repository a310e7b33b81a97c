package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
)

func TestBus_DeliversEveryEmissionInOrder(t *testing.T) {
	bus := catalog.NewBus(domain.DefaultQuery())

	var got []string
	bus.Subscribe(func(q domain.CatalogQuery) { got = append(got, q.Text) })

	for _, text := range []string{"m", "mo", "mon", "monet"} {
		q := bus.Current()
		q.Text = text
		bus.Emit(q)
	}

	assert.Equal(t, []string{"m", "mo", "mon", "monet"}, got)
	assert.Equal(t, "monet", bus.Current().Text)
}

func TestBus_PatchKeepsOtherFields(t *testing.T) {
	bus := catalog.NewBus(domain.DefaultQuery())
	var last domain.CatalogQuery
	bus.Subscribe(func(q domain.CatalogQuery) { last = q })

	bus.Patch(func(q *domain.CatalogQuery) { q.Text = "sea" })
	bus.Patch(func(q *domain.CatalogQuery) { q.Status = domain.StatusSold })
	out := bus.Patch(func(q *domain.CatalogQuery) { q.Sort = domain.SortPriceAsc })

	assert.Equal(t, "sea", last.Text)
	assert.Equal(t, domain.StatusSold, last.Status)
	assert.Equal(t, domain.SortPriceAsc, last.Sort)
	assert.True(t, out.Equal(last))
}

func TestBus_EmitNormalizes(t *testing.T) {
	bus := catalog.NewBus(domain.CatalogQuery{})
	assert.Equal(t, domain.StatusAvailable, bus.Current().Status)

	var last domain.CatalogQuery
	bus.Subscribe(func(q domain.CatalogQuery) { last = q })
	bus.Emit(domain.CatalogQuery{Text: "  rain  ", Sort: "bogus"})

	assert.Equal(t, "rain", last.Text)
	assert.Equal(t, domain.SortNewest, last.Sort)
}

func TestBus_SingleSubscriber(t *testing.T) {
	bus := catalog.NewBus(domain.DefaultQuery())

	first, second := 0, 0
	unsubFirst := bus.Subscribe(func(domain.CatalogQuery) { first++ })
	bus.Subscribe(func(domain.CatalogQuery) { second++ })

	bus.Emit(domain.DefaultQuery())
	assert.Equal(t, 0, first, "replaced subscriber receives nothing")
	assert.Equal(t, 1, second)

	// A stale unsubscribe must not remove the current subscriber.
	unsubFirst()
	bus.Emit(domain.DefaultQuery())
	assert.Equal(t, 2, second)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := catalog.NewBus(domain.DefaultQuery())
	calls := 0
	unsub := bus.Subscribe(func(domain.CatalogQuery) { calls++ })
	unsub()

	q := domain.DefaultQuery()
	q.Text = "x"
	bus.Emit(q)

	require.Equal(t, 0, calls)
	assert.Equal(t, "x", bus.Current().Text, "current tracks emissions without a subscriber")
}
