package facets_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/facets"
)

type pagedRepo struct {
	mu     sync.Mutex
	pages  [][]domain.Painting
	failAt int
	calls  []int
	query  domain.CatalogQuery
	limit  int
}

func (r *pagedRepo) FetchCatalogPage(_ context.Context, q domain.CatalogQuery, page, limit int, _ string) (domain.CatalogPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, page)
	r.query, r.limit = q, limit
	if r.failAt == page {
		return domain.CatalogPage{}, errors.New("upstream down")
	}
	if page > len(r.pages) {
		return domain.CatalogPage{Page: page, TotalPages: len(r.pages)}, nil
	}
	return domain.CatalogPage{Items: r.pages[page-1], Page: page, TotalPages: len(r.pages)}, nil
}

func painting(slug, style, artist, medium, canvas string) domain.Painting {
	return domain.Painting{ID: slug, Slug: slug, StyleName: style, ArtistName: artist, MediumName: medium, CanvasName: canvas}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Impressionism", "impressionism"},
		{"  Oil on Canvas  ", "oil-on-canvas"},
		{"O'Keeffe", "okeeffe"},
		{"D’Arcy  &  Sons", "darcy-sons"},
		{"--Abstract--", "abstract"},
		{"Иван Шишкин", "item"},
		{"", "item"},
		{"50x70 cm", "50x70-cm"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, facets.Slugify(tt.in), tt.in)
	}
}

func TestProperty_SlugifyShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := facets.Slugify(rapid.String().Draw(t, "name"))
		if s == "" {
			t.Fatal("empty slug")
		}
		if s[0] == '-' || s[len(s)-1] == '-' {
			t.Fatalf("slug %q has edge dash", s)
		}
		for _, r := range s {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Fatalf("slug %q has %q", s, r)
			}
		}
		if facets.Slugify(s) != s {
			t.Fatalf("slugify not idempotent on %q", s)
		}
	})
}

func TestCollect(t *testing.T) {
	repo := &pagedRepo{pages: [][]domain.Painting{
		{
			painting("a", "Realism", "Zoe Park", "Oil", "Canvas"),
			painting("b", " Realism ", "anna Berg", "Acrylic", ""),
		},
		{
			painting("c", "Abstract", "Zoe Park", "Oil", "Linen"),
			painting("", "", "", "", ""),
		},
	}}

	var progress []string
	ix, err := facets.Collect(context.Background(), repo, adapter.NullLogger(), func(page, total int) {
		progress = append(progress, fmt.Sprintf("%d/%d", page, total))
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Abstract", "Realism"}, ix.Styles)
	assert.Equal(t, []string{"anna Berg", "Zoe Park"}, ix.Artists)
	assert.Equal(t, []string{"Acrylic", "Oil"}, ix.Media)
	assert.Equal(t, []string{"Canvas", "Linen"}, ix.Canvases)
	assert.Equal(t, []string{"a", "b", "c"}, ix.Slugs)
	assert.Equal(t, []string{"1/2", "2/2"}, progress)

	assert.Equal(t, []int{1, 2}, repo.calls)
	assert.Equal(t, 100, repo.limit)
	assert.Equal(t, domain.StatusAll, repo.query.Status)
}

func TestCollect_Failures(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		repo := &pagedRepo{pages: [][]domain.Painting{{painting("a", "X", "Y", "Z", "W")}}, failAt: 1}
		_, err := facets.Collect(context.Background(), repo, adapter.NullLogger(), nil)
		assert.Error(t, err)
	})

	t.Run("later page keeps partial", func(t *testing.T) {
		repo := &pagedRepo{
			pages:  [][]domain.Painting{{painting("a", "Realism", "Ann", "Oil", "Canvas")}, {painting("b", "Pop", "Bo", "Ink", "Paper")}},
			failAt: 2,
		}
		ix, err := facets.Collect(context.Background(), repo, adapter.NullLogger(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Realism"}, ix.Styles)
		assert.Equal(t, []string{"a"}, ix.Slugs)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := facets.Collect(ctx, &pagedRepo{}, adapter.NullLogger(), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIndex_ResolveAndSuggest(t *testing.T) {
	ix := facets.Index{
		Artists: []string{"Anna Berg", "Ivan Aivazovsky", "Zoe Park"},
		Styles:  []string{"Impressionism", "Pop Art"},
	}

	name, ok := ix.Resolve(facets.KindArtist, "ivan-aivazovsky")
	require.True(t, ok)
	assert.Equal(t, "Ivan Aivazovsky", name)

	_, ok = ix.Resolve(facets.KindArtist, "nobody")
	assert.False(t, ok)
	_, ok = ix.Resolve(facets.KindMedium, "oil")
	assert.False(t, ok)

	assert.Equal(t, []string{"Ivan Aivazovsky"}, ix.Suggest(facets.KindArtist, "aivazovsky", 3))
	assert.Equal(t, []string{"Impressionism"}, ix.Suggest(facets.KindStyle, "impresionsim", 3), "typo falls back to edit distance")
	assert.Empty(t, ix.Suggest(facets.KindStyle, "", 3))
}

func TestQuery(t *testing.T) {
	q := facets.Query(" Zoe Park ")
	assert.Equal(t, `"Zoe Park"`, q.Text)
	assert.Equal(t, domain.StatusAvailable, q.Status)
	assert.Equal(t, domain.SortNewest, q.Sort)
}

func TestKindValid(t *testing.T) {
	for _, k := range facets.Kinds {
		assert.True(t, k.Valid())
	}
	assert.False(t, facets.Kind("colour").Valid())
}

func TestCache(t *testing.T) {
	repo := &pagedRepo{pages: [][]domain.Painting{{painting("a", "Realism", "Ann", "Oil", "Canvas")}}}
	cache := facets.NewCache(repo, 50*time.Millisecond, adapter.NullLogger())

	ix, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, ix.Artists)

	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.calls, 1, "served from cache")

	time.Sleep(60 * time.Millisecond)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, repo.calls, 2)
}

func TestCache_ColdFailure(t *testing.T) {
	repo := &pagedRepo{failAt: 1}
	cache := facets.NewCache(repo, time.Hour, adapter.NullLogger())

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}
