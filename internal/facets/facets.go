// Package facets gathers the browsable style, artist, medium and canvas
// names from the catalog and maps them to and from URL slugs.
package facets

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// Kind is a facet dimension.
type Kind string

const (
	KindStyle  Kind = "style"
	KindArtist Kind = "artist"
	KindMedium Kind = "medium"
	KindCanvas Kind = "canvas"
)

// Kinds lists every facet dimension.
var Kinds = []Kind{KindStyle, KindArtist, KindMedium, KindCanvas}

// Valid reports whether k is a known facet dimension.
func (k Kind) Valid() bool {
	switch k {
	case KindStyle, KindArtist, KindMedium, KindCanvas:
		return true
	}
	return false
}

// walkPageSize is the page size used when walking the whole catalog.
const walkPageSize = 100

// Index is everything learned from one walk of the catalog.
type Index struct {
	Styles   []string `json:"styles"`
	Artists  []string `json:"artists"`
	Media    []string `json:"mediums"`
	Canvases []string `json:"canvases"`
	Slugs    []string `json:"-"` // painting slugs in catalog order
}

// Names returns the sorted names of kind k.
func (ix Index) Names(k Kind) []string {
	switch k {
	case KindStyle:
		return ix.Styles
	case KindArtist:
		return ix.Artists
	case KindMedium:
		return ix.Media
	case KindCanvas:
		return ix.Canvases
	}
	return nil
}

// Slugify turns a facet name into its URL slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("'", "", "’", "").Replace(s)

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

// Resolve maps slug back to a name of kind k by exact slug match.
func (ix Index) Resolve(k Kind, slug string) (string, bool) {
	for _, name := range ix.Names(k) {
		if Slugify(name) == slug {
			return name, true
		}
	}
	return "", false
}

// Suggest ranks the names of kind k that loosely match slug, best first.
// It is the fallback when Resolve misses (a typo in a shared link).
func (ix Index) Suggest(k Kind, slug string, limit int) []string {
	names := ix.Names(k)
	if len(names) == 0 || slug == "" {
		return nil
	}

	slugs := make([]string, len(names))
	for i, n := range names {
		slugs[i] = Slugify(n)
	}

	type candidate struct {
		name string
		dist int
	}
	var out []candidate
	seen := make(map[int]bool)

	for _, r := range fuzzy.RankFindFold(slug, slugs) {
		seen[r.OriginalIndex] = true
		out = append(out, candidate{names[r.OriginalIndex], r.Distance})
	}
	// Typos don't survive subsequence matching; fall back to edit distance.
	maxDist := len(slug)/4 + 1
	for i, s := range slugs {
		if seen[i] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(slug, s); d <= maxDist {
			out = append(out, candidate{names[i], 100 + d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	result := make([]string, len(out))
	for i, c := range out {
		result[i] = c.name
	}
	return result
}

// Query returns the listing query a facet page shows: the quoted name as
// search text over available paintings, newest first.
func Query(name string) domain.CatalogQuery {
	q := domain.DefaultQuery()
	q.Text = `"` + strings.TrimSpace(name) + `"`
	return q
}

// ProgressFunc reports pages walked so far out of total.
type ProgressFunc func(page, total int)

// Collect walks every catalog page and gathers the facet names and
// painting slugs. A failure after the first page ends the walk early and
// keeps what was gathered; a failure on the first page is returned.
func Collect(ctx context.Context, repo domain.CatalogRepository, logger *slog.Logger, onProgress ProgressFunc) (Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	q := domain.DefaultQuery()
	q.Status = domain.StatusAll

	items, err := fetchAll(ctx, func(ctx context.Context, page, limit int) ([]domain.Painting, int, error) {
		p, err := repo.FetchCatalogPage(ctx, q, page, limit, "")
		if err != nil {
			return nil, 0, err
		}
		return p.Items, p.TotalPages, nil
	}, walkPageSize, onProgress)
	if err != nil {
		if len(items) == 0 {
			return Index{}, fmt.Errorf("failed to collect facets: %w", err)
		}
		logger.Warn("catalog walk ended early", "error", err, "paintings", len(items))
	}

	var styles, artists, media, canvases nameSet
	ix := Index{}
	for _, p := range items {
		styles.add(p.StyleName)
		artists.add(p.ArtistName)
		media.add(p.MediumName)
		canvases.add(p.CanvasName)
		if p.Slug != "" {
			ix.Slugs = append(ix.Slugs, p.Slug)
		}
	}
	ix.Styles = styles.sorted()
	ix.Artists = artists.sorted()
	ix.Media = media.sorted()
	ix.Canvases = canvases.sorted()

	logger.Debug("collected facets",
		"paintings", len(items),
		"styles", len(ix.Styles),
		"artists", len(ix.Artists),
		"mediums", len(ix.Media),
		"canvases", len(ix.Canvases))
	return ix, nil
}

// fetchAll walks numbered pages until the reported page count is reached
// or a page comes back empty. On error it returns what it has so far.
func fetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page, limit int) ([]T, int, error),
	limit int,
	onProgress ProgressFunc,
) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		items, pages, err := fetch(ctx, page, limit)
		if err != nil {
			return all, err
		}
		all = append(all, items...)

		if pages < 1 {
			pages = 1
		}
		if onProgress != nil {
			onProgress(page, pages)
		}
		if page >= pages || len(items) == 0 {
			return all, nil
		}
	}
}

type nameSet map[string]struct{}

func (s *nameSet) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if *s == nil {
		*s = make(nameSet)
	}
	(*s)[name] = struct{}{}
}

func (s nameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	collate.New(language.English, collate.IgnoreCase).SortStrings(out)
	return out
}
