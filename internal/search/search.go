// Package search filters the paintings already loaded into the listing
// without another round trip to the backend.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

// Result is a painting that matched a local filter.
type Result struct {
	Index          int // position in the filtered slice
	Painting       domain.Painting
	Label          string
	MatchedIndexes []int // rune positions in Label, for highlighting
	Score          int   // higher is better
}

// Label is the text a painting is matched against: title, then artist.
func Label(p domain.Painting) string {
	if p.ArtistName == "" {
		return p.DisplayTitle()
	}
	return p.DisplayTitle() + " · " + p.ArtistName
}

// labels implements fuzzy.Source over lowercased painting labels.
type labels []string

func (l labels) String(i int) string { return l[i] }
func (l labels) Len() int            { return len(l) }

// Filter matches query against title and artist of every item. Each word
// of the query must match (in any order); results come best first and
// keep list order among equals. An empty query matches nothing.
func Filter(query string, items []domain.Painting) []Result {
	words := tokenize(query)
	if len(words) == 0 || len(items) == 0 {
		return nil
	}

	display := make([]string, len(items))
	src := make(labels, len(items))
	for i, p := range items {
		display[i] = Label(p)
		src[i] = strings.ToLower(display[i])
	}

	type acc struct {
		score   int
		hits    int
		matched map[int]struct{}
	}
	found := make(map[int]*acc)

	for _, w := range words {
		for _, m := range fuzzy.FindFrom(w, src) {
			a := found[m.Index]
			if a == nil {
				a = &acc{matched: make(map[int]struct{})}
				found[m.Index] = a
			}
			a.score += m.Score
			a.hits++
			for _, pos := range byteToRune(src[m.Index], m.MatchedIndexes) {
				a.matched[pos] = struct{}{}
			}
		}
	}

	var out []Result
	for idx, a := range found {
		if a.hits < len(words) {
			continue
		}
		out = append(out, Result{
			Index:          idx,
			Painting:       items[idx],
			Label:          display[idx],
			MatchedIndexes: sortedKeys(a.matched),
			Score:          a.score,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// tokenize lowercases text and splits it on anything that is not a letter
// or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// byteToRune converts fuzzy's byte offsets into rune offsets so callers
// can highlight labels containing Cyrillic titles.
func byteToRune(s string, idx []int) []int {
	if len(idx) == 0 {
		return nil
	}
	want := make(map[int]bool, len(idx))
	for _, i := range idx {
		want[i] = true
	}
	out := make([]int, 0, len(idx))
	r := 0
	for b := range s {
		if want[b] {
			out = append(out, r)
		}
		r++
	}
	return out
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
