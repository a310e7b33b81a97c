package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RatingCriterion is one expert score from a painting's notes.
type RatingCriterion struct {
	Name  string
	Score float64 // clamped to [0, 10]
	Note  string
}

// Rating is the parsed expert evaluation of a painting.
type Rating struct {
	Criteria []RatingCriterion
	Average  float64
}

// scoreKeys are probed in order; the first numeric one wins.
var scoreKeys = []string{"score", "value", "rarity", "complexity", "quality", "appreciation"}

// namedScoreKeys name a criterion when no title is given.
var namedScoreKeys = []struct{ key, name string }{
	{"rarity", "Rarity"},
	{"complexity", "Complexity"},
	{"quality", "Quality"},
	{"appreciation", "Appreciation"},
}

// ParseRating decodes the notes blob, which is either a JSON array of
// criteria or an object with a "ratings" array. ok is false when the
// blob holds no criteria.
func ParseRating(notes string) (Rating, bool) {
	if notes == "" {
		return Rating{}, false
	}

	var raw json.RawMessage = []byte(notes)
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped struct {
			Ratings []map[string]any `json:"ratings"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return Rating{}, false
		}
		items = wrapped.Ratings
	}
	if len(items) == 0 {
		return Rating{}, false
	}

	var r Rating
	var sum float64
	for i, it := range items {
		c := RatingCriterion{
			Name:  criterionName(it, i),
			Score: criterionScore(it),
			Note:  firstString(it, "reason", "comment", "description"),
		}
		sum += c.Score
		r.Criteria = append(r.Criteria, c)
	}
	r.Average = sum / float64(len(r.Criteria))
	return r, true
}

func criterionScore(it map[string]any) float64 {
	for _, k := range scoreKeys {
		v, present := it[k]
		if !present {
			continue
		}
		n, ok := toNumber(v)
		if !ok {
			continue
		}
		return math.Max(0, math.Min(10, n))
	}
	return 0
}

// toNumber converts a JSON value the way the web storefront coerces
// scores: null and "" are 0, numeric strings parse, bools are 0 or 1.
func toNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0, true
	case float64:
		n = x
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func criterionName(it map[string]any, i int) string {
	if s := firstString(it, "title", "criterion"); s != "" {
		return s
	}
	for _, nk := range namedScoreKeys {
		if v, ok := it[nk.key]; ok && v != nil {
			return nk.name
		}
	}
	return fmt.Sprintf("Criterion %d", i+1)
}

func firstString(it map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := it[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
