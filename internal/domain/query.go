package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Status filters the catalog by availability.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusAll       Status = "all"
	StatusLiked     Status = "liked" // paintings the current visitor liked
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusSold, StatusAll, StatusLiked}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusAll, StatusLiked:
		return true
	}
	return false
}

// Label returns the human readable name.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusSold:
		return "Sold"
	case StatusAll:
		return "All"
	case StatusLiked:
		return "Liked"
	default:
		return string(s)
	}
}

// Sort orders the catalog.
type Sort string

const (
	SortNewest        Sort = "newest"
	SortOldest        Sort = "oldest"
	SortPriceDesc     Sort = "price_desc"
	SortPriceAsc      Sort = "price_asc"
	SortYearAsc       Sort = "year_asc"
	SortYearDesc      Sort = "year_desc"
	SortListingOldest Sort = "listing_oldest"
)

// Sorts lists every sort order in display order.
var Sorts = []Sort{SortNewest, SortOldest, SortPriceDesc, SortPriceAsc, SortYearAsc, SortYearDesc, SortListingOldest}

// Valid reports whether s is a known sort order.
func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceDesc, SortPriceAsc, SortYearAsc, SortYearDesc, SortListingOldest:
		return true
	}
	return false
}

// Label returns the human readable name.
func (s Sort) Label() string {
	switch s {
	case SortNewest:
		return "Newest"
	case SortOldest:
		return "Oldest"
	case SortPriceDesc:
		return "Price: high to low"
	case SortPriceAsc:
		return "Price: low to high"
	case SortYearAsc:
		return "Year: old to new"
	case SortYearDesc:
		return "Year: new to old"
	case SortListingOldest:
		return "Longest listed"
	default:
		return string(s)
	}
}

// Strategy is an optional curated selection applied by the backend.
type Strategy string

const (
	StrategyNone                Strategy = ""
	StrategyTopSellersAvailable Strategy = "top_sellers_available"
	StrategyAuthorTop25         Strategy = "author_top_25"
	StrategyAuthorBottom25      Strategy = "author_bottom_25"
)

// Strategies lists the non-empty strategies.
var Strategies = []Strategy{StrategyTopSellersAvailable, StrategyAuthorTop25, StrategyAuthorBottom25}

// Valid reports whether s is empty or a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, StrategyTopSellersAvailable, StrategyAuthorTop25, StrategyAuthorBottom25:
		return true
	}
	return false
}

// Listing and backend query parameter names.
const (
	ParamSearch   = "search"
	ParamStatus   = "status"
	ParamSort     = "sort"
	ParamMinPrice = "min_price"
	ParamStrategy = "strategy"
	ParamPage     = "page"
	ParamLimit    = "limit"
)

// CatalogQuery is the full filter state of the listing. It is a value
// type: widgets copy it, change one field and emit the whole value.
type CatalogQuery struct {
	Text     string // free text, empty means no filter
	Status   Status
	Sort     Sort
	MinPrice *int // nil means no lower bound
	Strategy Strategy
}

// DefaultQuery returns the query used when nothing is selected.
func DefaultQuery() CatalogQuery {
	return CatalogQuery{Status: StatusAvailable, Sort: SortNewest}
}

// Normalize trims the text and replaces invalid fields with defaults.
func (q CatalogQuery) Normalize() CatalogQuery {
	q.Text = strings.TrimSpace(q.Text)
	if !q.Status.Valid() {
		q.Status = StatusAvailable
	}
	if !q.Sort.Valid() {
		q.Sort = SortNewest
	}
	if !q.Strategy.Valid() {
		q.Strategy = StrategyNone
	}
	if q.MinPrice != nil {
		if *q.MinPrice < 0 {
			q.MinPrice = nil
		} else {
			v := *q.MinPrice
			q.MinPrice = &v
		}
	}
	return q
}

// Equal compares two queries by value.
func (q CatalogQuery) Equal(o CatalogQuery) bool {
	if q.Text != o.Text || q.Status != o.Status || q.Sort != o.Sort || q.Strategy != o.Strategy {
		return false
	}
	switch {
	case q.MinPrice == nil && o.MinPrice == nil:
		return true
	case q.MinPrice == nil || o.MinPrice == nil:
		return false
	default:
		return *q.MinPrice == *o.MinPrice
	}
}

// IsDefault reports whether no facet deviates from DefaultQuery.
func (q CatalogQuery) IsDefault() bool {
	return q.Equal(DefaultQuery())
}

// Indexable reports whether a listing page for q may be indexed by
// search engines. Only the unfiltered first page is.
func (q CatalogQuery) Indexable(page int) bool {
	return q.IsDefault() && page <= 1
}

// WithMinPrice returns a copy of q with the lower price bound set.
func (q CatalogQuery) WithMinPrice(v int) CatalogQuery {
	q.MinPrice = &v
	return q
}

// BackendParams encodes q for the backend listing endpoint. Status and
// sort are always sent; search, min_price and strategy only when set.
func (q CatalogQuery) BackendParams(page, pageSize int) url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(page))
	v.Set(ParamLimit, strconv.Itoa(pageSize))
	if q.Text != "" {
		v.Set(ParamSearch, q.Text)
	}
	status, sort := q.Status, q.Sort
	if status == "" {
		status = StatusAvailable
	}
	if sort == "" {
		sort = SortNewest
	}
	v.Set(ParamStatus, string(status))
	v.Set(ParamSort, string(sort))
	if q.MinPrice != nil {
		v.Set(ParamMinPrice, strconv.Itoa(*q.MinPrice))
	}
	if q.Strategy != StrategyNone {
		v.Set(ParamStrategy, string(q.Strategy))
	}
	return v
}

// EncodeListing encodes q and page as shareable listing parameters.
// Default values are omitted so the unfiltered first page has no query.
func EncodeListing(q CatalogQuery, page int) url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set(ParamSearch, q.Text)
	}
	if q.Status != "" && q.Status != StatusAvailable {
		v.Set(ParamStatus, string(q.Status))
	}
	if q.Sort != "" && q.Sort != SortNewest {
		v.Set(ParamSort, string(q.Sort))
	}
	if q.MinPrice != nil {
		v.Set(ParamMinPrice, strconv.Itoa(*q.MinPrice))
	}
	if q.Strategy != StrategyNone {
		v.Set(ParamStrategy, string(q.Strategy))
	}
	if page > 1 {
		v.Set(ParamPage, strconv.Itoa(page))
	}
	return v
}

// DecodeListing parses listing parameters. It never fails: unknown or
// malformed values fall back to their defaults.
func DecodeListing(v url.Values) (CatalogQuery, int) {
	q := CatalogQuery{
		Text:     v.Get(ParamSearch),
		Status:   Status(v.Get(ParamStatus)),
		Sort:     Sort(v.Get(ParamSort)),
		Strategy: Strategy(v.Get(ParamStrategy)),
	}
	if raw := v.Get(ParamMinPrice); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.MinPrice = &n
		}
	}
	page := 1
	if n, err := strconv.Atoi(v.Get(ParamPage)); err == nil && n > 1 {
		page = n
	}
	return q.Normalize(), page
}

// ListingURL renders q and page as a relative listing URL ("/?search=x").
func ListingURL(q CatalogQuery, page int) string {
	enc := EncodeListing(q, page).Encode()
	if enc == "" {
		return "/"
	}
	return "/?" + enc
}
