package domain

import "time"

// Painting is a single catalog entry as returned by the listing endpoint.
// The loader treats it as opaque and only relies on ID.
type Painting struct {
	ID               string  // Backend identifier (string or numeric on the wire)
	Slug             string  // URL slug for the detail page
	Title            string  // English title
	TitleRU          string  // Russian title
	ArtistName       string  // Display name of the artist
	ArtistID         int64   // Backend artist identifier
	Price            float64 // Storefront price
	Currency         string  // ISO code of Price
	DomesticPrice    float64 // Price in the domestic market
	DomesticCurrency string  // ISO code of DomesticPrice
	ExportPrice      float64 // Export price, 0 when unknown
	StyleName        string  // Style facet value
	MediumName       string  // Medium facet value (listing may omit it)
	CanvasName       string  // Canvas facet value (listing may omit it)
	CanvasHeight     float64 // Centimetres
	CanvasWidth      float64 // Centimetres
	ThumbnailFile    string  // Thumbnail image filename
	MidResFile       string  // Mid resolution image filename
	Description      string
	LikesCount       int
	ScrollRank       float64 // Backend ranking hint, passed through untouched
}

// DisplayTitle returns the best available title.
func (p Painting) DisplayTitle() string {
	switch {
	case p.Title != "":
		return p.Title
	case p.TitleRU != "":
		return p.TitleRU
	default:
		return "Untitled"
	}
}

// Color is one entry of the dominant palette of a painting.
type Color struct {
	Hex        string
	Name       string
	Percentage float64
}

// PaintingDetail is the full record shown on the detail view.
type PaintingDetail struct {
	Painting

	Year             int
	DescriptionRU    string
	NotesRU          string // JSON blob with expert ratings, see ParseRating
	ArtistNameEN     string
	ArtistAbout      string
	ArtistAboutEN    string
	ArtistMinPrice   float64
	ArtistMaxPrice   float64
	ArtistWorksCount int
	Availability     string // "available", "sold", ...
	Colors           []Color
	Tags             []string
	FullResFile      string
	Framed           *bool // nil when unknown
	Condition        string
}

// RelatedKind selects which related strip to fetch.
type RelatedKind string

const (
	RelatedByArtist RelatedKind = "artist"
	RelatedByStyle  RelatedKind = "style"
)

// RelatedPainting is a compact entry of a related strip.
type RelatedPainting struct {
	ID            string
	Slug          string
	Title         string
	ThumbnailFile string
	ArtistName    string
}

// CatalogPage is one page of the listing.
type CatalogPage struct {
	Items      []Painting
	Page       int // 1-based
	TotalPages int
	Total      int
}

// HasMore reports whether pages after this one exist.
func (p CatalogPage) HasMore() bool {
	return p.Page < p.TotalPages
}

// LikeResult is the backend answer to a like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

// Inquiry is a contact request submitted from the storefront.
type Inquiry struct {
	Email   string
	Comment string
}

// RequestMeta carries per-request identity headers forwarded to the backend.
type RequestMeta struct {
	VisitorToken string
	ForwardedFor string
	RealIP       string
}

// VisitorIdentity is the durable anonymous visitor token.
type VisitorIdentity struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the identity can be reused at time now.
func (v VisitorIdentity) Valid(now time.Time) bool {
	return v.Token != "" && now.Before(v.ExpiresAt)
}
