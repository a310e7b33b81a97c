package domain

import (
	"context"
)

// CatalogRepository reads the paginated listing from the backend.
type CatalogRepository interface {
	// FetchCatalogPage returns one page of paintings matching q.
	// The visitor token travels in a header, never in the query string.
	FetchCatalogPage(ctx context.Context, q CatalogQuery, page, pageSize int, visitorToken string) (CatalogPage, error)
}

// PaintingRepository reads single paintings and their neighbourhood.
type PaintingRepository interface {
	// GetPainting returns the full record for id
	GetPainting(ctx context.Context, id string) (*PaintingDetail, error)

	// GetPaintingBySlug returns the full record for a URL slug
	GetPaintingBySlug(ctx context.Context, slug string) (*PaintingDetail, error)

	// Related returns the related strip of the given kind
	Related(ctx context.Context, id string, kind RelatedKind) ([]RelatedPainting, error)
}

// VisitorRepository performs visitor-scoped writes and reads.
type VisitorRepository interface {
	// ToggleLike likes (or unlikes) a painting for the visitor in meta
	ToggleLike(ctx context.Context, id string, meta RequestMeta) (LikeResult, error)

	// LikedIDs returns the IDs the visitor has liked
	LikedIDs(ctx context.Context, meta RequestMeta) ([]string, error)

	// RecordDetailsClick registers a detail view for analytics
	RecordDetailsClick(ctx context.Context, id string, meta RequestMeta) error

	// SubmitInquiry sends a contact request
	SubmitInquiry(ctx context.Context, in Inquiry, meta RequestMeta) error
}

// Backend is everything the storefront needs from the backend service.
type Backend interface {
	CatalogRepository
	PaintingRepository
	VisitorRepository
}
