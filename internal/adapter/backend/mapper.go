package backend

import (
	"strings"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func integer(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// MapPainting converts a listing DTO to a domain painting. The storefront
// price falls back to the export price, then the domestic price.
func MapPainting(d PaintingDTO) domain.Painting {
	p := domain.Painting{
		ID:               string(d.ID),
		Slug:             str(d.Slug),
		Title:            str(d.Title),
		TitleRU:          str(d.TitleRU),
		ArtistName:       str(d.ArtistName),
		Price:            num(d.Price),
		Currency:         str(d.Currency),
		DomesticPrice:    num(d.DomesticPrice),
		DomesticCurrency: str(d.DomesticCurrency),
		ExportPrice:      num(d.ExportPrice),
		StyleName:        str(d.StyleName),
		MediumName:       str(d.MediumName),
		CanvasName:       str(d.CanvasName),
		CanvasHeight:     num(d.CanvasHeight),
		CanvasWidth:      num(d.CanvasWidth),
		ThumbnailFile:    str(d.ImageThumbnail),
		MidResFile:       str(d.ImageMidRes),
		Description:      str(d.Description),
		LikesCount:       integer(d.LikesCount),
		ScrollRank:       num(d.ScrollRank),
	}
	if d.ArtistID != nil {
		p.ArtistID = *d.ArtistID
	}

	switch {
	case p.Price > 0:
	case p.ExportPrice > 0:
		p.Price, p.Currency = p.ExportPrice, "USD"
	case p.DomesticPrice > 0:
		p.Price, p.Currency = p.DomesticPrice, p.DomesticCurrency
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return p
}

// MapPaintings converts a page of listing DTOs
func MapPaintings(dtos []PaintingDTO) []domain.Painting {
	items := make([]domain.Painting, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, MapPainting(d))
	}
	return items
}

// MapCatalogPage converts the listing envelope, repairing page counts
// that violate page <= pages.
func MapCatalogPage(r PaintingsResponse, requested int) domain.CatalogPage {
	page := domain.CatalogPage{
		Items:      MapPaintings(r.Items),
		Page:       r.Page,
		TotalPages: r.Pages,
		Total:      r.Total,
	}
	if page.Page < 1 {
		page.Page = requested
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	if len(page.Items) > 0 && page.TotalPages < page.Page {
		page.TotalPages = page.Page
	}
	return page
}

// MapPaintingDetail converts the detail DTO
func MapPaintingDetail(d PaintingDetailDTO) *domain.PaintingDetail {
	out := &domain.PaintingDetail{
		Painting:         MapPainting(d.PaintingDTO),
		DescriptionRU:    str(d.DescriptionRU),
		NotesRU:          str(d.NotesRU),
		ArtistNameEN:     str(d.ArtistNameEN),
		ArtistAbout:      str(d.ArtistAbout),
		ArtistAboutEN:    str(d.ArtistAboutEN),
		ArtistMinPrice:   num(d.ArtistMinPrice),
		ArtistMaxPrice:   num(d.ArtistMaxPrice),
		ArtistWorksCount: integer(d.ArtistWorksCount),
		Availability:     str(d.Availability),
		Tags:             d.Tags,
		FullResFile:      str(d.ImageFullRes),
		Framed:           d.Framed,
		Condition:        str(d.Condition),
	}
	if d.Year != nil {
		out.Year = *d.Year
	}
	for _, c := range d.Colors {
		out.Colors = append(out.Colors, domain.Color{Hex: c.Hex, Name: c.Name, Percentage: c.Percentage})
	}
	return out
}

// MapRelated converts a related strip
func MapRelated(dtos []RelatedDTO) []domain.RelatedPainting {
	items := make([]domain.RelatedPainting, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, domain.RelatedPainting{
			ID:            string(d.ID),
			Slug:          str(d.Slug),
			Title:         str(d.Title),
			ThumbnailFile: str(d.ImageThumbnail),
			ArtistName:    str(d.ArtistName),
		})
	}
	return items
}
