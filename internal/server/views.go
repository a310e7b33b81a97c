package server

import "github.com/suhanovs/paintx-frontend/internal/domain"

// The proxy answers in the backend's own wire shape so browser code can
// talk to either.

type paintingView struct {
	ID               string  `json:"id"`
	Slug             string  `json:"slug,omitempty"`
	Title            string  `json:"title,omitempty"`
	TitleRU          string  `json:"title_ru,omitempty"`
	ArtistName       string  `json:"artist_name,omitempty"`
	ArtistID         int64   `json:"artist_id,omitempty"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency,omitempty"`
	PriceLabel       string  `json:"price_label"`
	DomesticPrice    float64 `json:"domestic_price,omitempty"`
	DomesticCurrency string  `json:"domestic_currency,omitempty"`
	ExportPrice      float64 `json:"export_price,omitempty"`
	StyleName        string  `json:"style_name,omitempty"`
	MediumName       string  `json:"medium_name,omitempty"`
	CanvasName       string  `json:"canvas_name,omitempty"`
	CanvasHeight     float64 `json:"canvas_height,omitempty"`
	CanvasWidth      float64 `json:"canvas_width,omitempty"`
	ThumbnailFile    string  `json:"image_thumbnail_filename,omitempty"`
	MidResFile       string  `json:"image_mid_res_filename,omitempty"`
	ThumbnailURL     string  `json:"image_thumbnail_url,omitempty"`
	Description      string  `json:"description,omitempty"`
	LikesCount       int     `json:"likes_count"`
	ScrollRank       float64 `json:"scroll_rank,omitempty"`
}

type colorView struct {
	Hex        string  `json:"hex"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type ratingView struct {
	Criteria []criterionView `json:"criteria"`
	Average  float64         `json:"average"`
}

type criterionView struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Note  string  `json:"note,omitempty"`
}

type priceRangeView struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Percent float64 `json:"percent"`
}

type detailView struct {
	paintingView

	Year             int             `json:"year,omitempty"`
	DescriptionRU    string          `json:"description_ru,omitempty"`
	NotesRU          string          `json:"notes_ru,omitempty"`
	ArtistNameEN     string          `json:"artist_name_en,omitempty"`
	ArtistAbout      string          `json:"artist_about,omitempty"`
	ArtistAboutEN    string          `json:"artist_about_en,omitempty"`
	ArtistMinPrice   float64         `json:"artist_min_price,omitempty"`
	ArtistMaxPrice   float64         `json:"artist_max_price,omitempty"`
	ArtistWorksCount int             `json:"artist_works_count,omitempty"`
	Availability     string          `json:"availability,omitempty"`
	Colors           []colorView     `json:"colors,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
	FullResFile      string          `json:"image_full_res_filename,omitempty"`
	FullResURL       string          `json:"image_full_res_url,omitempty"`
	Framed           *bool           `json:"framed,omitempty"`
	Condition        string          `json:"condition,omitempty"`
	CanvasSize       string          `json:"canvas_size,omitempty"`
	Rating           *ratingView     `json:"rating,omitempty"`
	PriceRange       *priceRangeView `json:"artist_price_range,omitempty"`
}

type relatedView struct {
	ID            string `json:"id"`
	Slug          string `json:"slug,omitempty"`
	Title         string `json:"title,omitempty"`
	ThumbnailFile string `json:"image_thumbnail_filename,omitempty"`
	ArtistName    string `json:"artist_name,omitempty"`
}

type listingView struct {
	Items []paintingView `json:"items"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
	Total int            `json:"total"`
}

type likeView struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// errorView is the envelope of every failed request.
type errorView struct {
	Message string     `json:"message"`
	Error   bool       `json:"error"`
	Rate    *RateState `json:"rate_limit,omitempty"`
}

func (s *Server) paintingView(p domain.Painting) paintingView {
	v := paintingView{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		TitleRU:          p.TitleRU,
		ArtistName:       p.ArtistName,
		ArtistID:         p.ArtistID,
		Price:            p.Price,
		Currency:         p.Currency,
		PriceLabel:       domain.FormatPrice(p.Price, p.Currency),
		DomesticPrice:    p.DomesticPrice,
		DomesticCurrency: p.DomesticCurrency,
		ExportPrice:      p.ExportPrice,
		StyleName:        p.StyleName,
		MediumName:       p.MediumName,
		CanvasName:       p.CanvasName,
		CanvasHeight:     p.CanvasHeight,
		CanvasWidth:      p.CanvasWidth,
		ThumbnailFile:    p.ThumbnailFile,
		MidResFile:       p.MidResFile,
		Description:      p.Description,
		LikesCount:       p.LikesCount,
		ScrollRank:       p.ScrollRank,
	}
	if p.ThumbnailFile != "" {
		v.ThumbnailURL = s.images.Thumb(p.ThumbnailFile)
	}
	return v
}

func (s *Server) listingView(p domain.CatalogPage) listingView {
	items := make([]paintingView, len(p.Items))
	for i, it := range p.Items {
		items[i] = s.paintingView(it)
	}
	return listingView{Items: items, Page: p.Page, Pages: p.TotalPages, Total: p.Total}
}

func (s *Server) detailView(d *domain.PaintingDetail) detailView {
	v := detailView{
		paintingView:     s.paintingView(d.Painting),
		Year:             d.Year,
		DescriptionRU:    d.DescriptionRU,
		NotesRU:          d.NotesRU,
		ArtistNameEN:     d.ArtistNameEN,
		ArtistAbout:      d.ArtistAbout,
		ArtistAboutEN:    d.ArtistAboutEN,
		ArtistMinPrice:   d.ArtistMinPrice,
		ArtistMaxPrice:   d.ArtistMaxPrice,
		ArtistWorksCount: d.ArtistWorksCount,
		Availability:     d.Availability,
		Tags:             d.Tags,
		FullResFile:      d.FullResFile,
		Framed:           d.Framed,
		Condition:        d.Condition,
		CanvasSize:       domain.CanvasSize(d.CanvasHeight, d.CanvasWidth),
	}
	for _, c := range d.Colors {
		v.Colors = append(v.Colors, colorView{Hex: c.Hex, Name: c.Name, Percentage: c.Percentage})
	}
	if d.FullResFile != "" {
		v.FullResURL = s.images.Full(d.FullResFile)
	}
	if r, ok := domain.ParseRating(d.NotesRU); ok {
		rv := &ratingView{Average: r.Average}
		for _, c := range r.Criteria {
			rv.Criteria = append(rv.Criteria, criterionView{Name: c.Name, Score: c.Score, Note: c.Note})
		}
		v.Rating = rv
	}
	if pct, ok := domain.PricePosition(d.ArtistMinPrice, d.ArtistMaxPrice, d.Price, d.ArtistWorksCount); ok {
		v.PriceRange = &priceRangeView{Min: d.ArtistMinPrice, Max: d.ArtistMaxPrice, Percent: pct}
	}
	return v
}

func relatedViews(items []domain.RelatedPainting) []relatedView {
	out := make([]relatedView, len(items))
	for i, r := range items {
		out[i] = relatedView{ID: r.ID, Slug: r.Slug, Title: r.Title, ThumbnailFile: r.ThumbnailFile, ArtistName: r.ArtistName}
	}
	return out
}
