package backend

import (
	"bytes"
	"encoding/json"
)

// flexID accepts identifiers sent either as JSON strings or numbers
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// PaintingsResponse is the listing envelope of GET /api/paintings
type PaintingsResponse struct {
	Items []PaintingDTO `json:"items"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Total int           `json:"total"`
}

// PaintingDTO is a listing entry. Most fields are nullable on the wire.
type PaintingDTO struct {
	ID               flexID   `json:"id"`
	Slug             *string  `json:"slug"`
	Title            *string  `json:"title"`
	TitleRU          *string  `json:"title_ru"`
	ArtistName       *string  `json:"artist_name"`
	ArtistID         *int64   `json:"artist_id"`
	Price            *float64 `json:"price"`
	Currency         *string  `json:"currency"`
	DomesticPrice    *float64 `json:"domestic_price"`
	DomesticCurrency *string  `json:"domestic_currency"`
	ExportPrice      *float64 `json:"export_price"`
	StyleName        *string  `json:"style_name"`
	MediumName       *string  `json:"medium_name"`
	CanvasName       *string  `json:"canvas_name"`
	CanvasHeight     *float64 `json:"canvas_height"`
	CanvasWidth      *float64 `json:"canvas_width"`
	ImageThumbnail   *string  `json:"image_thumbnail_filename"`
	ImageMidRes      *string  `json:"image_mid_res_filename"`
	Description      *string  `json:"description"`
	LikesCount       *int     `json:"likes_count"`
	ScrollRank       *float64 `json:"scroll_rank"`
}

// ColorDTO is one palette entry
type ColorDTO struct {
	Hex        string  `json:"hex"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// PaintingDetailDTO is the body of GET /api/paintings/{id}
type PaintingDetailDTO struct {
	PaintingDTO

	Year             *int       `json:"year"`
	DescriptionRU    *string    `json:"description_ru"`
	NotesRU          *string    `json:"notes_ru"`
	ArtistNameEN     *string    `json:"artist_name_en"`
	ArtistAbout      *string    `json:"artist_about"`
	ArtistAboutEN    *string    `json:"artist_about_en"`
	ArtistMinPrice   *float64   `json:"artist_min_price"`
	ArtistMaxPrice   *float64   `json:"artist_max_price"`
	ArtistWorksCount *int       `json:"artist_works_count"`
	Availability     *string    `json:"availability"`
	Colors           []ColorDTO `json:"colors"`
	Tags             []string   `json:"tags"`
	ImageFullRes     *string    `json:"image_full_res_filename"`
	Framed           *bool      `json:"framed"`
	Condition        *string    `json:"condition"`
}

// RelatedDTO is one entry of a related strip
type RelatedDTO struct {
	ID             flexID  `json:"id"`
	Slug           *string `json:"slug"`
	Title          *string `json:"title"`
	ImageThumbnail *string `json:"image_thumbnail_filename"`
	ArtistName     *string `json:"artist_name"`
}

// LikeResponse is the body of POST /api/paintings/{id}/like
type LikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount *int `json:"likes_count"`
}

// likedIDs accepts either a bare array or {"ids": [...]}
type likedIDs []flexID

func (l *likedIDs) UnmarshalJSON(b []byte) error {
	var arr []flexID
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var wrapped struct {
		IDs []flexID `json:"ids"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	*l = wrapped.IDs
	return nil
}

// InquiryRequest is the body of POST /api/contact/inquiry
type InquiryRequest struct {
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

// ErrorResponse is the error envelope some endpoints return
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e ErrorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}
