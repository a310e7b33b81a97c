package server

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/facets"
)

// Meta is the document metadata for one storefront page.
type Meta struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Canonical   string    `json:"canonical"`
	Robots      Robots    `json:"robots"`
	OpenGraph   OpenGraph `json:"open_graph"`
	StructData  any       `json:"structured_data,omitempty"`
}

// Robots is the crawler directive.
type Robots struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
}

// String renders the robots meta content ("noindex, follow").
func (r Robots) String() string {
	idx, fol := "index", "follow"
	if !r.Index {
		idx = "noindex"
	}
	if !r.Follow {
		fol = "nofollow"
	}
	return idx + ", " + fol
}

type OpenGraph struct {
	Type     string   `json:"type"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	SiteName string   `json:"site_name"`
	Images   []string `json:"images,omitempty"`
}

const (
	listingTitle       = "Buy Original Paintings | Contemporary & Classical Art"
	listingDescription = "Discover unique original paintings for your home. Works by established and emerging artists. Fall in love and buy fine art online at PaintX."
	descriptionLimit   = 155
)

// listingMeta describes the gallery listing. Only the unfiltered first
// page is indexable; every variant points its canonical at the root.
func (s *Server) listingMeta(q domain.CatalogQuery, page int) Meta {
	site := s.siteURL()
	org := site + "/#organization"
	return Meta{
		Title:       listingTitle + " | " + s.opts.SiteName,
		Description: listingDescription,
		Canonical:   site,
		Robots:      Robots{Index: q.Indexable(page), Follow: true},
		OpenGraph:   OpenGraph{Type: "website", URL: site, Title: s.opts.SiteName, SiteName: s.opts.SiteName},
		StructData: map[string]any{
			"@context": "https://schema.org",
			"@graph": []any{
				map[string]any{
					"@type": "Organization",
					"@id":   org,
					"name":  s.opts.SiteName,
					"url":   site,
					"logo":  site + "/logo.jpg",
				},
				map[string]any{
					"@type":     "WebSite",
					"@id":       site + "/#website",
					"url":       site,
					"name":      s.opts.SiteName,
					"publisher": map[string]any{"@id": org},
					"potentialAction": map[string]any{
						"@type":       "SearchAction",
						"target":      site + "/?search={search_term_string}",
						"query-input": "required name=search_term_string",
					},
				},
			},
		},
	}
}

// paintingMeta describes a detail page, with a Product offer when the
// painting has a price.
func (s *Server) paintingMeta(d *domain.PaintingDetail, now time.Time) Meta {
	site := s.siteURL()
	canonical := site + "/art/" + d.Slug
	title := d.Title
	if title == "" {
		title = "Painting"
	}
	artist := d.ArtistNameEN
	if artist == "" {
		artist = d.ArtistName
	}
	pageTitle := title
	if artist != "" {
		pageTitle = title + " by " + artist
	}

	desc := truncateRunes(d.Description, descriptionLimit)
	if desc == "" {
		desc = "Original painting"
		if artist != "" {
			desc += " by " + artist
		}
		desc += ". Browse and purchase fine art at PaintX."
	}

	var images []string
	if mid := s.images.Mid(d.MidResFile); mid != "" {
		images = append(images, mid)
	}

	product := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     pageTitle,
		"url":      canonical,
	}
	if len(images) > 0 {
		product["image"] = images[0]
	}
	if d.Price > 0 {
		availability := "https://schema.org/InStock"
		if strings.Contains(strings.ToLower(d.Availability), "sold") {
			availability = "https://schema.org/SoldOut"
		}
		offer := map[string]any{
			"@type":           "Offer",
			"price":           d.Price,
			"priceCurrency":   d.Currency,
			"availability":    availability,
			"url":             canonical,
			"priceValidUntil": now.Add(90 * 24 * time.Hour).Format("2006-01-02"),
			"seller":          map[string]any{"@type": "Organization", "name": s.opts.SiteName, "url": site},
		}
		cond := strings.ToLower(d.Condition)
		if strings.Contains(cond, "excellent") || strings.Contains(cond, "new") {
			offer["itemCondition"] = "https://schema.org/NewCondition"
		}
		product["offers"] = offer
	}

	return Meta{
		Title:       pageTitle,
		Description: desc,
		Canonical:   canonical,
		Robots:      Robots{Index: true, Follow: true},
		OpenGraph:   OpenGraph{Type: "website", URL: canonical, Title: pageTitle, SiteName: s.opts.SiteName, Images: images},
		StructData:  product,
	}
}

// facetMeta describes a style, artist, medium or canvas page.
func (s *Server) facetMeta(kind facets.Kind, name, slug string, page int) Meta {
	canonical := fmt.Sprintf("%s/%s/%s", s.siteURL(), kind, slug)
	title := fmt.Sprintf("%s paintings | %s", name, s.opts.SiteName)
	desc := fmt.Sprintf("Browse %s paintings on %s.", name, s.opts.SiteName)
	if kind == facets.KindArtist {
		desc = fmt.Sprintf("Browse paintings by %s on %s.", name, s.opts.SiteName)
	}
	return Meta{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		Robots:      Robots{Index: page <= 1, Follow: true},
		OpenGraph:   OpenGraph{Type: "website", URL: canonical, Title: title, SiteName: s.opts.SiteName, Images: []string{s.siteURL() + "/logo.jpg"}},
	}
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// buildSitemap lists the home page and every painting page.
func buildSitemap(site string, slugs []string, now time.Time) ([]byte, error) {
	mod := now.UTC().Format(time.RFC3339)
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: site, LastMod: mod, ChangeFreq: "daily", Priority: 1.0})
	for _, slug := range slugs {
		set.URLs = append(set.URLs, sitemapURL{Loc: site + "/art/" + slug, LastMod: mod, ChangeFreq: "weekly", Priority: 0.8})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
