package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/facets"
)

const maxPageSize = 100

func (s *Server) listPaintings(c *gin.Context) {
	q, page := domain.DecodeListing(c.Request.URL.Query())

	size := s.opts.PageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "Invalid limit")
			return
		}
		size = min(n, maxPageSize)
	}

	p, err := s.backend.FetchCatalogPage(c.Request.Context(), q, page, size, c.GetString(visitorKey))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.listingView(p))
}

func (s *Server) getPainting(c *gin.Context) {
	d, err := s.backend.GetPainting(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.detailView(d))
}

func (s *Server) getPaintingBySlug(c *gin.Context) {
	d, err := s.backend.GetPaintingBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.detailView(d))
}

func (s *Server) related(c *gin.Context) {
	kind := domain.RelatedKind(c.Param("kind"))
	if kind != domain.RelatedByArtist && kind != domain.RelatedByStyle {
		badRequest(c, "Unknown related kind")
		return
	}
	items, err := s.backend.Related(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, relatedViews(items))
}

func (s *Server) toggleLike(c *gin.Context) {
	res, err := s.backend.ToggleLike(c.Request.Context(), c.Param("id"), requestMeta(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likeView{Liked: res.Liked, LikesCount: res.LikesCount})
}

func (s *Server) detailsClick(c *gin.Context) {
	if err := s.backend.RecordDetailsClick(c.Request.Context(), c.Param("id"), requestMeta(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) likedIDs(c *gin.Context) {
	ids, err := s.backend.LikedIDs(c.Request.Context(), requestMeta(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

type inquiryRequest struct {
	Email   string `json:"email" binding:"required,email,max=254"`
	Comment string `json:"comment" binding:"max=5000"`
}

func (s *Server) submitInquiry(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "A valid email is required")
		return
	}
	in := domain.Inquiry{Email: strings.TrimSpace(req.Email), Comment: strings.TrimSpace(req.Comment)}
	if err := s.backend.SubmitInquiry(c.Request.Context(), in, requestMeta(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listFacets(c *gin.Context) {
	ix, err := s.facets.Get(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ix)
}

type facetView struct {
	Kind        facets.Kind `json:"kind"`
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	ListingURL  string      `json:"listing_url"`
	Meta        Meta        `json:"meta"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

func (s *Server) resolveFacet(c *gin.Context) {
	kind := facets.Kind(c.Param("kind"))
	if !kind.Valid() {
		badRequest(c, "Unknown facet")
		return
	}
	slug := c.Param("slug")

	ix, err := s.facets.Get(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	name, ok := ix.Resolve(kind, slug)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":     "Not found",
			"error":       true,
			"suggestions": ix.Suggest(kind, slug, 5),
		})
		return
	}

	_, page := domain.DecodeListing(c.Request.URL.Query())
	c.JSON(http.StatusOK, facetView{
		Kind:       kind,
		Slug:       slug,
		Name:       name,
		ListingURL: domain.ListingURL(facets.Query(name), page),
		Meta:       s.facetMeta(kind, name, slug, page),
	})
}

// meta answers ?slug= with painting metadata and anything else with the
// listing metadata for the given listing parameters.
func (s *Server) meta(c *gin.Context) {
	if slug := c.Query("slug"); slug != "" {
		d, err := s.backend.GetPaintingBySlug(c.Request.Context(), slug)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, s.paintingMeta(d, s.now()))
		return
	}
	q, page := domain.DecodeListing(c.Request.URL.Query())
	c.JSON(http.StatusOK, s.listingMeta(q, page))
}

// sitemap degrades to the home page alone when the catalog walk fails.
func (s *Server) sitemap(c *gin.Context) {
	var slugs []string
	if ix, err := s.facets.Get(c.Request.Context()); err != nil {
		s.logger.Warn("sitemap without paintings", "error", err)
	} else {
		slugs = ix.Slugs
	}

	body, err := buildSitemap(s.siteURL(), slugs, s.now())
	if err != nil {
		s.logger.Error("failed to render sitemap", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
