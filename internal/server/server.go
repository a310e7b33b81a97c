// Package server is the storefront HTTP proxy: it fronts the catalog
// backend for browsers, attaches the visitor identity, and adds the
// facet, metadata and sitemap endpoints.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/facets"
	"github.com/suhanovs/paintx-frontend/internal/visitor"
)

const visitorKey = "visitorToken"

// Options configure the proxy.
type Options struct {
	SiteName       string
	SiteURL        string
	ImageBaseURL   string
	AllowedOrigins []string
	CookieSecure   bool
	PageSize       int
}

// Server serves the storefront API.
type Server struct {
	backend domain.Backend
	facets  *facets.Cache
	limiter Limiter
	opts    Options
	images  domain.ImageURLs
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a server. limiter may be nil to disable inquiry limits.
func New(backend domain.Backend, facetCache *facets.Cache, limiter Limiter, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SiteName == "" {
		opts.SiteName = "PaintX Art Gallery"
	}
	if opts.SiteURL == "" {
		opts.SiteURL = "https://www.paintx.art"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 30
	}
	return &Server{
		backend: backend,
		facets:  facetCache,
		limiter: limiter,
		opts:    opts,
		images:  domain.NewImageURLs(opts.ImageBaseURL),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Server) siteURL() string {
	return strings.TrimRight(s.opts.SiteURL, "/")
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", visitor.HeaderName},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/sitemap.xml", s.sitemap)

	api := r.Group("/api", s.visitorIdentity())
	api.GET("/paintings", s.listPaintings)
	api.GET("/paintings/slug/:slug", s.getPaintingBySlug)
	api.GET("/paintings/:id", s.getPainting)
	api.GET("/paintings/:id/related/:kind", s.related)
	api.POST("/paintings/:id/like", s.toggleLike)
	api.POST("/paintings/:id/details-click", s.detailsClick)
	api.GET("/visitor/likes", s.likedIDs)
	api.GET("/facets", s.listFacets)
	api.GET("/facets/:kind/:slug", s.resolveFacet)
	api.GET("/meta", s.meta)

	inquiry := api.Group("/contact")
	if s.limiter != nil {
		inquiry.Use(rateLimit(s.limiter, s.logger))
	}
	inquiry.POST("/inquiry", s.submitInquiry)

	return r
}

// visitorIdentity resolves the visitor token: the x-visitor-cookie header
// wins, then the paintx_vid cookie, and otherwise a token is minted and
// set as a cookie.
func (s *Server) visitorIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(visitor.HeaderName))
		if token == "" {
			jar := visitor.NewCookieJar(c.Writer, c.Request, s.opts.CookieSecure)
			token = visitor.New(jar, s.logger).EnsureToken(c.Request.Context())
		}
		c.Set(visitorKey, token)
		c.Next()
	}
}

// requestMeta collects the identity headers forwarded upstream.
func requestMeta(c *gin.Context) domain.RequestMeta {
	return domain.RequestMeta{
		VisitorToken: c.GetString(visitorKey),
		ForwardedFor: c.GetHeader("x-forwarded-for"),
		RealIP:       c.GetHeader("x-real-ip"),
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// fail writes the error envelope for err.
func (s *Server) fail(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("upstream request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, errorView{Message: msg, Error: true})
}

func errorStatus(err error) (int, string) {
	var parseErr *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests"
	case errors.Is(err, domain.ErrServerOffline):
		return http.StatusBadGateway, "Catalog is unavailable"
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "Invalid response from catalog"
	default:
		return http.StatusBadGateway, "Catalog request failed"
	}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorView{Message: msg, Error: true})
}
