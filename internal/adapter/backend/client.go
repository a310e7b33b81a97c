// Package backend is the HTTP client for the catalog backend service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/suhanovs/paintx-frontend/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "PaintX/1.0"

	headerVisitor      = "x-visitor-cookie"
	headerForwardedFor = "x-forwarded-for"
	headerRealIP       = "x-real-ip"
)

// Client implements domain.Backend over the backend's JSON API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new backend API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// request describes one backend call
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	meta   domain.RequestMeta
}

// do performs the HTTP request and returns the body of a 2xx response.
// Transport failures and other statuses become *domain.FetchError.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", r.op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.meta.VisitorToken != "" {
		req.Header.Set(headerVisitor, r.meta.VisitorToken)
	}
	if r.meta.ForwardedFor != "" {
		req.Header.Set(headerForwardedFor, r.meta.ForwardedFor)
	}
	if r.meta.RealIP != "" {
		req.Header.Set(headerRealIP, r.meta.RealIP)
	}

	c.logger.Debug("backend request", "op", r.op, "method", r.method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "op", r.op, "error", err)
		return nil, &domain.FetchError{Op: r.op, URL: reqURL, Err: fmt.Errorf("%w: %v", domain.ErrServerOffline, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Op: r.op, URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	c.logger.Error("backend request error", "op", r.op, "status", resp.StatusCode, "body", truncate(data, 512))
	return nil, &domain.FetchError{Op: r.op, URL: reqURL, StatusCode: resp.StatusCode, Err: statusError(resp.StatusCode, data)}
}

func statusError(code int, body []byte) error {
	switch code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	}
	var e ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.text() != "" {
		return fmt.Errorf("unexpected status code: %d: %s", code, e.text())
	}
	return fmt.Errorf("unexpected status code: %d", code)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// decode parses a JSON body into dest
func (c *Client) decode(op string, body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "op", op, "error", err, "bodyLen", len(body))
		return &domain.ParseError{Op: op, Err: err}
	}
	return nil
}

// FetchCatalogPage returns one page of the listing
func (c *Client) FetchCatalogPage(ctx context.Context, q domain.CatalogQuery, page, pageSize int, visitorToken string) (domain.CatalogPage, error) {
	const op = "fetch catalog page"
	body, err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   "/api/paintings",
		query:  q.BackendParams(page, pageSize),
		meta:   domain.RequestMeta{VisitorToken: visitorToken},
	})
	if err != nil {
		return domain.CatalogPage{}, err
	}

	var resp PaintingsResponse
	if err := c.decode(op, body, &resp); err != nil {
		return domain.CatalogPage{}, err
	}
	return MapCatalogPage(resp, page), nil
}

// GetPainting returns the full record for id
func (c *Client) GetPainting(ctx context.Context, id string) (*domain.PaintingDetail, error) {
	return c.getDetail(ctx, "get painting", "/api/paintings/"+url.PathEscape(id))
}

// GetPaintingBySlug returns the full record for a URL slug
func (c *Client) GetPaintingBySlug(ctx context.Context, slug string) (*domain.PaintingDetail, error) {
	return c.getDetail(ctx, "get painting by slug", "/api/paintings/slug/"+url.PathEscape(slug))
}

func (c *Client) getDetail(ctx context.Context, op, path string) (*domain.PaintingDetail, error) {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	var dto PaintingDetailDTO
	if err := c.decode(op, body, &dto); err != nil {
		return nil, err
	}
	return MapPaintingDetail(dto), nil
}

// Related returns the related strip of the given kind
func (c *Client) Related(ctx context.Context, id string, kind domain.RelatedKind) ([]domain.RelatedPainting, error) {
	op := "related by " + string(kind)
	path := fmt.Sprintf("/api/paintings/%s/related/%s", url.PathEscape(id), kind)
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	var dtos []RelatedDTO
	if err := c.decode(op, body, &dtos); err != nil {
		return nil, err
	}
	return MapRelated(dtos), nil
}

// ToggleLike likes a painting for the visitor
func (c *Client) ToggleLike(ctx context.Context, id string, meta domain.RequestMeta) (domain.LikeResult, error) {
	const op = "toggle like"
	body, err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/api/paintings/" + url.PathEscape(id) + "/like",
		meta:   meta,
	})
	if err != nil {
		return domain.LikeResult{}, err
	}
	var resp LikeResponse
	if err := c.decode(op, body, &resp); err != nil {
		return domain.LikeResult{}, err
	}
	return domain.LikeResult{Liked: resp.Liked, LikesCount: integer(resp.LikesCount)}, nil
}

// LikedIDs returns the IDs the visitor has liked
func (c *Client) LikedIDs(ctx context.Context, meta domain.RequestMeta) ([]string, error) {
	const op = "liked ids"
	if meta.VisitorToken == "" {
		return nil, nil
	}
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/visitor/likes", meta: meta})
	if err != nil {
		return nil, err
	}
	var ids likedIDs
	if err := c.decode(op, body, &ids); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out, nil
}

// RecordDetailsClick registers a detail view
func (c *Client) RecordDetailsClick(ctx context.Context, id string, meta domain.RequestMeta) error {
	_, err := c.do(ctx, request{
		op:     "record details click",
		method: http.MethodPost,
		path:   "/api/paintings/" + url.PathEscape(id) + "/details-click",
		meta:   meta,
	})
	return err
}

// SubmitInquiry sends a contact request
func (c *Client) SubmitInquiry(ctx context.Context, in domain.Inquiry, meta domain.RequestMeta) error {
	_, err := c.do(ctx, request{
		op:     "submit inquiry",
		method: http.MethodPost,
		path:   "/api/contact/inquiry",
		body:   InquiryRequest{Email: in.Email, Comment: in.Comment},
		meta:   meta,
	})
	return err
}
