package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
	"github.com/suhanovs/paintx-frontend/internal/adapter/backend"
	"github.com/suhanovs/paintx-frontend/internal/domain"
)

func newClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, 5*time.Second, adapter.NullLogger())
}

func TestFetchCatalogPage_Request(t *testing.T) {
	var got *http.Request
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = io.WriteString(w, `{"items":[{"id":7,"title":"Sea","price":1200,"currency":"USD"},{"id":"a8","title":null}],"page":2,"pages":3,"total":62}`)
	})

	q := domain.DefaultQuery()
	page, err := c.FetchCatalogPage(context.Background(), q, 2, 30, "tok-123")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/paintings", got.URL.Path)
	params := got.URL.Query()
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "30", params.Get("limit"))
	assert.Equal(t, "available", params.Get("status"))
	assert.Equal(t, "newest", params.Get("sort"))
	assert.False(t, params.Has("search"), "empty search is omitted")
	assert.NotContains(t, got.URL.RawQuery, "tok-123", "token never travels in the query")
	assert.Equal(t, "tok-123", got.Header.Get("x-visitor-cookie"))

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 62, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "7", page.Items[0].ID)
	assert.Equal(t, "a8", page.Items[1].ID)
	assert.Equal(t, 1200.0, page.Items[0].Price)
	assert.True(t, page.HasMore())
}

func TestFetchCatalogPage_RepairsPageCount(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[{"id":1}],"page":4,"pages":2,"total":1}`)
	})

	page, err := c.FetchCatalogPage(context.Background(), domain.DefaultQuery(), 4, 30, "")
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalPages)
	assert.False(t, page.HasMore())
}

func TestFetchCatalogPage_Errors(t *testing.T) {
	t.Run("non-2xx is a fetch error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.FetchCatalogPage(context.Background(), domain.DefaultQuery(), 1, 30, "")

		var fe *domain.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
		assert.True(t, domain.IsFetchFailure(err))
	})

	t.Run("bad body is a parse error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>oops</html>`)
		})
		_, err := c.FetchCatalogPage(context.Background(), domain.DefaultQuery(), 1, 30, "")

		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
		assert.True(t, domain.IsFetchFailure(err))
	})

	t.Run("transport failure is offline", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := backend.NewClient(srv.URL, time.Second, adapter.NullLogger())

		_, err := c.FetchCatalogPage(context.Background(), domain.DefaultQuery(), 1, 30, "")
		assert.ErrorIs(t, err, domain.ErrServerOffline)
	})

	t.Run("no retries", func(t *testing.T) {
		calls := 0
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := c.FetchCatalogPage(context.Background(), domain.DefaultQuery(), 1, 30, "")
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestGetPainting(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/paintings/42":
			_, _ = io.WriteString(w, `{"id":42,"slug":"sea","title":"Sea","year":1999,"colors":[{"hex":"#fff","name":"white","percentage":40}],"framed":true,"artist_min_price":100,"artist_max_price":900,"artist_works_count":4}`)
		case "/api/paintings/slug/sea":
			_, _ = io.WriteString(w, `{"id":42,"slug":"sea"}`)
		default:
			http.NotFound(w, r)
		}
	})

	d, err := c.GetPainting(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", d.ID)
	assert.Equal(t, 1999, d.Year)
	require.Len(t, d.Colors, 1)
	require.NotNil(t, d.Framed)
	assert.True(t, *d.Framed)
	assert.Equal(t, 4, d.ArtistWorksCount)

	d, err = c.GetPaintingBySlug(context.Background(), "sea")
	require.NoError(t, err)
	assert.Equal(t, "sea", d.Slug)

	_, err = c.GetPainting(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelated(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/paintings/9/related/style", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"slug":"a","title":"A","image_thumbnail_filename":"a.jpg","artist_name":"X"}]`)
	})

	items, err := c.Related(context.Background(), "9", domain.RelatedByStyle)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a.jpg", items[0].ThumbnailFile)
}

func TestVisitorCalls(t *testing.T) {
	meta := domain.RequestMeta{VisitorToken: "vid", ForwardedFor: "1.2.3.4", RealIP: "1.2.3.4"}

	t.Run("like forwards the visitor", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/paintings/5/like", r.URL.Path)
			assert.Equal(t, "vid", r.Header.Get("x-visitor-cookie"))
			_, _ = io.WriteString(w, `{"liked":true,"likes_count":11}`)
		})
		res, err := c.ToggleLike(context.Background(), "5", meta)
		require.NoError(t, err)
		assert.Equal(t, domain.LikeResult{Liked: true, LikesCount: 11}, res)
	})

	t.Run("liked ids accept both shapes", func(t *testing.T) {
		for _, body := range []string{`["1",2]`, `{"ids":["1",2]}`} {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			ids, err := c.LikedIDs(context.Background(), meta)
			require.NoError(t, err)
			assert.Equal(t, []string{"1", "2"}, ids)
		}
	})

	t.Run("details click forwards client ip", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/paintings/5/details-click", r.URL.Path)
			assert.Equal(t, "1.2.3.4", r.Header.Get("x-forwarded-for"))
			assert.Equal(t, "1.2.3.4", r.Header.Get("x-real-ip"))
			w.WriteHeader(http.StatusNoContent)
		})
		require.NoError(t, c.RecordDetailsClick(context.Background(), "5", meta))
	})

	t.Run("inquiry posts json", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@b.co", body["email"])
			assert.Equal(t, "hello", body["comment"])
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = io.WriteString(w, `{"ok":true}`)
		})
		require.NoError(t, c.SubmitInquiry(context.Background(), domain.Inquiry{Email: "a@b.co", Comment: "hello"}, meta))
	})

	t.Run("rate limited inquiry", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		err := c.SubmitInquiry(context.Background(), domain.Inquiry{Email: "a@b.co"}, meta)
		assert.True(t, errors.Is(err, domain.ErrRateLimited))
	})
}
