package session_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/session"
	"github.com/suhanovs/paintx-frontend/internal/store"
)

func newCache(t *testing.T) *session.Cache {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return session.New(s, adapter.NullLogger())
}

func paintings(ids ...string) []domain.Painting {
	out := make([]domain.Painting, len(ids))
	for i, id := range ids {
		out[i] = domain.Painting{ID: id, Title: "Painting " + id}
	}
	return out
}

func TestCache_RestoreWithMarker(t *testing.T) {
	c := newCache(t)
	want := session.State{
		Items:      paintings("A", "B", "C"),
		Page:       1,
		TotalPages: 2,
		HasMore:    true,
		Query:      domain.DefaultQuery().WithMinPrice(10),
	}
	require.NoError(t, c.Save(want))
	require.NoError(t, c.MarkReturn(540))

	got, ok := c.TryRestore()
	require.True(t, ok)

	want.ScrollOffset = 540
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(session.State{}, "SavedAt")); diff != "" {
		t.Fatalf("restored state mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got.SavedAt.IsZero())
}

func TestCache_MarkerIsConsumed(t *testing.T) {
	c := newCache(t)
	require.NoError(t, c.Save(session.State{Items: paintings("A"), Page: 1, TotalPages: 1}))
	require.NoError(t, c.MarkReturn(10))

	_, ok := c.TryRestore()
	require.True(t, ok)

	_, ok = c.TryRestore()
	assert.False(t, ok, "second mount without a new marker must not restore")

	require.NoError(t, c.MarkReturn(0))
	_, ok = c.TryRestore()
	assert.True(t, ok, "snapshot persists until overwritten")
}

func TestCache_NoMarkerNoRestore(t *testing.T) {
	c := newCache(t)
	require.NoError(t, c.Save(session.State{Items: paintings("A"), Page: 1, TotalPages: 1}))

	_, ok := c.TryRestore()
	assert.False(t, ok)
}

func TestCache_MarkerWithoutSnapshot(t *testing.T) {
	c := newCache(t)
	require.NoError(t, c.MarkReturn(99))

	_, ok := c.TryRestore()
	assert.False(t, ok)
}

func TestCache_LastWriteWins(t *testing.T) {
	c := newCache(t)
	require.NoError(t, c.Save(session.State{Items: paintings("A"), Page: 1}))
	require.NoError(t, c.Save(session.State{Items: paintings("A", "B"), Page: 2}))

	require.NoError(t, c.MarkReturn(0))
	got, ok := c.TryRestore()
	require.True(t, ok)
	assert.Equal(t, 2, got.Page)
	assert.Len(t, got.Items, 2)
}
