package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/store"
)

type entry struct {
	Items []string
	Page  int
}

func TestStore_VisitorSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	want := domain.VisitorIdentity{Token: "abc", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}

	s, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveVisitor(want))
	require.NoError(t, s.Close())

	s, err = store.Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.GetVisitor()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Token, got.Token)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
}

func TestStore_SessionWipedOnReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveSession("snapshot", entry{Items: []string{"a"}, Page: 1}))

	var got entry
	ok, err := s.GetSession("snapshot", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Page)
	require.NoError(t, s.Close())

	s, err = store.Open(dir)
	require.NoError(t, err)
	defer s.Close()

	ok, err = s.GetSession("snapshot", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MemoryOnly(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)

	require.NoError(t, s.SaveSession("k", entry{Page: 3}))
	var got entry
	ok, err := s.GetSession("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.Page)

	require.NoError(t, s.DeleteSession("k"))
	ok, err = s.GetSession("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.GetVisitor()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Close())
}
