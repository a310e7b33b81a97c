package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhanovs/paintx-frontend/internal/catalog"
)

type fakePager struct {
	continues int
	pages     []int
}

func (p *fakePager) Continue(context.Context) (catalog.Outcome, error) {
	p.continues++
	return catalog.OutcomeApplied, nil
}

func (p *fakePager) GoToPage(_ context.Context, n int) (catalog.Outcome, error) {
	p.pages = append(p.pages, n)
	return catalog.OutcomeApplied, nil
}

func TestSelectTrigger(t *testing.T) {
	pager := &fakePager{}

	assert.Equal(t, catalog.ModeInfiniteScroll, catalog.SelectTrigger(80, 100, 4, pager).Mode())
	assert.Equal(t, catalog.ModePageLinks, catalog.SelectTrigger(100, 100, 4, pager).Mode())
	assert.Equal(t, catalog.ModePageLinks, catalog.SelectTrigger(160, 100, 4, pager).Mode())
}

func TestInfiniteScroll_Viewport(t *testing.T) {
	pager := &fakePager{}
	trig := catalog.NewInfiniteScroll(pager, 4)

	tests := []struct {
		name        string
		lastVisible int
		loaded      int
		hasMore     bool
		wantAction  bool
	}{
		{"far from end", 10, 30, true, false},
		{"just outside lookahead", 24, 30, true, false},
		{"inside lookahead", 25, 30, true, true},
		{"at end", 29, 30, true, true},
		{"nothing more", 29, 30, false, false},
		{"empty list", 0, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := trig.Viewport(tt.lastVisible, tt.loaded, tt.hasMore)
			assert.Equal(t, tt.wantAction, action != nil)
		})
	}

	action := trig.Viewport(29, 30, true)
	require.NotNil(t, action)
	_, err := action(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pager.continues)
	assert.Nil(t, trig.Select(2))
}

func TestPageLinks(t *testing.T) {
	pager := &fakePager{}
	trig := catalog.NewPageLinks(pager)

	assert.Nil(t, trig.Viewport(29, 30, true), "page links never load on scroll")

	action := trig.Select(3)
	require.NotNil(t, action)
	_, err := action(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, pager.pages)
	assert.Zero(t, pager.continues)
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total, span int
		want                 []int
	}{
		{1, 0, 2, nil},
		{1, 1, 2, []int{1}},
		{1, 3, 2, []int{1, 2, 3}},
		{5, 10, 1, []int{1, 0, 4, 5, 6, 0, 10}},
		{2, 10, 1, []int{1, 2, 3, 0, 10}},
		{3, 10, 1, []int{1, 2, 3, 4, 0, 10}},
		{10, 10, 2, []int{1, 0, 8, 9, 10}},
		{99, 4, 1, []int{1, 0, 3, 4}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.PageWindow(tt.current, tt.total, tt.span), "current=%d total=%d", tt.current, tt.total)
	}
}
