package catalog_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
)

func TestURLSync_CoalescesRapidEdits(t *testing.T) {
	var mu sync.Mutex
	var commits []string
	s := catalog.NewURLSync(30*time.Millisecond, func(url string) {
		mu.Lock()
		commits = append(commits, url)
		mu.Unlock()
	})

	q := domain.DefaultQuery()
	for _, text := range []string{"m", "mo", "mon", "mone", "monet"} {
		q.Text = text
		s.Update(q, 1)
	}

	assert.Eventually(t, func() bool {
		return s.Current() == "/?search=monet"
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/?search=monet"}, commits)
}

func TestURLSync_SkipsUnchangedURL(t *testing.T) {
	var mu sync.Mutex
	var commits []string
	s := catalog.NewURLSync(10*time.Millisecond, func(url string) {
		mu.Lock()
		commits = append(commits, url)
		mu.Unlock()
	})
	committed := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), commits...)
	}

	s.Update(domain.DefaultQuery(), 1)
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, committed(), "default listing is already current")

	s.Update(domain.DefaultQuery(), 2)
	assert.Eventually(t, func() bool { return s.Current() == "/?page=2" }, time.Second, 5*time.Millisecond)

	s.Update(domain.DefaultQuery(), 2)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{"/?page=2"}, committed())
}
