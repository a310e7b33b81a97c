// Package visitor maintains the anonymous, durable visitor token that
// personalizes likes and inquiries.
package visitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suhanovs/paintx-frontend/internal/domain"
)

const (
	// CookieName is the cookie (and store key) holding the token.
	CookieName = "paintx_vid"

	// HeaderName carries the token from clients to the backend.
	HeaderName = "x-visitor-cookie"

	// TokenTTL is how long a minted token stays valid.
	TokenTTL = 10 * 365 * 24 * time.Hour
)

// Jar reads and writes the durable token.
type Jar interface {
	Load() (domain.VisitorIdentity, bool, error)
	Save(v domain.VisitorIdentity) error
}

// Identity hands out the visitor token, minting one when needed.
type Identity struct {
	jar    Jar
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	fallback string // used when the jar cannot persist
}

// New creates an Identity backed by jar.
func New(jar Jar, logger *slog.Logger) *Identity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Identity{jar: jar, logger: logger, now: time.Now}
}

// EnsureToken returns the current token. A stored token that is present,
// well formed and unexpired is returned unchanged; otherwise a new one is
// minted and written back. Storage failures never surface: the token is
// then kept in memory for the lifetime of the Identity.
func (i *Identity) EnsureToken(ctx context.Context) string {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	v, ok, err := i.jar.Load()
	switch {
	case err != nil:
		i.logger.DebugContext(ctx, "visitor jar unreadable", "error", err)
	case ok && v.Valid(now) && wellFormed(v.Token):
		return v.Token
	}

	if i.fallback != "" {
		return i.fallback
	}

	minted := domain.VisitorIdentity{Token: uuid.New().String(), ExpiresAt: now.Add(TokenTTL)}
	if err := i.jar.Save(minted); err != nil {
		i.logger.DebugContext(ctx, "visitor jar unwritable, keeping token in memory", "error", err)
		i.fallback = minted.Token
	}
	return minted.Token
}

func wellFormed(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

// StoreJar keeps the token in a domain.VisitorStore.
type StoreJar struct {
	store domain.VisitorStore
}

// NewStoreJar wraps store.
func NewStoreJar(store domain.VisitorStore) *StoreJar {
	return &StoreJar{store: store}
}

func (j *StoreJar) Load() (domain.VisitorIdentity, bool, error) {
	return j.store.GetVisitor()
}

func (j *StoreJar) Save(v domain.VisitorIdentity) error {
	return j.store.SaveVisitor(v)
}
