package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/suhanovs/paintx-frontend/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketVisitor = []byte("visitor")
	bucketSession = []byte("session")
)

const (
	visitorKey = "paintx_vid"
	dbFile     = "paintx.db"
)

// Store implements domain.VisitorStore and domain.SessionStore using BoltDB.
//
// The visitor bucket is durable. The session bucket is wiped every time
// the store is opened, so a session lasts as long as one program run.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the store under dir. An empty dir gives a
// memory-only store that forgets everything on exit.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir = ExpandHome(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketVisitor); err != nil {
			return err
		}
		// New session: drop whatever the previous run left behind.
		if tx.Bucket(bucketSession) != nil {
			if err := tx.DeleteBucket(bucketSession); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) (bool, error) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		if err := json.Unmarshal(data, dest); err != nil {
			return false, fmt.Errorf("decode %s: %w", cacheKey, err)
		}
		return true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", cacheKey, err)
	}
	return true, nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Visitor ===

func (s *Store) GetVisitor() (domain.VisitorIdentity, bool, error) {
	var v domain.VisitorIdentity
	ok, err := s.get(bucketVisitor, visitorKey, &v)
	return v, ok, err
}

func (s *Store) SaveVisitor(v domain.VisitorIdentity) error {
	return s.set(bucketVisitor, visitorKey, v)
}

// === Session ===

func (s *Store) GetSession(key string, dest any) (bool, error) {
	return s.get(bucketSession, key, dest)
}

func (s *Store) SaveSession(key string, value any) error {
	return s.set(bucketSession, key, value)
}

func (s *Store) DeleteSession(key string) error {
	return s.delete(bucketSession, key)
}
