package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"f500cli/pkg/contracts/domain"
)

// Fingerprint derives the cache key for raw upload bytes: the SHA-256
// content hash truncated to 16 hex characters. Identical uploads always map
// to the same dataset ID.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:16]
}

type storeEntry struct {
	dataset  *domain.Dataset
	storedAt time.Time
	hits     int64
}

// Store caches cleaned Datasets keyed by content fingerprint for the
// lifetime of the process. Datasets are immutable after Put, so readers
// need no copies.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]*storeEntry
	maxSize   int
	hitCount  int64
	missCount int64
}

// NewStore creates a dataset store holding at most maxSize datasets.
// The oldest entry is evicted when the store is full.
func NewStore(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*storeEntry),
		maxSize: maxSize,
	}
}

// Get retrieves a cached dataset by ID.
func (s *Store) Get(id string) (*domain.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[id]
	if !exists {
		s.missCount++
		return nil, false
	}

	entry.hits++
	s.hitCount++
	return entry.dataset, true
}

// Put stores a dataset under its ID, evicting the oldest entry if full.
func (s *Store) Put(ds *domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSize <= 0 {
		return
	}

	if _, exists := s.entries[ds.ID]; !exists && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	s.entries[ds.ID] = &storeEntry{
		dataset:  ds,
		storedAt: time.Now(),
	}
}

// Invalidate removes a dataset from the store.
func (s *Store) Invalidate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of cached datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns cache statistics for the health endpoint.
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totalRequests := s.hitCount + s.missCount
	hitRatio := float64(0)
	if totalRequests > 0 {
		hitRatio = float64(s.hitCount) / float64(totalRequests)
	}

	return map[string]interface{}{
		"entries":    len(s.entries),
		"max_size":   s.maxSize,
		"hit_count":  s.hitCount,
		"miss_count": s.missCount,
		"hit_ratio":  hitRatio,
	}
}

func (s *Store) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range s.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.storedAt
		}
	}

	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
