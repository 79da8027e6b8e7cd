package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenStore is a process-local TokenStore.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryTokenStore creates an empty token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]time.Time), now: time.Now}
}

// Put stores key until ttl elapses. Expired entries are swept on write.
func (s *MemoryTokenStore) Put(_ context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = now.Add(ttl)
	return nil
}

// Exists reports whether key is stored and not expired.
func (s *MemoryTokenStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(key), nil
}

// Take removes key and reports whether it was live.
func (s *MemoryTokenStore) Take(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := s.live(key)
	delete(s.entries, key)
	return live, nil
}

func (s *MemoryTokenStore) live(key string) bool {
	expiresAt, ok := s.entries[key]
	return ok && s.now().Before(expiresAt)
}

// MemoryResponseStore is a process-local ResponseStore.
type MemoryResponseStore struct {
	mu      sync.Mutex
	entries map[string]storedEntry
	now     func() time.Time
}

type storedEntry struct {
	resp      *StoredResponse
	expiresAt time.Time
}

// NewMemoryResponseStore creates an empty response store.
func NewMemoryResponseStore() *MemoryResponseStore {
	return &MemoryResponseStore{entries: make(map[string]storedEntry), now: time.Now}
}

// Load returns the response stored for key unless it expired.
func (s *MemoryResponseStore) Load(_ context.Context, key string) (*StoredResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.resp, true
}

// Save stores resp for ttl. Expired entries are swept on write.
func (s *MemoryResponseStore) Save(_ context.Context, key string, resp *StoredResponse, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = storedEntry{resp: resp, expiresAt: now.Add(ttl)}
}

// Len returns the number of entries, expired ones included.
func (s *MemoryResponseStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
