package configcache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Store persists the raw configuration payload and the instant of the last
// successful fetch. The two slots are independent: a payload with no fetch
// time reads as stale, a fetch time with no payload reads as a miss.
//
// Absence is not an error: a missing payload is (nil, nil) and a missing
// fetch time is the zero time. Writing a nil payload or a zero time clears
// the slot.
type Store interface {
	Configuration(ctx context.Context) ([]byte, error)
	SetConfiguration(ctx context.Context, raw []byte) error
	LastFetch(ctx context.Context) (time.Time, error)
	SetLastFetch(ctx context.Context, at time.Time) error
}

const (
	slotConfiguration = "configuration"
	slotLastFetch     = "last_fetch"
)

const fetchTimeLayout = time.RFC3339Nano

func formatFetchTime(at time.Time) []byte {
	return []byte(at.UTC().Format(fetchTimeLayout))
}

func parseFetchTime(raw []byte) (time.Time, error) {
	at, err := time.Parse(fetchTimeLayout, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last fetch %q: %w", raw, err)
	}
	return at, nil
}

// MemoryStore keeps both slots in process memory. The zero value is ready to
// use.
type MemoryStore struct {
	mu        sync.RWMutex
	raw       []byte
	lastFetch time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Configuration(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.raw == nil {
		return nil, nil
	}
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out, nil
}

func (s *MemoryStore) SetConfiguration(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if raw == nil {
		s.raw = nil
		return nil
	}
	s.raw = make([]byte, len(raw))
	copy(s.raw, raw)
	return nil
}

func (s *MemoryStore) LastFetch(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch, nil
}

func (s *MemoryStore) SetLastFetch(ctx context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFetch = at
	return nil
}
