// internal/ilscache/store.go
package ilscache

import (
	"context"
	"errors"
	"sync"
	"time"

	"libranexus/internal/clients"
)

var ErrMiss = errors.New("ilscache: miss")

// Store keeps raw ILS payloads for a short time.
type Store interface {
	// Get returns ErrMiss when key has no entry newer than maxAge.
	Get(ctx context.Context, key string, maxAge time.Duration) (*clients.Payload, error)
	Put(ctx context.Context, payload *clients.Payload) error
	// Purge deletes entries older than maxAge and reports how many went.
	Purge(ctx context.Context, maxAge time.Duration) (int64, error)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]clients.Payload
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]clients.Payload), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string, maxAge time.Duration) (*clients.Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.entries[key]
	if !ok || m.now().Sub(p.FetchedAt) > maxAge {
		return nil, ErrMiss
	}
	p.Body = append([]byte(nil), p.Body...)
	return &p, nil
}

func (m *MemoryStore) Put(_ context.Context, payload *clients.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := *payload
	p.Body = append([]byte(nil), payload.Body...)
	if existing, ok := m.entries[p.Key]; ok && existing.FetchedAt.After(p.FetchedAt) {
		return nil
	}
	m.entries[p.Key] = p
	return nil
}

func (m *MemoryStore) Purge(_ context.Context, maxAge time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for key, p := range m.entries {
		if m.now().Sub(p.FetchedAt) > maxAge {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}
