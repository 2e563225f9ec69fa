// Package store holds generated batches for the API layer. The memory store
// is the default; the redis store lets several server instances share the
// same batches.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/marktivo/growth-os/internal/dataset"
)

// ErrNotFound is returned when no batch matches the requested ID, or when
// Latest is called before any batch has been saved.
var ErrNotFound = errors.New("store: batch not found")

// Store saves and retrieves generated batches.
type Store interface {
	Save(ctx context.Context, b *dataset.Batch) error
	Get(ctx context.Context, id string) (*dataset.Batch, error)
	Latest(ctx context.Context) (*dataset.Batch, error)
	Close() error
}

// MemoryStore keeps batches in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	batches  map[string]*dataset.Batch
	latestID string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{batches: make(map[string]*dataset.Batch)}
}

func (s *MemoryStore) Save(_ context.Context, b *dataset.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[b.ID] = b
	s.latestID = b.ID
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*dataset.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) Latest(_ context.Context) (*dataset.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latestID == "" {
		return nil, ErrNotFound
	}
	return s.batches[s.latestID], nil
}

func (s *MemoryStore) Close() error { return nil }
