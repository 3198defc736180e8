package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots for the life of the process.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots []Snapshot
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append([]Snapshot{*snap}, s.snapshots...)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Snapshot(nil), s.snapshots...), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snapshots {
		if s.snapshots[i].ID == id {
			snap := s.snapshots[i]
			return &snap, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snapshots {
		if s.snapshots[i].ID == id {
			s.snapshots = append(s.snapshots[:i], s.snapshots[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = nil
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
