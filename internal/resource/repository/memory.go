package repository

import (
	"context"
	"sync"

	"gestionrecursos/internal/shared"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore used in tests and local runs.
// The mutex gives SetOwned/DeleteOwned the same check-and-write atomicity
// the Postgres store gets from its conditional statements.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return clone(data), nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for id, data := range s.collections[collection] {
		docs = append(docs, Document{ID: id, Data: clone(data)})
	}
	return docs, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	id := uuid.NewString()
	s.collections[collection][id] = clone(data)
	return id, nil
}

func (s *MemoryStore) SetOwned(ctx context.Context, collection, id, owner string, data map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok || existing["owner"] != owner {
		return false, nil
	}
	s.collections[collection][id] = clone(data)
	return true, nil
}

func (s *MemoryStore) DeleteOwned(ctx context.Context, collection, id, owner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok || existing["owner"] != owner {
		return false, nil
	}
	delete(s.collections[collection], id)
	return true, nil
}

func clone(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
