package cartdoc

import (
	"context"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Document
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Document{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Get(ctx context.Context, userID string) (Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.m[userID]
	if !ok {
		return Document{}, false, nil
	}

	cp := Document{CartItems: make([]Item, len(doc.CartItems))}
	copy(cp.CartItems, doc.CartItems)
	return cp, true, nil
}

func (s *MemStore) Put(ctx context.Context, userID string, doc Document) error {
	cp := Document{CartItems: make([]Item, len(doc.CartItems))}
	copy(cp.CartItems, doc.CartItems)

	s.mu.Lock()
	s.m[userID] = cp
	s.mu.Unlock()
	return nil
}
