package order

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Order
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Order{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[o.ID] = o
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[id]
	return o, ok, nil
}

func (s *MemStore) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, 8)
	for _, o := range s.m {
		if o.UserID == userID {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].OrderDate.After(out[j].OrderDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
