package auth

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type MemStore struct {
	mu      sync.RWMutex
	byEmail map[string]User
	byID    map[string]User
}

func NewMemStore() *MemStore {
	return &MemStore{
		byEmail: make(map[string]User),
		byID:    make(map[string]User),
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, u User, password string) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Hash = hash

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return ErrEmailExists
	}

	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
	return nil
}

func (s *MemStore) Verify(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	u, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(strings.TrimSpace(password))); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	return u, ok, nil
}
