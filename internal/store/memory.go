package store

import (
	"context"
	"sync"

	"github.com/margadarshak/margadarshak-api/internal"
)

type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]internal.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]internal.UserProfile)}
}

func (s *MemoryStore) Put(_ context.Context, p internal.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string) (internal.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return internal.UserProfile{}, ErrNotFound
	}
	return cloneProfile(p), nil
}

func (s *MemoryStore) Update(_ context.Context, userID string, fn func(*internal.UserProfile) error) (internal.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return internal.UserProfile{}, ErrNotFound
	}
	p = cloneProfile(p)
	if err := fn(&p); err != nil {
		return internal.UserProfile{}, err
	}
	s.profiles[userID] = cloneProfile(p)
	return p, nil
}

// Len is the number of stored profiles.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

func (s *MemoryStore) Close() error { return nil }
