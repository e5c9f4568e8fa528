package auth

import (
	"sync"
	"time"
)

// JwtBlacklistStore records revoked tokens until they would have expired
// anyway.
type JwtBlacklistStore interface {
	// IsBlacklisted checks if the given token is blacklisted.
	IsBlacklisted(token string) (bool, error)
	// AddToBlacklist adds the given token to the blacklist with an expiration time.
	AddToBlacklist(token string, exp time.Time) error
}

type InMemoryBlacklistStore struct {
	blacklist map[string]time.Time
	mu        sync.RWMutex
}

func NewInMemoryBlacklistStore() *InMemoryBlacklistStore {
	store := &InMemoryBlacklistStore{
		blacklist: make(map[string]time.Time),
	}
	go periodicCleanUp(store, time.Minute*5)
	return store
}

func periodicCleanUp(store *InMemoryBlacklistStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		store.CleanUpExpired()
	}
}

func (s *InMemoryBlacklistStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, exp := range s.blacklist {
		if exp.Before(now) {
			delete(s.blacklist, token)
		}
	}
}

func (s *InMemoryBlacklistStore) IsBlacklisted(token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blacklist[token]
	return exists, nil
}

func (s *InMemoryBlacklistStore) AddToBlacklist(token string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[token] = exp
	return nil
}
