package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInMemoryBlacklistStore(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	assert.NotNil(t, store)
	assert.NotNil(t, store.blacklist)
}

func TestAddToBlacklist(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	token := "revoked-token"
	exp := time.Now().Add(time.Hour)

	err := store.AddToBlacklist(token, exp)
	assert.NoError(t, err)

	store.mu.RLock()
	expTime, exists := store.blacklist[token]
	store.mu.RUnlock()

	assert.True(t, exists)
	assert.Equal(t, exp, expTime)
}

func TestIsBlacklisted(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	isBlacklisted, err := store.IsBlacklisted("never-seen-token")
	assert.NoError(t, err)
	assert.False(t, isBlacklisted)

	err = store.AddToBlacklist("revoked-token", time.Now().Add(time.Hour))
	assert.NoError(t, err)

	isBlacklisted, err = store.IsBlacklisted("revoked-token")
	assert.NoError(t, err)
	assert.True(t, isBlacklisted)
}

func TestCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	expiredTime := time.Now().Add(-time.Hour)
	assert.NoError(t, store.AddToBlacklist("expired-token-1", expiredTime))
	assert.NoError(t, store.AddToBlacklist("expired-token-2", expiredTime))

	validTime := time.Now().Add(time.Hour)
	assert.NoError(t, store.AddToBlacklist("valid-token", validTime))

	store.CleanUpExpired()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Len(t, store.blacklist, 1)
	_, exists := store.blacklist["valid-token"]
	assert.True(t, exists)
}

func TestCleanUpExpired_EmptyStore(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	assert.NotPanics(t, func() {
		store.CleanUpExpired()
	})

	store.mu.RLock()
	assert.Len(t, store.blacklist, 0)
	store.mu.RUnlock()
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	exp := time.Now().Add(time.Hour)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			token := "token-" + string(rune('a'+id))
			err := store.AddToBlacklist(token, exp)
			assert.NoError(t, err)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	for i := 0; i < 10; i++ {
		go func(id int) {
			token := "token-" + string(rune('a'+id))
			isBlacklisted, err := store.IsBlacklisted(token)
			assert.NoError(t, err)
			assert.True(t, isBlacklisted)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
