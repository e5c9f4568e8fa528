// Package fallback is the per-user key-value safety net for chat history,
// research history and the theme preference. It is written as a trailing
// copy after every chat/research write and read only when the primary
// store yields nothing.
package fallback

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"JobJumper-backend/internal/model"
)

// Cache is the fallback persistence contract. Absent keys read back as
// (zero value, nil error).
type Cache interface {
	GetChat(ctx context.Context, userID uuid.UUID) ([]model.ChatMessage, error)
	SetChat(ctx context.Context, userID uuid.UUID, msgs []model.ChatMessage) error
	ClearChat(ctx context.Context, userID uuid.UUID) error

	GetResearch(ctx context.Context, userID uuid.UUID) ([]model.ResearchReport, error)
	SetResearch(ctx context.Context, userID uuid.UUID, reports []model.ResearchReport) error

	GetTheme(ctx context.Context, userID uuid.UUID) (string, error)
	SetTheme(ctx context.Context, userID uuid.UUID, theme string) error
}

// InMemoryCache is the Cache used in tests and when no Redis address is
// configured. Safe for concurrent use.
type InMemoryCache struct {
	mu       sync.RWMutex
	chat     map[uuid.UUID][]model.ChatMessage
	research map[uuid.UUID][]model.ResearchReport
	theme    map[uuid.UUID]string
}

// NewInMemoryCache constructs an empty in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		chat:     make(map[uuid.UUID][]model.ChatMessage),
		research: make(map[uuid.UUID][]model.ResearchReport),
		theme:    make(map[uuid.UUID]string),
	}
}

// GetChat returns the cached transcript for the user.
func (c *InMemoryCache) GetChat(_ context.Context, userID uuid.UUID) ([]model.ChatMessage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msgs := c.chat[userID]
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// SetChat replaces the cached transcript for the user.
func (c *InMemoryCache) SetChat(_ context.Context, userID uuid.UUID, msgs []model.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]model.ChatMessage, len(msgs))
	copy(cp, msgs)
	c.chat[userID] = cp
	return nil
}

// ClearChat removes the cached transcript for the user.
func (c *InMemoryCache) ClearChat(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.chat, userID)
	return nil
}

// GetResearch returns the cached research history for the user.
func (c *InMemoryCache) GetResearch(_ context.Context, userID uuid.UUID) ([]model.ResearchReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reports := c.research[userID]
	out := make([]model.ResearchReport, len(reports))
	copy(out, reports)
	return out, nil
}

// SetResearch replaces the cached research history for the user.
func (c *InMemoryCache) SetResearch(_ context.Context, userID uuid.UUID, reports []model.ResearchReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]model.ResearchReport, len(reports))
	copy(cp, reports)
	c.research[userID] = cp
	return nil
}

// GetTheme returns the stored theme preference, empty when unset.
func (c *InMemoryCache) GetTheme(_ context.Context, userID uuid.UUID) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme[userID], nil
}

// SetTheme stores the theme preference.
func (c *InMemoryCache) SetTheme(_ context.Context, userID uuid.UUID, theme string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme[userID] = theme
	return nil
}
