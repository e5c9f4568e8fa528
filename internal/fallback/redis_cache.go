package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"JobJumper-backend/internal/model"
)

const (
	chatKeyPrefix     = "jobjumper:chat:"
	researchKeyPrefix = "jobjumper:research:"
	themeKeyPrefix    = "jobjumper:theme:"
)

// RedisCache implements Cache on a Redis instance.
type RedisCache struct {
	rdb *goredis.Client
}

// NewRedisCache connects to REDIS_ADDR and verifies the connection with a
// ping. Callers should fall back to NewInMemoryCache when this fails.
func NewRedisCache() (*RedisCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

// GetChat reads back the cached transcript, nil when the key is absent.
func (c *RedisCache) GetChat(ctx context.Context, userID uuid.UUID) ([]model.ChatMessage, error) {
	raw, err := c.rdb.Get(ctx, chatKeyPrefix+userID.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat cache: %w", err)
	}
	var msgs []model.ChatMessage
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("decode chat cache: %w", err)
	}
	return msgs, nil
}

// SetChat stores the full transcript under the per-user key.
func (c *RedisCache) SetChat(ctx context.Context, userID uuid.UUID, msgs []model.ChatMessage) error {
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode chat cache: %w", err)
	}
	return c.rdb.Set(ctx, chatKeyPrefix+userID.String(), raw, 0).Err()
}

// ClearChat deletes the per-user transcript key.
func (c *RedisCache) ClearChat(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, chatKeyPrefix+userID.String()).Err()
}

// GetResearch reads back the cached research history, nil when absent.
func (c *RedisCache) GetResearch(ctx context.Context, userID uuid.UUID) ([]model.ResearchReport, error) {
	raw, err := c.rdb.Get(ctx, researchKeyPrefix+userID.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get research cache: %w", err)
	}
	var reports []model.ResearchReport
	if err := json.Unmarshal(raw, &reports); err != nil {
		return nil, fmt.Errorf("decode research cache: %w", err)
	}
	return reports, nil
}

// SetResearch stores the full research history under the per-user key.
func (c *RedisCache) SetResearch(ctx context.Context, userID uuid.UUID, reports []model.ResearchReport) error {
	if reports == nil {
		reports = []model.ResearchReport{}
	}
	raw, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode research cache: %w", err)
	}
	return c.rdb.Set(ctx, researchKeyPrefix+userID.String(), raw, 0).Err()
}

// GetTheme reads the stored theme flag, empty when unset.
func (c *RedisCache) GetTheme(ctx context.Context, userID uuid.UUID) (string, error) {
	theme, err := c.rdb.Get(ctx, themeKeyPrefix+userID.String()).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the theme flag. Outlives the session on purpose.
func (c *RedisCache) SetTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	return c.rdb.Set(ctx, themeKeyPrefix+userID.String(), theme, 0).Err()
}
