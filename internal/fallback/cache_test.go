package fallback

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobJumper-backend/internal/model"
)

func TestInMemoryCache_ChatRoundTrip(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()
	userID := uuid.New()

	// Absent key reads back empty, not an error.
	got, err := cache.GetChat(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)

	msgs := []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: "hello", Timestamp: time.Now()},
		{Role: model.ChatRoleModel, Text: "hi there", Timestamp: time.Now()},
	}
	require.NoError(t, cache.SetChat(ctx, userID, msgs))

	got, err = cache.GetChat(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Text)

	require.NoError(t, cache.ClearChat(ctx, userID))
	got, err = cache.GetChat(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// The cache hands out copies; mutating a returned slice must not leak into
// the stored value.
func TestInMemoryCache_ReturnsCopies(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, cache.SetChat(ctx, userID, []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: "original"},
	}))

	got, err := cache.GetChat(ctx, userID)
	require.NoError(t, err)
	got[0].Text = "mutated"

	again, err := cache.GetChat(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Text)
}

func TestInMemoryCache_ResearchRoundTrip(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()
	userID := uuid.New()

	reports := []model.ResearchReport{
		{ReportCommon: model.ReportCommon{
			ID:      uuid.New(),
			UserID:  userID,
			Company: "Acme Corp",
			Role:    "Platform Engineer",
			Content: `{"schema_version":1,"data":{}}`,
		}},
	}
	require.NoError(t, cache.SetResearch(ctx, userID, reports))

	got, err := cache.GetResearch(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme Corp", got[0].Company)

	// Other users see nothing.
	other, err := cache.GetResearch(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestInMemoryCache_Theme(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()
	userID := uuid.New()

	theme, err := cache.GetTheme(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "", theme)

	require.NoError(t, cache.SetTheme(ctx, userID, "dark"))
	theme, err = cache.GetTheme(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	require.NoError(t, cache.SetTheme(ctx, userID, "light"))
	theme, err = cache.GetTheme(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}
