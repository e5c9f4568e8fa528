package tracker

import (
	"context"

	"github.com/google/uuid"

	"JobJumper-backend/internal/model"
)

// Profile returns the user's in-memory profile.
func (t *Tracker) Profile(userID uuid.UUID) (model.Profile, error) {
	sess, err := t.session(userID)
	if err != nil {
		return model.Profile{}, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.profile, nil
}

// ReplaceProfile swaps in the full replacement profile (no diffing) and
// persists the entire row. The chat transcript column is carried over from
// the session so a profile save never clobbers the transcript.
func (t *Tracker) ReplaceProfile(ctx context.Context, userID uuid.UUID, profile model.Profile) (model.Profile, error) {
	sess, err := t.session(userID)
	if err != nil {
		return model.Profile{}, err
	}

	profile.UserID = userID

	sess.mu.Lock()
	if err := profile.SetTranscript(sess.chat); err != nil {
		sess.mu.Unlock()
		return model.Profile{}, err
	}
	sess.profile = profile
	sess.mu.Unlock()

	if err := t.store.SaveProfile(ctx, &profile); err != nil {
		t.log.Error("profile save not persisted", "user_id", userID, "error", err)
		return profile, err
	}
	return profile, nil
}

// Theme reads the stored light/dark preference. Independent of the session
// lifecycle: no hydrated session is required.
func (t *Tracker) Theme(ctx context.Context, userID uuid.UUID) (string, error) {
	return t.cache.GetTheme(ctx, userID)
}

// SetTheme stores the light/dark preference.
func (t *Tracker) SetTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	return t.cache.SetTheme(ctx, userID, theme)
}
