package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"JobJumper-backend/internal/model"
)

// Chat returns the transcript, lazily seeding a greeting on first view of
// an empty transcript. The greeting is persisted best-effort; a failed
// persist never fails the read.
func (t *Tracker) Chat(ctx context.Context, userID uuid.UUID) ([]model.ChatMessage, error) {
	sess, err := t.session(userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if len(sess.chat) == 0 && !sess.chatSeeded {
		sess.chat = append(sess.chat, model.ChatMessage{
			Role:      model.ChatRoleModel,
			Text:      greeting(sess.profile, len(sess.jobs)),
			Timestamp: time.Now(),
		})
		sess.chatSeeded = true
		transcript := copyChat(sess.chat)
		sess.mu.Unlock()

		if err := t.persistChat(ctx, userID, transcript); err != nil {
			t.log.Warn("greeting not persisted", "user_id", userID, "error", err)
		}
		return transcript, nil
	}
	transcript := copyChat(sess.chat)
	sess.mu.Unlock()
	return transcript, nil
}

// AppendChat adds one message to the end of the transcript, persists the
// full array to the profile row, and mirrors it to the fallback cache
// regardless of the remote outcome.
func (t *Tracker) AppendChat(ctx context.Context, userID uuid.UUID, msg model.ChatMessage) ([]model.ChatMessage, error) {
	sess, err := t.session(userID)
	if err != nil {
		return nil, err
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	sess.mu.Lock()
	sess.chat = append(sess.chat, msg)
	sess.chatSeeded = true
	transcript := copyChat(sess.chat)
	if encErr := sess.profile.SetTranscript(sess.chat); encErr != nil {
		t.log.Error("transcript encode failed", "user_id", userID, "error", encErr)
	}
	sess.mu.Unlock()

	return transcript, t.persistChat(ctx, userID, transcript)
}

// ClearChat empties the transcript, resets the seeded flag, and empties
// both persistence targets so a reload cannot restore a stale transcript.
func (t *Tracker) ClearChat(ctx context.Context, userID uuid.UUID) error {
	sess, err := t.session(userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.chat = nil
	sess.chatSeeded = false
	if encErr := sess.profile.SetTranscript(nil); encErr != nil {
		t.log.Error("transcript encode failed", "user_id", userID, "error", encErr)
	}
	sess.mu.Unlock()

	remoteErr := t.store.SaveChatHistory(ctx, userID, nil)
	if remoteErr != nil {
		t.log.Error("chat clear not persisted", "user_id", userID, "error", remoteErr)
	}
	cacheErr := t.cache.ClearChat(ctx, userID)
	if cacheErr != nil {
		t.log.Error("chat cache clear failed", "user_id", userID, "error", cacheErr)
	}
	return errors.Join(remoteErr, cacheErr)
}

// persistChat writes the transcript remotely and always trails with the
// cache copy so the transcript survives a remote failure across reloads.
func (t *Tracker) persistChat(ctx context.Context, userID uuid.UUID, transcript []model.ChatMessage) error {
	remoteErr := t.store.SaveChatHistory(ctx, userID, transcript)
	if remoteErr != nil {
		t.log.Error("chat history not persisted", "user_id", userID, "error", remoteErr)
	}
	if err := t.cache.SetChat(ctx, userID, transcript); err != nil {
		t.log.Warn("chat cache write failed", "user_id", userID, "error", err)
	}
	return remoteErr
}

func greeting(profile model.Profile, jobCount int) string {
	name := profile.FullName
	if name == "" {
		name = "there"
	}
	if jobCount == 0 {
		return fmt.Sprintf("Hi %s! I'm your job search assistant. Log your first application and I can help with cover letters, interview prep and more.", name)
	}
	return fmt.Sprintf("Hi %s! You're tracking %d applications. Ask me anything about your search.", name, jobCount)
}

func copyChat(msgs []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
