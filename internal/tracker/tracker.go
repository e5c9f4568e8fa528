// Package tracker is the data synchronization layer: it owns the in-memory
// mirror of each signed-in user's job records, profile, chat transcript and
// report history, applies mutations optimistically, and persists them to
// the remote store with the fallback cache trailing as a safety copy.
//
// Mutations return the durable-write error explicitly; the optimistic
// in-memory state is kept either way and is treated as authoritative by
// readers. Last-write-wins applies everywhere except job updates, which
// carry a version stamp so a lost update surfaces as ErrVersionConflict.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"JobJumper-backend/internal/fallback"
	"JobJumper-backend/internal/logger"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
)

// ErrNoSession is returned when an operation targets a user that has not
// been hydrated (or was cleared by sign-out).
var ErrNoSession = errors.New("tracker: no active session for user")

// Stats is the derived statistics view over the in-memory job collection.
// It is recomputed from scratch on every read, never cached.
type Stats struct {
	Total     int `json:"total"`
	Applied   int `json:"applied"`
	Interview int `json:"interview"`
	// Offers counts both Offer and Accepted records.
	Offers   int `json:"offers"`
	Rejected int `json:"rejected"`
}

// ExportBundle is the downloadable snapshot of a user's tracked data.
type ExportBundle struct {
	ExportedAt time.Time     `json:"exported_at"`
	Profile    model.Profile `json:"profile"`
	Jobs       []model.Job   `json:"jobs"`
	Stats      Stats         `json:"stats"`
}

type session struct {
	mu         sync.RWMutex
	jobs       []model.Job // newest first
	profile    model.Profile
	chat       []model.ChatMessage
	research   []model.ResearchReport
	prep       []model.PrepReport
	chatSeeded bool
	nextTempID int64
}

// Tracker holds one hydrated session per signed-in user. Construct it once
// at startup and share it; it is safe for concurrent use.
type Tracker struct {
	store store.Store
	cache fallback.Cache
	log   *logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// New creates a Tracker backed by the given store and fallback cache.
func New(st store.Store, cache fallback.Cache, log *logger.Logger) *Tracker {
	return &Tracker{
		store:    st,
		cache:    cache,
		log:      log.With("service", "tracker"),
		sessions: make(map[uuid.UUID]*session),
	}
}

// Hydrate fetches the user's four entity families in parallel and installs
// a fresh session, replacing any stale one from a previous sign-in. A
// missing profile row is created with defaults; the transcript comes from
// the profile row when present, else from the fallback cache. An empty
// research history is likewise restored from the cache.
func (t *Tracker) Hydrate(ctx context.Context, userID uuid.UUID) error {
	var (
		jobs     []model.Job
		profile  model.Profile
		research []model.ResearchReport
		prep     []model.PrepReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = t.store.ListJobs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = t.store.GetProfile(gctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			profile = model.DefaultProfile(userID)
			return t.store.CreateProfile(gctx, &profile)
		}
		return err
	})
	g.Go(func() error {
		var err error
		research, err = t.store.ListResearchReports(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		prep, err = t.store.ListPrepReports(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("hydrate user state: %w", err)
	}

	chat := profile.Transcript()
	if len(chat) == 0 {
		cached, err := t.cache.GetChat(ctx, userID)
		if err != nil {
			t.log.Warn("chat fallback read failed", "user_id", userID, "error", err)
		} else if len(cached) > 0 {
			chat = cached
		}
	}

	// The research history has the same safety copy as the transcript.
	if len(research) == 0 {
		cached, err := t.cache.GetResearch(ctx, userID)
		if err != nil {
			t.log.Warn("research fallback read failed", "user_id", userID, "error", err)
		} else if len(cached) > 0 {
			research = cached
		}
	}

	sess := &session{
		jobs:       jobs,
		profile:    profile,
		chat:       chat,
		research:   research,
		prep:       prep,
		chatSeeded: len(chat) > 0,
		nextTempID: -1,
	}

	t.mu.Lock()
	t.sessions[userID] = sess
	t.mu.Unlock()

	t.log.Info("session hydrated",
		"user_id", userID,
		"jobs", len(jobs),
		"research_reports", len(research),
		"prep_reports", len(prep))
	return nil
}

// Clear drops the user's in-memory collections on sign-out. Remote data is
// untouched; signing back in re-hydrates from the store.
func (t *Tracker) Clear(userID uuid.UUID) {
	t.mu.Lock()
	delete(t.sessions, userID)
	t.mu.Unlock()
}

// HasSession reports whether the user currently has a hydrated session.
func (t *Tracker) HasSession(userID uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.sessions[userID]
	return ok
}

func (t *Tracker) session(userID uuid.UUID) (*session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sess, ok := t.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}
