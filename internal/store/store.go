// Package store is the remote row-store adapter: read/insert/update/delete
// against the jobs, profiles, research_reports and prep_reports tables,
// every operation scoped by an equality filter on user id.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"JobJumper-backend/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the user/id filter.
	ErrNotFound = errors.New("store: record not found")
	// ErrVersionConflict is returned when a full-record job write carries a
	// stale version, meaning a concurrent write landed first.
	ErrVersionConflict = errors.New("store: version conflict")
)

// Store is the row read/write/delete contract the tracker persists through.
type Store interface {
	ListJobs(ctx context.Context, userID uuid.UUID) ([]model.Job, error)
	InsertJob(ctx context.Context, job *model.Job) error
	// UpdateJob persists the entire record. The write only applies when the
	// stored version matches job.Version; on success the version is bumped
	// in place.
	UpdateJob(ctx context.Context, job *model.Job) error
	DeleteJob(ctx context.Context, userID uuid.UUID, id int64) error

	GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	// CreateProfile is idempotent: a uniqueness conflict from a racing
	// create is swallowed as a non-error.
	CreateProfile(ctx context.Context, profile *model.Profile) error
	SaveProfile(ctx context.Context, profile *model.Profile) error
	SaveChatHistory(ctx context.Context, userID uuid.UUID, msgs []model.ChatMessage) error

	ListResearchReports(ctx context.Context, userID uuid.UUID) ([]model.ResearchReport, error)
	InsertResearchReport(ctx context.Context, report *model.ResearchReport) error
	DeleteResearchReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	ListPrepReports(ctx context.Context, userID uuid.UUID) ([]model.PrepReport, error)
	InsertPrepReport(ctx context.Context, report *model.PrepReport) error
	DeletePrepReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}
