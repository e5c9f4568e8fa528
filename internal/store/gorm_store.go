package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/model"
)

// GormStore implements Store on top of the shared GORM instance.
type GormStore struct {
	DB *database.DBinstanceStruct
}

// NewGormStore creates a new instance of GormStore with the provided database connection.
func NewGormStore(db *database.DBinstanceStruct) *GormStore {
	return &GormStore{DB: db}
}

// ListJobs returns all job rows owned by the user, newest first.
func (s *GormStore) ListJobs(ctx context.Context, userID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// InsertJob creates the row and fills in the store-assigned id and version.
func (s *GormStore) InsertJob(ctx context.Context, job *model.Job) error {
	// The in-memory copy may carry a temporary negative id; never send it.
	job.ID = 0
	if job.Version == 0 {
		job.Version = 1
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// UpdateJob writes the full record guarded by the version column.
func (s *GormStore) UpdateJob(ctx context.Context, job *model.Job) error {
	res := s.DB.WithContext(ctx).Model(&model.Job{}).
		Where("id = ? AND user_id = ? AND version = ?", job.ID, job.UserID, job.Version).
		Updates(map[string]interface{}{
			"company":     job.Company,
			"role":        job.Role,
			"status":      job.Status,
			"origin":      job.Origin,
			"salary":      job.Salary,
			"location":    job.Location,
			"description": job.Description,
			"details":     job.Details,
			"version":     job.Version + 1,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		err := s.DB.WithContext(ctx).Model(&model.Job{}).
			Where("id = ? AND user_id = ?", job.ID, job.UserID).Count(&count).Error
		if err != nil {
			return fmt.Errorf("update job existence check: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	job.Version++
	return nil
}

// DeleteJob removes the row scoped to the owner.
func (s *GormStore) DeleteJob(ctx context.Context, userID uuid.UUID, id int64) error {
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Job{}, id).Error
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// GetProfile fetches the singular profile row.
func (s *GormStore) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	var profile model.Profile
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// CreateProfile inserts the row; a duplicate-key error from a racing create
// is treated as success.
func (s *GormStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// SaveProfile replaces the full row.
func (s *GormStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now()
	if err := s.DB.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SaveChatHistory writes the full transcript array onto the profile row.
func (s *GormStore) SaveChatHistory(ctx context.Context, userID uuid.UUID, msgs []model.ChatMessage) error {
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode chat history: %w", err)
	}
	err = s.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"chat_history": datatypes.JSON(raw),
			"updated_at":   time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("save chat history: %w", err)
	}
	return nil
}

// ListResearchReports returns the user's research history, newest first.
func (s *GormStore) ListResearchReports(ctx context.Context, userID uuid.UUID) ([]model.ResearchReport, error) {
	var reports []model.ResearchReport
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list research reports: %w", err)
	}
	return reports, nil
}

// InsertResearchReport creates the row under the client-generated id.
func (s *GormStore) InsertResearchReport(ctx context.Context, report *model.ResearchReport) error {
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("insert research report: %w", err)
	}
	return nil
}

// DeleteResearchReport removes the row scoped to the owner.
func (s *GormStore) DeleteResearchReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.ResearchReport{}).Error
	if err != nil {
		return fmt.Errorf("delete research report: %w", err)
	}
	return nil
}

// ListPrepReports returns the user's prep-kit history, newest first.
func (s *GormStore) ListPrepReports(ctx context.Context, userID uuid.UUID) ([]model.PrepReport, error) {
	var reports []model.PrepReport
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list prep reports: %w", err)
	}
	return reports, nil
}

// InsertPrepReport creates the row under the client-generated id.
func (s *GormStore) InsertPrepReport(ctx context.Context, report *model.PrepReport) error {
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("insert prep report: %w", err)
	}
	return nil
}

// DeletePrepReport removes the row scoped to the owner.
func (s *GormStore) DeletePrepReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.PrepReport{}).Error
	if err != nil {
		return fmt.Errorf("delete prep report: %w", err)
	}
	return nil
}
