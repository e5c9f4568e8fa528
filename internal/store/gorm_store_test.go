package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/model"
)

var testStore *GormStore
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	var (
		db  *database.DBinstanceStruct
		err error
	)
	testTeardown, db, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	testStore = NewGormStore(db)

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

func TestInsertJob_AssignsIDAndVersion(t *testing.T) {
	ctx := context.Background()
	job := model.Job{
		// Mirrors the temporary id an optimistic in-memory insert carries.
		ID:     -1,
		UserID: database.TestUserSeeker2.ID,
		EditableJobInfo: model.EditableJobInfo{
			Company: "CloudPine",
			Role:    "SRE",
			Status:  model.JobStatusApplied,
			Origin:  model.JobOriginApplication,
		},
	}

	require.NoError(t, testStore.InsertJob(ctx, &job))
	assert.Greater(t, job.ID, int64(0), "store must assign a real id")
	assert.Equal(t, 1, job.Version)
}

func TestUpdateJob_VersionGuard(t *testing.T) {
	ctx := context.Background()
	job := model.Job{
		UserID: database.TestUserSeeker2.ID,
		EditableJobInfo: model.EditableJobInfo{
			Company: "BrightLabs",
			Role:    "Go Developer",
			Status:  model.JobStatusApplied,
			Origin:  model.JobOriginApplication,
		},
	}
	require.NoError(t, testStore.InsertJob(ctx, &job))

	// Matching version applies and bumps.
	job.Status = model.JobStatusInterview
	require.NoError(t, testStore.UpdateJob(ctx, &job))
	assert.Equal(t, 2, job.Version)

	// A writer holding the old version loses.
	stale := job
	stale.Version = 1
	stale.Status = model.JobStatusRejected
	err := testStore.UpdateJob(ctx, &stale)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// The winning write is what persisted.
	jobs, err := testStore.ListJobs(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)
	for _, j := range jobs {
		if j.ID == job.ID {
			assert.Equal(t, model.JobStatusInterview, j.Status)
			assert.Equal(t, 2, j.Version)
		}
	}
}

func TestUpdateJob_DBErrorIsNotMappedToSentinel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := model.Job{
		ID:      1,
		UserID:  database.TestUserSeeker2.ID,
		Version: 1,
	}
	// A failed query must surface as a wrapped DB error, never as the
	// not-found or version-conflict sentinels.
	err := testStore.UpdateJob(ctx, &job)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrVersionConflict)
}

func TestUpdateJob_NotFound(t *testing.T) {
	ctx := context.Background()
	missing := model.Job{
		ID:      999999,
		UserID:  database.TestUserSeeker2.ID,
		Version: 1,
	}
	err := testStore.UpdateJob(ctx, &missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteJob_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	job := model.Job{
		UserID: database.TestUserSeeker2.ID,
		EditableJobInfo: model.EditableJobInfo{
			Company: "DeleteMe Inc",
			Role:    "Temp",
			Status:  model.JobStatusApplied,
			Origin:  model.JobOriginApplication,
		},
	}
	require.NoError(t, testStore.InsertJob(ctx, &job))

	// Another user's delete must not touch the row.
	require.NoError(t, testStore.DeleteJob(ctx, database.TestUserSeeker1.ID, job.ID))
	jobs, err := testStore.ListJobs(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)
	found := false
	for _, j := range jobs {
		if j.ID == job.ID {
			found = true
		}
	}
	assert.True(t, found, "cross-user delete should be a no-op")

	require.NoError(t, testStore.DeleteJob(ctx, database.TestUserSeeker2.ID, job.ID))
	jobs, err = testStore.ListJobs(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)
	for _, j := range jobs {
		assert.NotEqual(t, job.ID, j.ID)
	}
}

func TestListJobs_NewestFirst(t *testing.T) {
	ctx := context.Background()
	jobs, err := testStore.ListJobs(ctx, database.TestUserSeeker1.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(jobs), 2)
	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i-1].CreatedAt.Before(jobs[i].CreatedAt),
			"jobs should be ordered newest first")
	}
}

func TestGetProfile_MissingRow(t *testing.T) {
	ctx := context.Background()
	_, err := testStore.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProfile_DuplicateIsSuccess(t *testing.T) {
	ctx := context.Background()

	profile := model.DefaultProfile(database.TestUserSeeker1.ID)
	// The seed already created this row; a racing create must not error.
	assert.NoError(t, testStore.CreateProfile(ctx, &profile))
}

func TestSaveProfile_FullReplace(t *testing.T) {
	ctx := context.Background()
	profile, err := testStore.GetProfile(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)

	profile.FullName = "Jamie Rivera"
	profile.Summary = "Data engineer with five years of pipeline experience."
	profile.Skills = append(profile.Skills, "Go", "Airflow")
	require.NoError(t, testStore.SaveProfile(ctx, &profile))

	reloaded, err := testStore.GetProfile(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jamie Rivera", reloaded.FullName)
	assert.Contains(t, []string(reloaded.Skills), "Airflow")
}

func TestSaveChatHistory_WritesOntoProfileRow(t *testing.T) {
	ctx := context.Background()
	msgs := []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: "persist me", Timestamp: time.Now().UTC()},
	}
	require.NoError(t, testStore.SaveChatHistory(ctx, database.TestUserSeeker2.ID, msgs))

	profile, err := testStore.GetProfile(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)
	transcript := profile.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, "persist me", transcript[0].Text)

	// Nil clears to an empty array, not SQL null.
	require.NoError(t, testStore.SaveChatHistory(ctx, database.TestUserSeeker2.ID, nil))
	profile, err = testStore.GetProfile(ctx, database.TestUserSeeker2.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Transcript())
}

func TestResearchReports_CRUD(t *testing.T) {
	ctx := context.Background()
	userID := database.TestUserSeeker2.ID

	content, err := model.EncodeReportContent(map[string]string{"overview": "test overview"})
	require.NoError(t, err)

	report := model.ResearchReport{ReportCommon: model.ReportCommon{
		ID:      uuid.New(),
		UserID:  userID,
		Company: "Acme Corp",
		Role:    "Platform Engineer",
		Content: content,
	}}
	require.NoError(t, testStore.InsertResearchReport(ctx, &report))

	reports, err := testStore.ListResearchReports(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, reports)
	assert.Equal(t, report.ID, reports[0].ID, "client-generated id must be the primary key")

	require.NoError(t, testStore.DeleteResearchReport(ctx, userID, report.ID))
	reports, err = testStore.ListResearchReports(ctx, userID)
	require.NoError(t, err)
	for _, r := range reports {
		assert.NotEqual(t, report.ID, r.ID)
	}
}

func TestPrepReports_CRUD(t *testing.T) {
	ctx := context.Background()
	userID := database.TestUserSeeker2.ID

	content, err := model.EncodeReportContent(map[string]any{
		"likely_questions": []string{"Why this company?"},
	})
	require.NoError(t, err)

	report := model.PrepReport{ReportCommon: model.ReportCommon{
		ID:      uuid.New(),
		UserID:  userID,
		Company: "DataForge",
		Role:    "Data Engineer",
		Content: content,
	}}
	require.NoError(t, testStore.InsertPrepReport(ctx, &report))

	reports, err := testStore.ListPrepReports(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, reports)
	assert.Equal(t, report.ID, reports[0].ID)

	// Deletes are owner-scoped.
	require.NoError(t, testStore.DeletePrepReport(ctx, database.TestUserSeeker1.ID, report.ID))
	reports, err = testStore.ListPrepReports(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, reports[0].ID, "cross-user delete should be a no-op")

	require.NoError(t, testStore.DeletePrepReport(ctx, userID, report.ID))
}
