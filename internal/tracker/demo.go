package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"JobJumper-backend/internal/model"
)

// SeedDemoData overwrites the current profile and inserts a fixed set of
// illustrative jobs, chat messages and a research report. Onboarding
// convenience only; it goes through the ordinary mutation contracts.
func (t *Tracker) SeedDemoData(ctx context.Context, userID uuid.UUID) error {
	if _, err := t.session(userID); err != nil {
		return err
	}

	var errs []error

	demoProfile := model.Profile{
		UserID:   userID,
		FullName: "Alex Morgan",
		Email:    "alex.morgan@example.com",
		Location: "Austin, TX",
		Summary:  "Full-stack engineer with 4 years of experience building web applications.",
		Skills:   pq.StringArray{"Go", "TypeScript", "PostgreSQL", "React"},
		Experience: datatypes.JSON([]byte(`[{"id":"exp-1","company":"BrightWorks","role":"Software Engineer","start":"2021","end":"Present","description":"Built and operated customer-facing services."}]`)),
		Projects:   datatypes.JSON([]byte(`[{"id":"proj-1","name":"OpenBudget","description":"Personal finance dashboard","link":"https://example.com/openbudget","tech":["Go","React"]}]`)),
		Education:  datatypes.JSON([]byte(`[{"id":"edu-1","school":"UT Austin","degree":"BSc","field":"Computer Science","start":"2015","end":"2019"}]`)),
	}
	if _, err := t.ReplaceProfile(ctx, userID, demoProfile); err != nil {
		errs = append(errs, err)
	}

	demoJobs := []model.EditableJobInfo{
		{
			Company:     "Acme Corp",
			Role:        "Senior Backend Engineer",
			Status:      model.JobStatusInterview,
			Origin:      model.JobOriginApplication,
			Location:    "Remote",
			Salary:      "$140k - $170k",
			Description: "Go services, event pipelines, Postgres.",
		},
		{
			Company:  "Globex",
			Role:     "Platform Engineer",
			Status:   model.JobStatusApplied,
			Origin:   model.JobOriginApplication,
			Location: "New York, NY",
		},
		{
			Company:  "Initech",
			Role:     "Staff Engineer",
			Status:   model.JobStatusOffer,
			Origin:   model.JobOriginOffer,
			Salary:   "$185k",
			Location: "Austin, TX",
		},
	}
	for _, info := range demoJobs {
		if _, err := t.AddJob(ctx, userID, info); err != nil {
			errs = append(errs, err)
		}
	}

	now := time.Now()
	demoChat := []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: "How should I prepare for the Acme interview?", Timestamp: now},
		{Role: model.ChatRoleModel, Text: "Focus on distributed systems fundamentals and be ready to walk through a Go service you have built end to end.", Timestamp: now.Add(time.Second)},
	}
	for _, msg := range demoChat {
		if _, err := t.AppendChat(ctx, userID, msg); err != nil {
			errs = append(errs, err)
		}
	}

	demoResearch, err := model.EncodeReportContent(map[string]any{
		"overview":  "Acme Corp builds logistics software for mid-market retailers.",
		"culture":   "Engineering-led, remote-friendly.",
		"questions": []string{"How is on-call structured?", "What does the promotion path look like?"},
	})
	if err != nil {
		errs = append(errs, err)
	} else if _, err := t.AddResearchReport(ctx, userID, "Acme Corp", "Senior Backend Engineer", demoResearch); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Export snapshots the user's jobs, profile and statistics into a
// downloadable bundle. There is no import path for this format.
func (t *Tracker) Export(userID uuid.UUID) (ExportBundle, error) {
	sess, err := t.session(userID)
	if err != nil {
		return ExportBundle{}, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	jobs := make([]model.Job, len(sess.jobs))
	copy(jobs, sess.jobs)

	return ExportBundle{
		ExportedAt: time.Now(),
		Profile:    sess.profile,
		Jobs:       jobs,
		Stats:      computeStats(sess.jobs),
	}, nil
}
