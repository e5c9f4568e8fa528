package tracker

import (
	"context"

	"github.com/google/uuid"

	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
)

// ResearchReports returns a copy of the user's research history, newest first.
func (t *Tracker) ResearchReports(userID uuid.UUID) ([]model.ResearchReport, error) {
	sess, err := t.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	out := make([]model.ResearchReport, len(sess.research))
	copy(out, sess.research)
	return out, nil
}

// AddResearchReport inserts the report optimistically under a
// client-generated id (which is also the remote primary key, so no
// reconciliation follows), persists it, and trails the research history
// into the fallback cache regardless of the remote outcome.
func (t *Tracker) AddResearchReport(ctx context.Context, userID uuid.UUID, company, role, content string) (model.ResearchReport, error) {
	sess, err := t.session(userID)
	if err != nil {
		return model.ResearchReport{}, err
	}

	report := model.ResearchReport{
		ReportCommon: model.ReportCommon{
			ID:      uuid.New(),
			UserID:  userID,
			Company: company,
			Role:    role,
			Content: content,
		},
	}

	sess.mu.Lock()
	sess.research = append([]model.ResearchReport{report}, sess.research...)
	history := copyResearch(sess.research)
	sess.mu.Unlock()

	remoteErr := t.store.InsertResearchReport(ctx, &report)
	if remoteErr != nil {
		t.log.Error("research report not persisted", "user_id", userID, "report_id", report.ID, "error", remoteErr)
	}
	if err := t.cache.SetResearch(ctx, userID, history); err != nil {
		t.log.Warn("research cache write failed", "user_id", userID, "error", err)
	}
	return report, remoteErr
}

// DeleteResearchReport removes the report from memory, the store and the
// trailing cache copy.
func (t *Tracker) DeleteResearchReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	sess, err := t.session(userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	idx := -1
	for i := range sess.research {
		if sess.research[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		sess.mu.Unlock()
		return store.ErrNotFound
	}
	sess.research = append(sess.research[:idx], sess.research[idx+1:]...)
	history := copyResearch(sess.research)
	sess.mu.Unlock()

	remoteErr := t.store.DeleteResearchReport(ctx, userID, id)
	if remoteErr != nil {
		t.log.Error("research delete not persisted", "user_id", userID, "report_id", id, "error", remoteErr)
	}
	if err := t.cache.SetResearch(ctx, userID, history); err != nil {
		t.log.Warn("research cache write failed", "user_id", userID, "error", err)
	}
	return remoteErr
}

// PrepReports returns a copy of the user's prep-kit history, newest first.
func (t *Tracker) PrepReports(userID uuid.UUID) ([]model.PrepReport, error) {
	sess, err := t.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	out := make([]model.PrepReport, len(sess.prep))
	copy(out, sess.prep)
	return out, nil
}

// AddPrepReport inserts the prep kit optimistically under a client-generated
// id and persists it.
func (t *Tracker) AddPrepReport(ctx context.Context, userID uuid.UUID, company, role, content string) (model.PrepReport, error) {
	sess, err := t.session(userID)
	if err != nil {
		return model.PrepReport{}, err
	}

	report := model.PrepReport{
		ReportCommon: model.ReportCommon{
			ID:      uuid.New(),
			UserID:  userID,
			Company: company,
			Role:    role,
			Content: content,
		},
	}

	sess.mu.Lock()
	sess.prep = append([]model.PrepReport{report}, sess.prep...)
	sess.mu.Unlock()

	if err := t.store.InsertPrepReport(ctx, &report); err != nil {
		t.log.Error("prep report not persisted", "user_id", userID, "report_id", report.ID, "error", err)
		return report, err
	}
	return report, nil
}

// DeletePrepReport removes the prep kit from memory and the store.
func (t *Tracker) DeletePrepReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	sess, err := t.session(userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	idx := -1
	for i := range sess.prep {
		if sess.prep[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		sess.mu.Unlock()
		return store.ErrNotFound
	}
	sess.prep = append(sess.prep[:idx], sess.prep[idx+1:]...)
	sess.mu.Unlock()

	if err := t.store.DeletePrepReport(ctx, userID, id); err != nil {
		t.log.Error("prep delete not persisted", "user_id", userID, "report_id", id, "error", err)
		return err
	}
	return nil
}

func copyResearch(reports []model.ResearchReport) []model.ResearchReport {
	out := make([]model.ResearchReport, len(reports))
	copy(out, reports)
	return out
}
