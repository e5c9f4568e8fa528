package tracker

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
	"JobJumper-backend/internal/utilities"
)

// Jobs returns a copy of the user's in-memory job collection, newest first.
func (t *Tracker) Jobs(userID uuid.UUID) ([]model.Job, error) {
	sess, err := t.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	out := make([]model.Job, len(sess.jobs))
	copy(out, sess.jobs)
	return out, nil
}

// Stats recomputes the aggregate counts from the in-memory jobs. Accepted
// records count into Offers.
func (t *Tracker) Stats(userID uuid.UUID) (Stats, error) {
	sess, err := t.session(userID)
	if err != nil {
		return Stats{}, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return computeStats(sess.jobs), nil
}

func computeStats(jobs []model.Job) Stats {
	s := Stats{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case model.JobStatusApplied:
			s.Applied++
		case model.JobStatusInterview:
			s.Interview++
		case model.JobStatusOffer, model.JobStatusAccepted:
			s.Offers++
		case model.JobStatusRejected:
			s.Rejected++
		}
	}
	return s
}

// AddJob inserts a record at the head of the in-memory list under a
// temporary negative id, then issues the remote insert. On success the
// temporary id is reconciled in place with the store-assigned one. The
// optimistic record is returned even when the remote write failed; the
// error tells the caller the write was not durable.
func (t *Tracker) AddJob(ctx context.Context, userID uuid.UUID, info model.EditableJobInfo) (model.Job, error) {
	sess, err := t.session(userID)
	if err != nil {
		return model.Job{}, err
	}

	if info.Status == "" {
		info.Status = model.JobStatusApplied
	}
	if info.Origin == "" {
		info.Origin = model.JobOriginApplication
	}

	sess.mu.Lock()
	tempID := sess.nextTempID
	sess.nextTempID--
	job := model.Job{
		ID:              tempID,
		UserID:          userID,
		EditableJobInfo: info,
		Version:         1,
	}
	sess.jobs = append([]model.Job{job}, sess.jobs...)
	sess.mu.Unlock()

	persisted := job
	if err := t.store.InsertJob(ctx, &persisted); err != nil {
		t.log.Error("job insert not persisted", "user_id", userID, "error", err)
		return job, err
	}

	// Reconcile only the store-assigned fields; a patch merged onto the
	// record while the insert was in flight must survive.
	sess.mu.Lock()
	for i := range sess.jobs {
		if sess.jobs[i].ID == tempID {
			sess.jobs[i].ID = persisted.ID
			sess.jobs[i].Version = persisted.Version
			sess.jobs[i].CreatedAt = persisted.CreatedAt
			sess.jobs[i].UpdatedAt = persisted.UpdatedAt
			break
		}
	}
	sess.mu.Unlock()

	return persisted, nil
}

// UpdateJob merges a partial patch onto the matching in-memory record
// (fields absent from the patch keep their prior value) and persists the
// entire merged record. A stale version surfaces as
// store.ErrVersionConflict; the optimistic merge is kept regardless.
func (t *Tracker) UpdateJob(ctx context.Context, userID uuid.UUID, id int64, patch model.EditableJobInfo) (model.Job, error) {
	sess, err := t.session(userID)
	if err != nil {
		return model.Job{}, err
	}

	sess.mu.Lock()
	idx := -1
	for i := range sess.jobs {
		if sess.jobs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		sess.mu.Unlock()
		return model.Job{}, store.ErrNotFound
	}
	utilities.MergeNonEmpty(&sess.jobs[idx].EditableJobInfo, &patch)
	merged := sess.jobs[idx]
	sess.mu.Unlock()

	persisted := merged
	if err := t.store.UpdateJob(ctx, &persisted); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			t.log.Warn("job update lost to concurrent write", "user_id", userID, "job_id", id)
		} else {
			t.log.Error("job update not persisted", "user_id", userID, "job_id", id, "error", err)
		}
		return merged, err
	}

	sess.mu.Lock()
	for i := range sess.jobs {
		if sess.jobs[i].ID == id {
			sess.jobs[i].Version = persisted.Version
			break
		}
	}
	sess.mu.Unlock()

	return persisted, nil
}

// DeleteJob removes the record from memory immediately, then issues the
// remote delete.
func (t *Tracker) DeleteJob(ctx context.Context, userID uuid.UUID, id int64) error {
	sess, err := t.session(userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	idx := -1
	for i := range sess.jobs {
		if sess.jobs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		sess.mu.Unlock()
		return store.ErrNotFound
	}
	sess.jobs = append(sess.jobs[:idx], sess.jobs[idx+1:]...)
	sess.mu.Unlock()

	// Records that never made it to the store have a temporary negative id.
	if id < 0 {
		return nil
	}
	if err := t.store.DeleteJob(ctx, userID, id); err != nil {
		t.log.Error("job delete not persisted", "user_id", userID, "job_id", id, "error", err)
		return err
	}
	return nil
}
