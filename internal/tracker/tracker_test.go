package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobJumper-backend/internal/fallback"
	"JobJumper-backend/internal/logger"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
)

// fakeStore is a pure in-memory store.Store used to exercise the tracker
// without a database. failNext makes the next write fail once; insertGate,
// when set, makes InsertJob signal and then wait so a test can interleave
// other calls while the insert is in flight.
type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	jobs       map[uuid.UUID][]model.Job
	profiles   map[uuid.UUID]model.Profile
	research   map[uuid.UUID][]model.ResearchReport
	prep       map[uuid.UUID][]model.PrepReport
	failNext   bool
	insertGate chan struct{}
}

var errFakeDown = errors.New("store unavailable")

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		jobs:     make(map[uuid.UUID][]model.Job),
		profiles: make(map[uuid.UUID]model.Profile),
		research: make(map[uuid.UUID][]model.ResearchReport),
		prep:     make(map[uuid.UUID][]model.PrepReport),
	}
}

func (f *fakeStore) failing() bool {
	if f.failNext {
		f.failNext = false
		return true
	}
	return false
}

func (f *fakeStore) ListJobs(ctx context.Context, userID uuid.UUID) ([]model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Job, len(f.jobs[userID]))
	copy(out, f.jobs[userID])
	return out, nil
}

func (f *fakeStore) InsertJob(ctx context.Context, job *model.Job) error {
	if f.insertGate != nil {
		f.insertGate <- struct{}{}
		<-f.insertGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	job.ID = f.nextID
	f.nextID++
	f.jobs[job.UserID] = append(f.jobs[job.UserID], *job)
	return nil
}

func (f *fakeStore) UpdateJob(ctx context.Context, job *model.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	rows := f.jobs[job.UserID]
	for i := range rows {
		if rows[i].ID == job.ID {
			if rows[i].Version != job.Version {
				return store.ErrVersionConflict
			}
			job.Version++
			rows[i] = *job
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) DeleteJob(ctx context.Context, userID uuid.UUID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	rows := f.jobs[userID]
	for i := range rows {
		if rows[i].ID == id {
			f.jobs[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return model.Profile{}, store.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.UserID]; ok {
		return nil
	}
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeStore) SaveChatHistory(ctx context.Context, userID uuid.UUID, msgs []model.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	p := f.profiles[userID]
	if err := p.SetTranscript(msgs); err != nil {
		return err
	}
	p.UserID = userID
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) ListResearchReports(ctx context.Context, userID uuid.UUID) ([]model.ResearchReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ResearchReport, len(f.research[userID]))
	copy(out, f.research[userID])
	return out, nil
}

func (f *fakeStore) InsertResearchReport(ctx context.Context, report *model.ResearchReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	f.research[report.UserID] = append(f.research[report.UserID], *report)
	return nil
}

func (f *fakeStore) DeleteResearchReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.research[userID]
	for i := range rows {
		if rows[i].ID == id {
			f.research[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListPrepReports(ctx context.Context, userID uuid.UUID) ([]model.PrepReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.PrepReport, len(f.prep[userID]))
	copy(out, f.prep[userID])
	return out, nil
}

func (f *fakeStore) InsertPrepReport(ctx context.Context, report *model.PrepReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing() {
		return errFakeDown
	}
	f.prep[report.UserID] = append(f.prep[report.UserID], *report)
	return nil
}

func (f *fakeStore) DeletePrepReport(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.prep[userID]
	for i := range rows {
		if rows[i].ID == id {
			f.prep[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func newTestTracker(t *testing.T) (*Tracker, *fakeStore, fallback.Cache, uuid.UUID) {
	t.Helper()
	fs := newFakeStore()
	cache := fallback.NewInMemoryCache()
	tr := New(fs, cache, logger.NewNop())
	userID := uuid.New()
	require.NoError(t, tr.Hydrate(context.Background(), userID))
	return tr, fs, cache, userID
}

func TestHydrate_CreatesDefaultProfile(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)

	profile, err := tr.Profile(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)

	stored, err := fs.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
}

func TestOperationsWithoutSession(t *testing.T) {
	fs := newFakeStore()
	tr := New(fs, fallback.NewInMemoryCache(), logger.NewNop())

	_, err := tr.Jobs(uuid.New())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAddThenDeleteJob_AbsentEverywhere(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)

	job, err := tr.AddJob(context.Background(), userID, model.EditableJobInfo{
		Company: "Acme", Role: "Engineer",
	})
	require.NoError(t, err)
	require.Positive(t, job.ID)

	require.NoError(t, tr.DeleteJob(context.Background(), userID, job.ID))

	jobs, err := tr.Jobs(userID)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	remote, err := fs.ListJobs(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, remote)
}

func TestAddJob_ReconcilesTempID(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)

	job, err := tr.AddJob(context.Background(), userID, model.EditableJobInfo{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	assert.Positive(t, job.ID)

	jobs, err := tr.Jobs(userID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)
}

func TestAddJob_RemoteFailureKeepsOptimisticRecord(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)

	fs.failNext = true
	job, err := tr.AddJob(context.Background(), userID, model.EditableJobInfo{Company: "Acme", Role: "Engineer"})
	assert.Error(t, err)
	assert.Negative(t, job.ID)

	jobs, err := tr.Jobs(userID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)

	// A record that never reached the store deletes locally without error.
	assert.NoError(t, tr.DeleteJob(context.Background(), userID, job.ID))
}

func TestUpdateJob_PatchIsMergeNotReplace(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)

	job, err := tr.AddJob(context.Background(), userID, model.EditableJobInfo{
		Company:  "Acme",
		Role:     "Engineer",
		Status:   model.JobStatusApplied,
		Location: "Remote",
		Salary:   "100k",
	})
	require.NoError(t, err)

	updated, err := tr.UpdateJob(context.Background(), userID, job.ID, model.EditableJobInfo{
		Status: model.JobStatusInterview,
	})
	require.NoError(t, err)

	// Untouched fields keep their prior value in memory.
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Remote", updated.Location)
	assert.Equal(t, "100k", updated.Salary)
	assert.Equal(t, model.JobStatusInterview, updated.Status)

	// The remote write carried the full merged record.
	remote, err := fs.ListJobs(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, "Remote", remote[0].Location)
	assert.Equal(t, model.JobStatusInterview, remote[0].Status)
}

func TestUpdateJob_VersionConflictSurfaces(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)

	job, err := tr.AddJob(context.Background(), userID, model.EditableJobInfo{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	// A concurrent writer bumps the stored version behind the session's back.
	fs.mu.Lock()
	fs.jobs[userID][0].Version++
	fs.mu.Unlock()

	merged, err := tr.UpdateJob(context.Background(), userID, job.ID, model.EditableJobInfo{
		Status: model.JobStatusRejected,
	})
	assert.ErrorIs(t, err, store.ErrVersionConflict)
	// The optimistic merge is kept.
	assert.Equal(t, model.JobStatusRejected, merged.Status)
}

func TestUpdateJob_NotFound(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)

	_, err := tr.UpdateJob(context.Background(), userID, 42, model.EditableJobInfo{Status: model.JobStatusOffer})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStats_RecomputedPerStatus(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)
	ctx := context.Background()

	for _, info := range []model.EditableJobInfo{
		{Company: "A", Role: "r", Status: model.JobStatusApplied},
		{Company: "B", Role: "r", Status: model.JobStatusInterview},
		{Company: "C", Role: "r", Status: model.JobStatusRejected},
		{Company: "D", Role: "r", Status: model.JobStatusAccepted},
	} {
		_, err := tr.AddJob(ctx, userID, info)
		require.NoError(t, err)
	}

	stats, err := tr.Stats(userID)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 4, Applied: 1, Interview: 1, Offers: 1, Rejected: 1}, stats)

	// Inserting an Offer increases only the offer-or-accepted count.
	_, err = tr.AddJob(ctx, userID, model.EditableJobInfo{Company: "E", Role: "r", Status: model.JobStatusOffer})
	require.NoError(t, err)

	stats, err = tr.Stats(userID)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 5, Applied: 1, Interview: 1, Offers: 2, Rejected: 1}, stats)
}

func TestJobLifecycle_StatusWalkKeepsInterviewDate(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)
	ctx := context.Background()

	job, err := tr.AddJob(ctx, userID, model.EditableJobInfo{
		Company: "Acme", Role: "Engineer", Status: model.JobStatusApplied,
	})
	require.NoError(t, err)

	interviewAt := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	details, err := model.EncodeJobDetails(model.JobDetails{InterviewDate: &interviewAt})
	require.NoError(t, err)

	_, err = tr.UpdateJob(ctx, userID, job.ID, model.EditableJobInfo{
		Status:  model.JobStatusInterview,
		Details: details,
	})
	require.NoError(t, err)

	// A status-only patch must not touch the details blob.
	final, err := tr.UpdateJob(ctx, userID, job.ID, model.EditableJobInfo{
		Status: model.JobStatusOffer,
	})
	require.NoError(t, err)

	stats, err := tr.Stats(userID)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 1, Offers: 1}, stats)

	decoded, err := model.DecodeJobDetails(final.Details)
	require.NoError(t, err)
	require.NotNil(t, decoded.InterviewDate)
	assert.True(t, decoded.InterviewDate.Equal(interviewAt))
}

func TestChat_AppendExtendsTranscriptAndMirrorsCache(t *testing.T) {
	tr, _, cache, userID := newTestTracker(t)
	ctx := context.Background()

	before, err := tr.Chat(ctx, userID)
	require.NoError(t, err)
	n := len(before)

	msg := model.ChatMessage{Role: model.ChatRoleUser, Text: "hello"}
	after, err := tr.AppendChat(ctx, userID, msg)
	require.NoError(t, err)
	require.Len(t, after, n+1)
	assert.Equal(t, "hello", after[len(after)-1].Text)

	cached, err := cache.GetChat(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cached, len(after))
	assert.Equal(t, "hello", cached[len(cached)-1].Text)
}

func TestChat_SeedsGreetingOnce(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)
	ctx := context.Background()

	first, err := tr.Chat(ctx, userID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, model.ChatRoleModel, first[0].Role)

	second, err := tr.Chat(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestClearChat_SurvivesReloadEmpty(t *testing.T) {
	tr, _, cache, userID := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.AppendChat(ctx, userID, model.ChatMessage{Role: model.ChatRoleUser, Text: "hi"})
	require.NoError(t, err)

	require.NoError(t, tr.ClearChat(ctx, userID))

	// Both persistence targets were emptied.
	cached, err := cache.GetChat(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cached)

	// A reload cannot restore a stale transcript, and the greeting does not
	// come back either (the seeded flag was stored as an empty transcript).
	require.NoError(t, tr.Hydrate(ctx, userID))
	transcript, err := tr.Chat(ctx, userID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(transcript), 1)
}

func TestChat_FallsBackToCacheWhenProfileEmpty(t *testing.T) {
	fs := newFakeStore()
	cache := fallback.NewInMemoryCache()
	tr := New(fs, cache, logger.NewNop())
	userID := uuid.New()
	ctx := context.Background()

	// Only the local cache has a transcript, as after a failed remote write.
	require.NoError(t, cache.SetChat(ctx, userID, []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: "offline note"},
	}))

	require.NoError(t, tr.Hydrate(ctx, userID))
	transcript, err := tr.Chat(ctx, userID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.Equal(t, "offline note", transcript[0].Text)
}

func TestResearch_FallsBackToCacheWhenStoreEmpty(t *testing.T) {
	fs := newFakeStore()
	cache := fallback.NewInMemoryCache()
	tr := New(fs, cache, logger.NewNop())
	userID := uuid.New()
	ctx := context.Background()

	// Only the local cache has the history, as after a failed remote write.
	content, err := model.EncodeReportContent(map[string]string{"overview": "solid company"})
	require.NoError(t, err)
	require.NoError(t, cache.SetResearch(ctx, userID, []model.ResearchReport{
		{ReportCommon: model.ReportCommon{
			ID:      uuid.New(),
			UserID:  userID,
			Company: "Acme",
			Role:    "Engineer",
			Content: content,
		}},
	}))

	require.NoError(t, tr.Hydrate(ctx, userID))
	reports, err := tr.ResearchReports(userID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Acme", reports[0].Company)
}

func TestAddJob_ConcurrentPatchSurvivesReconcile(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)
	ctx := context.Background()

	fs.insertGate = make(chan struct{})

	type result struct {
		job model.Job
		err error
	}
	done := make(chan result, 1)
	go func() {
		job, err := tr.AddJob(ctx, userID, model.EditableJobInfo{Company: "Acme", Role: "Engineer"})
		done <- result{job, err}
	}()

	// Wait until the remote insert is in flight.
	<-fs.insertGate

	jobs, err := tr.Jobs(userID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	tempID := jobs[0].ID
	require.Negative(t, tempID)

	// Patch the record before the insert lands. The remote write fails (the
	// row does not exist yet) but the merge is kept in memory.
	_, err = tr.UpdateJob(ctx, userID, tempID, model.EditableJobInfo{Status: model.JobStatusInterview})
	assert.ErrorIs(t, err, store.ErrNotFound)

	fs.insertGate <- struct{}{}
	res := <-done
	require.NoError(t, res.err)
	require.Positive(t, res.job.ID)

	// Reconciliation assigned the store id without discarding the patch.
	jobs, err = tr.Jobs(userID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, res.job.ID, jobs[0].ID)
	assert.Equal(t, model.JobStatusInterview, jobs[0].Status)
}

func TestReplaceProfile_KeepsTranscript(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.AppendChat(ctx, userID, model.ChatMessage{Role: model.ChatRoleUser, Text: "keep me"})
	require.NoError(t, err)

	_, err = tr.ReplaceProfile(ctx, userID, model.Profile{FullName: "New Name"})
	require.NoError(t, err)

	stored, err := fs.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", stored.FullName)
	transcript := stored.Transcript()
	require.NotEmpty(t, transcript)
	assert.Equal(t, "keep me", transcript[len(transcript)-1].Text)
}

func TestResearchReports_AddListDelete(t *testing.T) {
	tr, _, cache, userID := newTestTracker(t)
	ctx := context.Background()

	content, err := model.EncodeReportContent(map[string]string{"overview": "fine company"})
	require.NoError(t, err)

	report, err := tr.AddResearchReport(ctx, userID, "Acme", "Engineer", content)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ID)

	list, err := tr.ResearchReports(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// The cache trails the research history.
	cached, err := cache.GetResearch(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	require.NoError(t, tr.DeleteResearchReport(ctx, userID, report.ID))
	list, err = tr.ResearchReports(userID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = tr.DeleteResearchReport(ctx, userID, report.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLegacyReportContent_SurfacesAsText(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)
	ctx := context.Background()

	legacy := "Plain prose research from an older build"
	report, err := tr.AddResearchReport(ctx, userID, "Acme", "Engineer", legacy)
	require.NoError(t, err)

	decoded := model.DecodeReportContent(report.Content)
	assert.True(t, decoded.Legacy)
	assert.Equal(t, legacy, decoded.LegacyText)
}

func TestClear_SignOutDropsMemoryOnly(t *testing.T) {
	tr, fs, _, userID := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.AddJob(ctx, userID, model.EditableJobInfo{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	tr.Clear(userID)
	assert.False(t, tr.HasSession(userID))
	_, err = tr.Jobs(userID)
	assert.ErrorIs(t, err, ErrNoSession)

	// Remote data is untouched and comes back on the next sign-in.
	remote, err := fs.ListJobs(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, remote, 1)

	require.NoError(t, tr.Hydrate(ctx, userID))
	jobs, err := tr.Jobs(userID)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestExport_SnapshotsJobsProfileStats(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.AddJob(ctx, userID, model.EditableJobInfo{Company: "Acme", Role: "Engineer", Status: model.JobStatusOffer})
	require.NoError(t, err)

	bundle, err := tr.Export(userID)
	require.NoError(t, err)
	assert.Len(t, bundle.Jobs, 1)
	assert.Equal(t, 1, bundle.Stats.Offers)
	assert.Equal(t, userID, bundle.Profile.UserID)
	assert.False(t, bundle.ExportedAt.IsZero())
}

func TestSeedDemoData_PopulatesWorkspace(t *testing.T) {
	tr, _, _, userID := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.SeedDemoData(ctx, userID))

	jobs, err := tr.Jobs(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, jobs)

	profile, err := tr.Profile(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, profile.FullName)

	transcript, err := tr.Chat(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, transcript)

	reports, err := tr.ResearchReports(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, reports)
}

func TestThemePreference_IndependentOfSession(t *testing.T) {
	fs := newFakeStore()
	tr := New(fs, fallback.NewInMemoryCache(), logger.NewNop())
	userID := uuid.New()
	ctx := context.Background()

	// No hydrated session required.
	require.NoError(t, tr.SetTheme(ctx, userID, "dark"))
	theme, err := tr.Theme(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}
