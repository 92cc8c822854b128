package services

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
)

type memJobStore struct {
	mu    sync.Mutex
	jobs  map[string]*models.Job
	saved map[string]map[string]time.Time
	clock time.Time
}

func newMemJobStore() *memJobStore {
	return &memJobStore{
		jobs:  map[string]*models.Job{},
		saved: map[string]map[string]time.Time{},
		clock: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memJobStore) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.Title == job.Title && j.Company == job.Company {
			return apperrors.NewConflictError("a job with this title is already posted for this company")
		}
	}
	job.CreatedAt = m.clock
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memJobStore) GetJob(_ context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobStore) SaveJob(_ context.Context, userID, jobID string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[jobID]; !ok {
		return time.Time{}, apperrors.ErrJobNotFound
	}
	if m.saved[userID] == nil {
		m.saved[userID] = map[string]time.Time{}
	}
	if at, ok := m.saved[userID][jobID]; ok {
		return at, nil
	}
	m.clock = m.clock.Add(time.Minute)
	m.saved[userID][jobID] = m.clock
	return m.clock, nil
}

func (m *memJobStore) UnsaveJob(_ context.Context, userID, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved[userID], jobID)
	return nil
}

func (m *memJobStore) IsSaved(_ context.Context, userID, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saved[userID][jobID]
	return ok, nil
}

func (m *memJobStore) ListSavedJobs(_ context.Context, userID string, offset uint64, limit int) ([]models.SavedJob, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.SavedJob
	for jobID, at := range m.saved[userID] {
		job := *m.jobs[jobID]
		all = append(all, models.SavedJob{UserID: userID, JobID: jobID, SavedAt: at, Job: &job})
	}
	slices.SortFunc(all, func(a, b models.SavedJob) int { return b.SavedAt.Compare(a.SavedAt) })
	start := min(int(offset), len(all))
	end := min(start+limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func newSavedJobFixture(t *testing.T) (SavedJobService, *memJobStore) {
	t.Helper()
	users := newFakeUsers(&models.User{ID: "u-prof", Name: "Prof. Knuth", Username: "knuth", DisplayUsername: "Knuth"})
	store := newMemJobStore()
	return NewSavedJobService(store, users, zerolog.Nop()), store
}

func postJob(t *testing.T, svc SavedJobService, title string) *dto.JobResponse {
	t.Helper()
	job, err := svc.CreateJob(context.Background(), domain.Viewer{UserID: "u-prof"}, &dto.CreateJobRequest{
		Title:   title,
		Company: "Campus Lab",
		Type:    string(models.JobResearch),
	})
	require.NoError(t, err)
	return job
}

func TestCreateAndGetJob(t *testing.T) {
	svc, _ := newSavedJobFixture(t)
	ctx := context.Background()

	job := postJob(t, svc, "  Research Assistant ")
	assert.Equal(t, "Research Assistant", job.Title)
	require.NotNil(t, job.PostedBy)
	assert.Equal(t, "knuth", job.PostedBy.Username)
	assert.False(t, job.IsSaved)

	_, err := svc.CreateJob(ctx, domain.Viewer{UserID: "u-prof"}, &dto.CreateJobRequest{
		Title: "Research Assistant", Company: "Campus Lab", Type: string(models.JobResearch),
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.GetJob(ctx, "missing", domain.Viewer{UserID: "u-a"})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestSaveJobIsIdempotent(t *testing.T) {
	svc, _ := newSavedJobFixture(t)
	ctx := context.Background()
	viewer := domain.Viewer{UserID: "u-a"}
	job := postJob(t, svc, "TA")

	first, err := svc.SaveJob(ctx, job.ID, viewer)
	require.NoError(t, err)
	assert.True(t, first.Job.IsSaved)

	second, err := svc.SaveJob(ctx, job.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, first.SavedAt, second.SavedAt)

	got, err := svc.GetJob(ctx, job.ID, viewer)
	require.NoError(t, err)
	assert.True(t, got.IsSaved)

	other, err := svc.GetJob(ctx, job.ID, domain.Viewer{UserID: "u-b"})
	require.NoError(t, err)
	assert.False(t, other.IsSaved)

	_, err = svc.SaveJob(ctx, "missing", viewer)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestListSavedJobsNewestFirst(t *testing.T) {
	svc, _ := newSavedJobFixture(t)
	ctx := context.Background()
	viewer := domain.Viewer{UserID: "u-a"}

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		job := postJob(t, svc, title)
		_, err := svc.SaveJob(ctx, job.ID, viewer)
		require.NoError(t, err)
	}

	list, err := svc.ListSavedJobs(ctx, viewer, 1, 2)
	require.NoError(t, err)
	require.Len(t, list.SavedJobs, 2)
	assert.Equal(t, "Third", list.SavedJobs[0].Job.Title)
	assert.Equal(t, "Second", list.SavedJobs[1].Job.Title)
	assert.Equal(t, int64(3), list.TotalItems)
	assert.Equal(t, 2, list.TotalPages)

	require.NoError(t, svc.UnsaveJob(ctx, list.SavedJobs[0].Job.ID, viewer))
	require.NoError(t, svc.UnsaveJob(ctx, list.SavedJobs[0].Job.ID, viewer))

	list, err = svc.ListSavedJobs(ctx, viewer, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.SavedJobs, 2)
	assert.Equal(t, "Second", list.SavedJobs[0].Job.Title)

	empty, err := svc.ListSavedJobs(ctx, domain.Viewer{UserID: "u-none"}, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.SavedJobs)
	assert.Empty(t, empty.SavedJobs)
}
