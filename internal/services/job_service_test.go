package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJobRepo is an in-memory JobRepository.
type fakeJobRepo struct {
	jobs   map[int]*models.Job
	nextID int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[int]*models.Job), nextID: 1}
}

func (f *fakeJobRepo) Create(ctx context.Context, j *models.Job) error {
	j.ID = f.nextID
	f.nextID++
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	stored := *j
	f.jobs[j.ID] = &stored
	return nil
}

func (f *fakeJobRepo) Get(ctx context.Context, id int) (*models.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) GetByTrackingCode(ctx context.Context, code string) (*models.Job, error) {
	for _, j := range f.jobs {
		if strings.EqualFold(j.TrackingCode, code) {
			copied := *j
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeJobRepo) TrackingCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByTrackingCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeJobRepo) List(ctx context.Context, filter models.JobFilter) ([]*models.Job, int, error) {
	var out []*models.Job
	for _, j := range f.jobs {
		copied := *j
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeJobRepo) Update(ctx context.Context, j *models.Job) error {
	if _, ok := f.jobs[j.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *j
	f.jobs[j.ID] = &stored
	return nil
}

func (f *fakeJobRepo) UpdateStatus(ctx context.Context, id int, status string, estimatedDate *time.Time) error {
	j, ok := f.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	j.Status = status
	j.EstimatedCompletionDate = estimatedDate
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.jobs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) ListOptions(ctx context.Context) ([]*models.JobOption, error) {
	var out []*models.JobOption
	for _, j := range f.jobs {
		if j.Status == models.StatusCancelled {
			continue
		}
		out = append(out, &models.JobOption{ID: j.ID, TrackingCode: j.TrackingCode, Title: j.Title, Status: j.Status})
	}
	return out, nil
}

// fakeHistoryRepo is an in-memory HistoryRepository with an optional
// injected failure.
type fakeHistoryRepo struct {
	entries []*models.JobHistory
	failErr error
}

func (f *fakeHistoryRepo) Append(ctx context.Context, h *models.JobHistory) error {
	if f.failErr != nil {
		return f.failErr
	}
	h.ID = len(f.entries) + 1
	h.CreatedAt = time.Now()
	copied := *h
	f.entries = append(f.entries, &copied)
	return nil
}

func (f *fakeHistoryRepo) ListByJob(ctx context.Context, jobID int) ([]*models.JobHistory, error) {
	var out []*models.JobHistory
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].JobID == jobID {
			copied := *f.entries[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func newJobService() (*JobService, *fakeJobRepo, *fakeHistoryRepo) {
	jobs := newFakeJobRepo()
	history := &fakeHistoryRepo{}
	return NewJobService(jobs, history), jobs, history
}

func strPtr(s string) *string { return &s }

func TestCreateJobAssignsTrackingCodeAndHistory(t *testing.T) {
	svc, _, history := newJobService()

	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title:      "Servis AC",
		ClientName: "Budi Santoso",
	}, 7)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(job.TrackingCode, "TRK-"))
	assert.Len(t, job.TrackingCode, 10)
	assert.Equal(t, models.StatusPending, job.Status)
	assert.Equal(t, models.PriorityMedium, job.Priority)

	require.Len(t, history.entries, 1)
	assert.Equal(t, "Pekerjaan dibuat", history.entries[0].Notes)
	assert.Equal(t, job.ID, history.entries[0].JobID)
}

func TestCreateJobValidatesMandatoryFields(t *testing.T) {
	svc, _, _ := newJobService()

	_, err := svc.Create(context.Background(), &models.CreateJobRequest{ClientName: "Budi"}, 1)
	assert.Error(t, err)
	// Rejected input must be typed so handlers answer 400, not 500.
	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(context.Background(), &models.CreateJobRequest{Title: "Servis"}, 1)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis", ClientName: "Budi", Status: "unknown",
	}, 1)
	assert.Error(t, err)
}

func TestCreateJobSucceedsWhenHistoryAppendFails(t *testing.T) {
	svc, repo, history := newJobService()
	history.failErr = errors.New("audit store down")

	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title:      "Servis AC",
		ClientName: "Budi",
	}, 1)
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Empty(t, history.entries)
}

func TestUpdateStatusRequiresNote(t *testing.T) {
	svc, repo, history := newJobService()
	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)
	created := len(history.entries)

	_, err = svc.Update(context.Background(), job.ID, &models.UpdateJobRequest{
		Status:     models.StatusInProgress,
		StatusNote: strPtr("   "),
	}, 1)
	assert.Error(t, err)

	// Nothing mutated, nothing appended.
	stored, _ := repo.Get(context.Background(), job.ID)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Len(t, history.entries, created)
}

func TestUpdateStatusAppendsTransitionNote(t *testing.T) {
	svc, _, history := newJobService()
	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), job.ID, &models.UpdateJobRequest{
		Status:     models.StatusInProgress,
		StatusNote: strPtr("Teknisi sudah di lokasi"),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	require.Len(t, history.entries, 2)
	last := history.entries[1]
	assert.Equal(t, "Status diubah dari Menunggu ke Sedang Dikerjakan", last.Notes)
	assert.Equal(t, "Teknisi sudah di lokasi", last.StatusNote)
}

func TestUpdateStatusDateChangeNote(t *testing.T) {
	svc, _, history := newJobService()
	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)

	newDate := time.Now().AddDate(0, 0, 14)
	_, err = svc.Update(context.Background(), job.ID, &models.UpdateJobRequest{
		EstimatedCompletionDate: &newDate,
		StatusNote:              strPtr("Menunggu sparepart"),
	}, 1)
	require.NoError(t, err)

	last := history.entries[len(history.entries)-1]
	assert.Equal(t, "Estimasi tanggal selesai diperbarui", last.Notes)
}

func TestFullUpdateAppendsNoHistory(t *testing.T) {
	svc, repo, history := newJobService()
	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)
	created := len(history.entries)

	updated, err := svc.Update(context.Background(), job.ID, &models.UpdateJobRequest{
		Title:      "Servis AC Split",
		ClientName: "Budi Santoso",
		Priority:   models.PriorityHigh,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Servis AC Split", updated.Title)
	assert.Len(t, history.entries, created)

	// Tracking code is immutable through full updates.
	stored, _ := repo.Get(context.Background(), job.ID)
	assert.Equal(t, job.TrackingCode, stored.TrackingCode)
}

func TestAppendHistoryManualEntry(t *testing.T) {
	svc, _, _ := newJobService()
	job, err := svc.Create(context.Background(), &models.CreateJobRequest{
		Title: "Servis AC", ClientName: "Budi",
	}, 1)
	require.NoError(t, err)

	entry, err := svc.AppendHistory(context.Background(), job.ID, "Klien menghubungi via WA", 2)
	require.NoError(t, err)
	assert.Equal(t, job.Status, entry.Status)
	assert.Equal(t, "Klien menghubungi via WA", entry.StatusNote)

	_, err = svc.AppendHistory(context.Background(), job.ID, "  ", 2)
	assert.Error(t, err)

	_, err = svc.AppendHistory(context.Background(), 9999, "catatan", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPaginationDefaults(t *testing.T) {
	svc, _, _ := newJobService()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), &models.CreateJobRequest{
			Title: "Servis", ClientName: "Budi",
		}, 1)
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestGetReturnsNotFound(t *testing.T) {
	svc, _, _ := newJobService()
	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateTrackingCodeAlphabet(t *testing.T) {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	for i := 0; i < 50; i++ {
		code, err := generateTrackingCode()
		require.NoError(t, err)
		require.Len(t, code, 10)
		for _, c := range strings.TrimPrefix(code, "TRK-") {
			assert.Contains(t, alphabet, string(c))
		}
	}
}
