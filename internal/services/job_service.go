package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tracker-backend/internal/models"
)

const (
	trackingCodePrefix   = "TRK-"
	trackingCodeAttempts = 5

	defaultPageSize = 10
	maxPageSize     = 100
)

// JobRepository is the storage contract the job service needs.
// Satisfied by *repositories.JobRepository.
type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	Get(ctx context.Context, id int) (*models.Job, error)
	GetByTrackingCode(ctx context.Context, code string) (*models.Job, error)
	TrackingCodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, f models.JobFilter) ([]*models.Job, int, error)
	Update(ctx context.Context, j *models.Job) error
	UpdateStatus(ctx context.Context, id int, status string, estimatedDate *time.Time) error
	Delete(ctx context.Context, id int) error
	ListOptions(ctx context.Context) ([]*models.JobOption, error)
}

// HistoryRepository is the append-only audit contract.
// Satisfied by *repositories.JobHistoryRepository.
type HistoryRepository interface {
	Append(ctx context.Context, h *models.JobHistory) error
	ListByJob(ctx context.Context, jobID int) ([]*models.JobHistory, error)
}

type JobService struct {
	Repo    JobRepository
	History HistoryRepository
}

func NewJobService(repo JobRepository, history HistoryRepository) *JobService {
	return &JobService{Repo: repo, History: history}
}

// generateTrackingCode returns a new public code like "TRK-7KQ2XM".
// Crockford-ish base32 alphabet without easily confused characters.
func generateTrackingCode() (string, error) {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return trackingCodePrefix + string(buf), nil
}

// Create validates the request, assigns a unique tracking code and appends
// the creation history row ("Pekerjaan dibuat"). The history append is
// best-effort: a failure is logged, never surfaced, so the created job is
// returned either way.
func (s *JobService) Create(ctx context.Context, req *models.CreateJobRequest, actorID int) (*models.Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ValidationError("judul pekerjaan wajib diisi")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, ValidationError("nama klien wajib diisi")
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidJobStatus(status) {
		return nil, ValidationError("status pekerjaan tidak valid")
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidJobPriority(priority) {
		return nil, ValidationError("prioritas pekerjaan tidak valid")
	}

	code, err := s.uniqueTrackingCode(ctx)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		TrackingCode:            code,
		Title:                   strings.TrimSpace(req.Title),
		Description:             req.Description,
		ClientName:              strings.TrimSpace(req.ClientName),
		ClientEmail:             req.ClientEmail,
		ClientPhone:             req.ClientPhone,
		Status:                  status,
		Priority:                priority,
		EstimatedCompletionDate: req.EstimatedCompletionDate,
		Budget:                  req.Budget,
		Notes:                   req.Notes,
		CreatedBy:               &actorID,
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, &models.JobHistory{
		JobID:                   job.ID,
		Status:                  job.Status,
		EstimatedCompletionDate: job.EstimatedCompletionDate,
		Notes:                   "Pekerjaan dibuat",
		CreatedBy:               &actorID,
	})

	return job, nil
}

func (s *JobService) uniqueTrackingCode(ctx context.Context) (string, error) {
	for i := 0; i < trackingCodeAttempts; i++ {
		code, err := generateTrackingCode()
		if err != nil {
			return "", err
		}
		exists, err := s.Repo.TrackingCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("gagal membuat kode tracking unik")
}

// Get returns a job with its full history, newest first.
func (s *JobService) Get(ctx context.Context, id int) (*models.JobWithHistory, error) {
	job, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	history, err := s.History.ListByJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.JobWithHistory{Job: *job, History: history}, nil
}

// List applies filters and pagination. Defaults: page 1, 10 per page,
// newest-first by creation time.
func (s *JobService) List(ctx context.Context, f models.JobFilter) (*models.JobListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}

	jobs, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &models.JobListResponse{
		Jobs:       jobs,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: (total + f.Limit - 1) / f.Limit,
	}, nil
}

// transitionNote builds the human-readable system note for a status-update.
func transitionNote(old *models.Job, newStatus string, newDate *time.Time) string {
	if old.Status != newStatus {
		return fmt.Sprintf("Status diubah dari %s ke %s",
			models.StatusLabel(old.Status), models.StatusLabel(newStatus))
	}
	if !sameDate(old.EstimatedCompletionDate, newDate) {
		return "Estimasi tanggal selesai diperbarui"
	}
	return "Pekerjaan diperbarui"
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Update handles both update modes. A non-nil StatusNote selects
// status-update mode: the note is mandatory, only status and estimated date
// change, and a history row is appended (best-effort). A nil StatusNote
// selects full-update mode, which replaces the editable fields and appends
// no history row.
func (s *JobService) Update(ctx context.Context, id int, req *models.UpdateJobRequest, actorID int) (*models.Job, error) {
	job, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.StatusNote != nil {
		return s.updateStatus(ctx, job, req, actorID)
	}
	return s.updateFull(ctx, job, req)
}

func (s *JobService) updateStatus(ctx context.Context, job *models.Job, req *models.UpdateJobRequest, actorID int) (*models.Job, error) {
	statusNote := strings.TrimSpace(*req.StatusNote)
	if statusNote == "" {
		return nil, ValidationError("catatan status wajib diisi")
	}

	newStatus := req.Status
	if newStatus == "" {
		newStatus = job.Status
	}
	if !models.ValidJobStatus(newStatus) {
		return nil, ValidationError("status pekerjaan tidak valid")
	}

	newDate := req.EstimatedCompletionDate
	if newDate == nil {
		newDate = job.EstimatedCompletionDate
	}

	note := transitionNote(job, newStatus, newDate)

	if err := s.Repo.UpdateStatus(ctx, job.ID, newStatus, newDate); err != nil {
		return nil, mapNotFound(err)
	}

	// The audit append must never roll back the committed status change.
	s.appendHistory(ctx, &models.JobHistory{
		JobID:                   job.ID,
		Status:                  newStatus,
		EstimatedCompletionDate: newDate,
		Notes:                   note,
		StatusNote:              statusNote,
		CreatedBy:               &actorID,
	})

	job.Status = newStatus
	job.EstimatedCompletionDate = newDate
	return job, nil
}

func (s *JobService) updateFull(ctx context.Context, job *models.Job, req *models.UpdateJobRequest) (*models.Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ValidationError("judul pekerjaan wajib diisi")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, ValidationError("nama klien wajib diisi")
	}
	if req.Status != "" && !models.ValidJobStatus(req.Status) {
		return nil, ValidationError("status pekerjaan tidak valid")
	}
	if req.Priority != "" && !models.ValidJobPriority(req.Priority) {
		return nil, ValidationError("prioritas pekerjaan tidak valid")
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Description = req.Description
	job.ClientName = strings.TrimSpace(req.ClientName)
	job.ClientEmail = req.ClientEmail
	job.ClientPhone = req.ClientPhone
	if req.Status != "" {
		job.Status = req.Status
	}
	if req.Priority != "" {
		job.Priority = req.Priority
	}
	job.EstimatedCompletionDate = req.EstimatedCompletionDate
	job.Budget = req.Budget
	job.Notes = req.Notes

	if err := s.Repo.Update(ctx, job); err != nil {
		return nil, mapNotFound(err)
	}
	return job, nil
}

// Delete hard-deletes a job; history and documents cascade at the storage layer.
func (s *JobService) Delete(ctx context.Context, id int) error {
	return mapNotFound(s.Repo.Delete(ctx, id))
}

// ListHistory returns the audit trail for one job, newest first.
func (s *JobService) ListHistory(ctx context.Context, jobID int) ([]*models.JobHistory, error) {
	if _, err := s.Repo.Get(ctx, jobID); err != nil {
		return nil, mapNotFound(err)
	}
	return s.History.ListByJob(ctx, jobID)
}

// AppendHistory records a manual audit entry for a job.
func (s *JobService) AppendHistory(ctx context.Context, jobID int, statusNote string, actorID int) (*models.JobHistory, error) {
	job, err := s.Repo.Get(ctx, jobID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if strings.TrimSpace(statusNote) == "" {
		return nil, ValidationError("catatan status wajib diisi")
	}

	h := &models.JobHistory{
		JobID:                   job.ID,
		Status:                  job.Status,
		EstimatedCompletionDate: job.EstimatedCompletionDate,
		StatusNote:              strings.TrimSpace(statusNote),
		CreatedBy:               &actorID,
	}
	if err := s.History.Append(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ListOptions returns jobs eligible for todo linking.
func (s *JobService) ListOptions(ctx context.Context) ([]*models.JobOption, error) {
	return s.Repo.ListOptions(ctx)
}

func (s *JobService) appendHistory(ctx context.Context, h *models.JobHistory) {
	if err := s.History.Append(ctx, h); err != nil {
		// Known risk: a failed append is silent audit loss, accepted so the
		// primary mutation still reports success.
		log.Printf("[JobHistory] append failed for job %d: %v", h.JobID, err)
	}
}
