package services

import (
	"context"
	"strings"

	"tracker-backend/internal/models"
)

// TrackingService is the read-only public projection of a job. No
// authentication, client name masked, budget never included.
type TrackingService struct {
	Jobs    JobRepository
	History HistoryRepository
}

func NewTrackingService(jobs JobRepository, history HistoryRepository) *TrackingService {
	return &TrackingService{Jobs: jobs, History: history}
}

// MaskClientName hides the middle of a client name. Names of up to four
// characters keep the first and last character; longer names keep the first
// two and the last one. Everything in between becomes asterisks.
func MaskClientName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	n := len(runes)
	if n <= 1 {
		return string(runes)
	}
	if n <= 4 {
		return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
	}
	return string(runes[:2]) + strings.Repeat("*", n-3) + string(runes[n-1])
}

// TrackByCode resolves a job by its tracking code (case-insensitive) and
// projects it for public display. History entries that carry neither a
// system note nor a status note are hidden, not deleted.
func (s *TrackingService) TrackByCode(ctx context.Context, code string) (*models.PublicJobView, error) {
	job, err := s.Jobs.GetByTrackingCode(ctx, code)
	if err != nil {
		return nil, mapNotFound(err)
	}

	history, err := s.History.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	view := &models.PublicJobView{
		TrackingCode:            job.TrackingCode,
		Title:                   job.Title,
		Description:             job.Description,
		ClientName:              MaskClientName(job.ClientName),
		Status:                  job.Status,
		StatusLabel:             models.StatusLabel(job.Status),
		Priority:                job.Priority,
		EstimatedCompletionDate: job.EstimatedCompletionDate,
		ActualCompletionDate:    job.ActualCompletionDate,
		CreatedAt:               job.CreatedAt,
		UpdatedAt:               job.UpdatedAt,
	}

	for _, h := range history {
		if h.Notes == "" && h.StatusNote == "" {
			continue
		}
		view.History = append(view.History, &models.PublicHistoryView{
			Status:      h.Status,
			StatusLabel: models.StatusLabel(h.Status),
			Notes:       h.Notes,
			StatusNote:  h.StatusNote,
			CreatedAt:   h.CreatedAt,
		})
	}

	return view, nil
}
