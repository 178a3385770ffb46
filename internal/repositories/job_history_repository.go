package repositories

import (
	"context"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// JobHistoryRepository is append-only: no update or delete statements exist
// here. Rows disappear only through the job's ON DELETE CASCADE.
type JobHistoryRepository struct {
	DB *pgxpool.Pool
}

func NewJobHistoryRepository(db *pgxpool.Pool) *JobHistoryRepository {
	return &JobHistoryRepository{DB: db}
}

func (r *JobHistoryRepository) Append(ctx context.Context, h *models.JobHistory) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO job_history(job_id, status, estimated_completion_date, notes, status_note, created_by)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		h.JobID, h.Status, h.EstimatedCompletionDate, h.Notes, h.StatusNote, h.CreatedBy,
	).Scan(&h.ID, &h.CreatedAt)
}

// ListByJob returns the full audit trail, newest first, with the acting
// user's name joined in for display.
func (r *JobHistoryRepository) ListByJob(ctx context.Context, jobID int) ([]*models.JobHistory, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT h.id, h.job_id, h.status, h.estimated_completion_date, h.notes, h.status_note,
		        h.created_by, COALESCE(u.full_name, '') AS created_by_name, h.created_at
		 FROM job_history h
		 LEFT JOIN users u ON h.created_by = u.id
		 WHERE h.job_id = $1
		 ORDER BY h.created_at DESC, h.id DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*models.JobHistory
	for rows.Next() {
		h := &models.JobHistory{}
		err := rows.Scan(&h.ID, &h.JobID, &h.Status, &h.EstimatedCompletionDate,
			&h.Notes, &h.StatusNote, &h.CreatedBy, &h.CreatedByName, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
