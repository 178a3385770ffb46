package repositories

import (
	"context"
	"fmt"
	"time"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, tracking_code, title, description, client_name, client_email, client_phone,
	status, priority, estimated_completion_date, actual_completion_date, budget, notes,
	created_by, created_at, updated_at`

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

func scanJob(row pgx.Row) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.TrackingCode, &j.Title, &j.Description, &j.ClientName,
		&j.ClientEmail, &j.ClientPhone, &j.Status, &j.Priority,
		&j.EstimatedCompletionDate, &j.ActualCompletionDate, &j.Budget, &j.Notes,
		&j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO jobs(tracking_code, title, description, client_name, client_email, client_phone,
			status, priority, estimated_completion_date, budget, notes, created_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		j.TrackingCode, j.Title, j.Description, j.ClientName, j.ClientEmail, j.ClientPhone,
		j.Status, j.Priority, j.EstimatedCompletionDate, j.Budget, j.Notes, j.CreatedBy,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepository) Get(ctx context.Context, id int) (*models.Job, error) {
	return scanJob(r.DB.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// GetByTrackingCode looks a job up by its public code, case-insensitively.
func (r *JobRepository) GetByTrackingCode(ctx context.Context, code string) (*models.Job, error) {
	return scanJob(r.DB.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE UPPER(tracking_code) = UPPER($1)`, code))
}

func (r *JobRepository) TrackingCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE UPPER(tracking_code) = UPPER($1))`, code).Scan(&exists)
	return exists, err
}

// List returns a page of jobs plus the total count for the filter.
// Search matches title, client name and tracking code case-insensitively.
func (r *JobRepository) List(ctx context.Context, f models.JobFilter) ([]*models.Job, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR client_name ILIKE $%d OR tracking_code ILIKE $%d)", n, n, n)
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	var total int
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := "SELECT " + jobColumns + " FROM jobs" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// Update replaces the editable fields. The tracking code is immutable.
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE jobs SET title = $1, description = $2, client_name = $3, client_email = $4,
			client_phone = $5, status = $6, priority = $7, estimated_completion_date = $8,
			actual_completion_date = $9, budget = $10, notes = $11, updated_at = NOW()
		 WHERE id = $12`,
		j.Title, j.Description, j.ClientName, j.ClientEmail, j.ClientPhone,
		j.Status, j.Priority, j.EstimatedCompletionDate, j.ActualCompletionDate,
		j.Budget, j.Notes, j.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus mutates only the status and estimated date (status-update mode).
func (r *JobRepository) UpdateStatus(ctx context.Context, id int, status string, estimatedDate *time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE jobs SET status = $1, estimated_completion_date = $2, updated_at = NOW() WHERE id = $3`,
		status, estimatedDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete hard-deletes a job. History and documents go with it via
// ON DELETE CASCADE at the storage layer.
func (r *JobRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListOptions returns non-cancelled jobs for linking todos.
func (r *JobRepository) ListOptions(ctx context.Context) ([]*models.JobOption, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, tracking_code, title, status FROM jobs
		 WHERE status != $1 ORDER BY created_at DESC`, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*models.JobOption
	for rows.Next() {
		o := &models.JobOption{}
		if err := rows.Scan(&o.ID, &o.TrackingCode, &o.Title, &o.Status); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
