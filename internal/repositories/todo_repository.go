package repositories

import (
	"context"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id, title, description, completed, priority, due_date, job_id, created_by, created_at, updated_at`

// TodoRepository scopes every read and mutation to the creating user.
type TodoRepository struct {
	DB *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{DB: db}
}

func scanTodo(row pgx.Row) (*models.Todo, error) {
	t := &models.Todo{}
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority,
		&t.DueDate, &t.JobID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO todos(title, description, completed, priority, due_date, job_id, created_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.Title, t.Description, t.Completed, t.Priority, t.DueDate, t.JobID, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) Get(ctx context.Context, id, userID int) (*models.Todo, error) {
	return scanTodo(r.DB.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND created_by = $2`, id, userID))
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int) ([]*models.Todo, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE created_by = $1
		 ORDER BY completed, due_date NULLS LAST, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, t *models.Todo) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE todos SET title = $1, description = $2, completed = $3, priority = $4,
			due_date = $5, job_id = $6, updated_at = NOW()
		 WHERE id = $7 AND created_by = $8`,
		t.Title, t.Description, t.Completed, t.Priority, t.DueDate, t.JobID, t.ID, t.CreatedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, userID int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND created_by = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
