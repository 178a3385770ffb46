package repositories

import (
	"context"
	"fmt"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `d.id, d.job_id, d.document_number, d.document_type, d.payment_type,
	d.amount, d.description, d.due_date, d.payment_method, d.bank_name, d.bank_account_number,
	d.bank_account_holder, d.notes, d.status, d.created_at, d.updated_at`

type DocumentRepository struct {
	DB *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func scanDocumentWithJob(row pgx.Row) (*models.DocumentWithJob, error) {
	d := &models.DocumentWithJob{}
	err := row.Scan(&d.ID, &d.JobID, &d.DocumentNumber, &d.DocumentType, &d.PaymentType,
		&d.Amount, &d.Description, &d.DueDate, &d.PaymentMethod, &d.BankName,
		&d.BankAccountNumber, &d.BankAccountHolder, &d.Notes, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.JobTitle, &d.TrackingCode, &d.ClientName)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DocumentRepository) Create(ctx context.Context, d *models.Document) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO documents(job_id, document_number, document_type, payment_type, amount,
			description, due_date, payment_method, bank_name, bank_account_number,
			bank_account_holder, notes, status)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		d.JobID, d.DocumentNumber, d.DocumentType, d.PaymentType, d.Amount,
		d.Description, d.DueDate, d.PaymentMethod, d.BankName, d.BankAccountNumber,
		d.BankAccountHolder, d.Notes, d.Status,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// Get returns a document joined with its job's display fields.
func (r *DocumentRepository) Get(ctx context.Context, id int) (*models.DocumentWithJob, error) {
	return scanDocumentWithJob(r.DB.QueryRow(ctx,
		`SELECT `+documentColumns+`, j.title, j.tracking_code, j.client_name
		 FROM documents d
		 JOIN jobs j ON d.job_id = j.id
		 WHERE d.id = $1`, id))
}

// List returns a page of documents plus the total count for the filter.
func (r *DocumentRepository) List(ctx context.Context, f models.DocumentFilter) ([]*models.DocumentWithJob, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (d.description ILIKE $%d OR d.document_number ILIKE $%d OR j.title ILIKE $%d OR j.client_name ILIKE $%d)", n, n, n, n)
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(" AND d.document_type = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND d.status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM documents d JOIN jobs j ON d.job_id = j.id" + where
	if err := r.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := "SELECT " + documentColumns + ", j.title, j.tracking_code, j.client_name" +
		" FROM documents d JOIN jobs j ON d.job_id = j.id" + where +
		fmt.Sprintf(" ORDER BY d.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var documents []*models.DocumentWithJob
	for rows.Next() {
		d, err := scanDocumentWithJob(rows)
		if err != nil {
			return nil, 0, err
		}
		documents = append(documents, d)
	}
	return documents, total, rows.Err()
}

func (r *DocumentRepository) Update(ctx context.Context, d *models.Document) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE documents SET payment_type = $1, amount = $2, description = $3, due_date = $4,
			payment_method = $5, bank_name = $6, bank_account_number = $7,
			bank_account_holder = $8, notes = $9, status = $10, updated_at = NOW()
		 WHERE id = $11`,
		d.PaymentType, d.Amount, d.Description, d.DueDate, d.PaymentMethod,
		d.BankName, d.BankAccountNumber, d.BankAccountHolder, d.Notes, d.Status, d.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
