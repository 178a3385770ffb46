package repositories

import (
	"context"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `id, bank_name, account_number, account_holder, account_type,
	is_primary, is_active, notes, created_at, updated_at`

type BankAccountRepository struct {
	DB *pgxpool.Pool
}

func NewBankAccountRepository(db *pgxpool.Pool) *BankAccountRepository {
	return &BankAccountRepository{DB: db}
}

func scanBankAccount(row pgx.Row) (*models.BankAccount, error) {
	a := &models.BankAccount{}
	err := row.Scan(&a.ID, &a.BankName, &a.AccountNumber, &a.AccountHolder, &a.AccountType,
		&a.IsPrimary, &a.IsActive, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ensureActivePrimary promotes the oldest active account when no active
// primary exists. Run inside every mutating transaction so the invariant
// "exactly one primary while any active account exists" holds on commit.
func ensureActivePrimary(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`UPDATE bank_accounts SET is_primary = TRUE, updated_at = NOW()
		 WHERE id = (SELECT id FROM bank_accounts WHERE is_active = TRUE ORDER BY created_at, id LIMIT 1)
		   AND NOT EXISTS (SELECT 1 FROM bank_accounts WHERE is_active = TRUE AND is_primary = TRUE)`)
	return err
}

// Create inserts an account. When the new account is primary, clearing the
// old primary and inserting run in one transaction so no reader ever sees
// two primaries. The first active account becomes primary regardless of the
// requested flag.
func (r *BankAccountRepository) Create(ctx context.Context, a *models.BankAccount) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if a.IsPrimary {
		if _, err := tx.Exec(ctx,
			`UPDATE bank_accounts SET is_primary = FALSE, updated_at = NOW() WHERE is_primary = TRUE`); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bank_accounts(bank_name, account_number, account_holder, account_type, is_primary, notes)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, is_active, created_at, updated_at`,
		a.BankName, a.AccountNumber, a.AccountHolder, a.AccountType, a.IsPrimary, a.Notes,
	).Scan(&a.ID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}

	if err := ensureActivePrimary(ctx, tx); err != nil {
		return err
	}
	if err := tx.QueryRow(ctx,
		`SELECT is_primary FROM bank_accounts WHERE id = $1`, a.ID).Scan(&a.IsPrimary); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *BankAccountRepository) Get(ctx context.Context, id int) (*models.BankAccount, error) {
	return scanBankAccount(r.DB.QueryRow(ctx,
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE id = $1`, id))
}

// Update applies the same primary-exclusivity rule as Create, transactionally.
func (r *BankAccountRepository) Update(ctx context.Context, a *models.BankAccount) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if a.IsPrimary {
		if _, err := tx.Exec(ctx,
			`UPDATE bank_accounts SET is_primary = FALSE, updated_at = NOW()
			 WHERE is_primary = TRUE AND id != $1`, a.ID); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE bank_accounts SET bank_name = $1, account_number = $2, account_holder = $3,
			account_type = $4, is_primary = $5, notes = $6, updated_at = NOW()
		 WHERE id = $7 AND is_active = TRUE`,
		a.BankName, a.AccountNumber, a.AccountHolder, a.AccountType, a.IsPrimary, a.Notes, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	// Demoting the sole primary must not leave zero primaries behind.
	if err := ensureActivePrimary(ctx, tx); err != nil {
		return err
	}
	if err := tx.QueryRow(ctx,
		`SELECT is_primary FROM bank_accounts WHERE id = $1`, a.ID).Scan(&a.IsPrimary); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SoftDelete deactivates an account. If the account was primary, the oldest
// remaining active account (if any) is promoted in the same transaction, so
// an active primary always exists while any active account does.
func (r *BankAccountRepository) SoftDelete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var locked int
	err = tx.QueryRow(ctx,
		`SELECT 1 FROM bank_accounts WHERE id = $1 AND is_active = TRUE FOR UPDATE`,
		id).Scan(&locked)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE bank_accounts SET is_active = FALSE, is_primary = FALSE, updated_at = NOW()
		 WHERE id = $1`, id); err != nil {
		return err
	}

	if err := ensureActivePrimary(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// List returns active accounts, primary first, then by creation order.
func (r *BankAccountRepository) List(ctx context.Context) ([]*models.BankAccount, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+bankAccountColumns+` FROM bank_accounts
		 WHERE is_active = TRUE
		 ORDER BY is_primary DESC, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.BankAccount
	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
