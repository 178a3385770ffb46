package repositories

import (
	"context"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const companySettingsColumns = `id, company_name, address, phone, email, website,
	bank_name, bank_account_number, bank_account_holder, tax_number, license_number,
	created_at, updated_at`

type CompanySettingsRepository struct {
	DB *pgxpool.Pool
}

func NewCompanySettingsRepository(db *pgxpool.Pool) *CompanySettingsRepository {
	return &CompanySettingsRepository{DB: db}
}

// Get returns the singleton settings row. pgx.ErrNoRows means the row has
// never been written; callers fall back to defaults.
func (r *CompanySettingsRepository) Get(ctx context.Context) (*models.CompanySettings, error) {
	s := &models.CompanySettings{}
	err := r.DB.QueryRow(ctx,
		`SELECT `+companySettingsColumns+` FROM company_settings ORDER BY id LIMIT 1`,
	).Scan(&s.ID, &s.CompanyName, &s.Address, &s.Phone, &s.Email, &s.Website,
		&s.BankName, &s.BankAccountNumber, &s.BankAccountHolder, &s.TaxNumber,
		&s.LicenseNumber, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert creates the row on first write and updates it thereafter.
func (r *CompanySettingsRepository) Upsert(ctx context.Context, s *models.CompanySettings) error {
	var existingID int
	err := r.DB.QueryRow(ctx, `SELECT id FROM company_settings ORDER BY id LIMIT 1`).Scan(&existingID)
	if err == nil {
		return r.DB.QueryRow(ctx,
			`UPDATE company_settings SET company_name = $1, address = $2, phone = $3, email = $4,
				website = $5, bank_name = $6, bank_account_number = $7, bank_account_holder = $8,
				tax_number = $9, license_number = $10, updated_at = NOW()
			 WHERE id = $11
			 RETURNING id, created_at, updated_at`,
			s.CompanyName, s.Address, s.Phone, s.Email, s.Website,
			s.BankName, s.BankAccountNumber, s.BankAccountHolder,
			s.TaxNumber, s.LicenseNumber, existingID,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	}

	return r.DB.QueryRow(ctx,
		`INSERT INTO company_settings(company_name, address, phone, email, website,
			bank_name, bank_account_number, bank_account_holder, tax_number, license_number)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		s.CompanyName, s.Address, s.Phone, s.Email, s.Website,
		s.BankName, s.BankAccountNumber, s.BankAccountHolder,
		s.TaxNumber, s.LicenseNumber,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}
