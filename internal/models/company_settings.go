package models

import "time"

// CompanySettings is a singleton record (zero or one row). Reads fall back
// to DefaultCompanySettings when the row does not exist yet.
type CompanySettings struct {
	ID                int       `json:"id"`
	CompanyName       string    `json:"company_name"`
	Address           string    `json:"address"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	Website           string    `json:"website"`
	BankName          string    `json:"bank_name"`
	BankAccountNumber string    `json:"bank_account_number"`
	BankAccountHolder string    `json:"bank_account_holder"`
	TaxNumber         string    `json:"tax_number"`
	LicenseNumber     string    `json:"license_number"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CompanySettingsRequest struct {
	CompanyName       string `json:"company_name"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Website           string `json:"website"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountHolder string `json:"bank_account_holder"`
	TaxNumber         string `json:"tax_number"`
	LicenseNumber     string `json:"license_number"`
}

// DefaultCompanySettings returns the fixed fallback used before the
// settings row is first written.
func DefaultCompanySettings() *CompanySettings {
	return &CompanySettings{
		CompanyName: "Nama Perusahaan",
		Address:     "Alamat perusahaan belum diatur",
		Phone:       "-",
		Email:       "-",
	}
}
