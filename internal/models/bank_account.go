package models

import "time"

// Bank account types
const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
	AccountTypeCurrent  = "current"
)

// ValidAccountType reports whether the account type is a known type.
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCurrent:
		return true
	}
	return false
}

// BankAccount is a company bank account. Among active accounts at most one
// carries is_primary; deactivation is a soft delete via is_active.
type BankAccount struct {
	ID            int       `json:"id"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	AccountHolder string    `json:"account_holder"`
	AccountType   string    `json:"account_type"`
	IsPrimary     bool      `json:"is_primary"`
	IsActive      bool      `json:"is_active"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BankAccountRequest struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	AccountType   string `json:"account_type"`
	IsPrimary     bool   `json:"is_primary"`
	Notes         string `json:"notes"`
}
