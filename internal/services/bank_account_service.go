package services

import (
	"context"
	"strings"

	"tracker-backend/internal/models"
)

// BankAccountRepository is satisfied by *repositories.BankAccountRepository.
// Create, Update and SoftDelete maintain the single-primary invariant
// transactionally at the storage layer.
type BankAccountRepository interface {
	Create(ctx context.Context, a *models.BankAccount) error
	Get(ctx context.Context, id int) (*models.BankAccount, error)
	Update(ctx context.Context, a *models.BankAccount) error
	SoftDelete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.BankAccount, error)
}

type BankAccountService struct {
	Repo BankAccountRepository
}

func NewBankAccountService(repo BankAccountRepository) *BankAccountService {
	return &BankAccountService{Repo: repo}
}

func validateBankAccountRequest(req *models.BankAccountRequest) error {
	if strings.TrimSpace(req.BankName) == "" {
		return ValidationError("nama bank wajib diisi")
	}
	if strings.TrimSpace(req.AccountNumber) == "" {
		return ValidationError("nomor rekening wajib diisi")
	}
	if strings.TrimSpace(req.AccountHolder) == "" {
		return ValidationError("nama pemilik rekening wajib diisi")
	}
	if req.AccountType != "" && !models.ValidAccountType(req.AccountType) {
		return ValidationError("jenis rekening tidak valid")
	}
	return nil
}

func (s *BankAccountService) Create(ctx context.Context, req *models.BankAccountRequest) (*models.BankAccount, error) {
	if err := validateBankAccountRequest(req); err != nil {
		return nil, err
	}

	accountType := req.AccountType
	if accountType == "" {
		accountType = models.AccountTypeChecking
	}

	account := &models.BankAccount{
		BankName:      strings.TrimSpace(req.BankName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountHolder: strings.TrimSpace(req.AccountHolder),
		AccountType:   accountType,
		IsPrimary:     req.IsPrimary,
		Notes:         req.Notes,
	}

	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *BankAccountService) Get(ctx context.Context, id int) (*models.BankAccount, error) {
	account, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return account, nil
}

func (s *BankAccountService) Update(ctx context.Context, id int, req *models.BankAccountRequest) (*models.BankAccount, error) {
	if err := validateBankAccountRequest(req); err != nil {
		return nil, err
	}

	account, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	account.BankName = strings.TrimSpace(req.BankName)
	account.AccountNumber = strings.TrimSpace(req.AccountNumber)
	account.AccountHolder = strings.TrimSpace(req.AccountHolder)
	if req.AccountType != "" {
		account.AccountType = req.AccountType
	}
	account.IsPrimary = req.IsPrimary
	account.Notes = req.Notes

	if err := s.Repo.Update(ctx, account); err != nil {
		return nil, mapNotFound(err)
	}
	return account, nil
}

// SoftDelete deactivates an account; the repository promotes the oldest
// remaining active account when the deleted one was primary.
func (s *BankAccountService) SoftDelete(ctx context.Context, id int) error {
	return mapNotFound(s.Repo.SoftDelete(ctx, id))
}

func (s *BankAccountService) List(ctx context.Context) ([]*models.BankAccount, error) {
	return s.Repo.List(ctx)
}
