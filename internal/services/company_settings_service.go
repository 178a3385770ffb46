package services

import (
	"context"
	"errors"
	"strings"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// CompanySettingsRepository is satisfied by *repositories.CompanySettingsRepository.
type CompanySettingsRepository interface {
	Get(ctx context.Context) (*models.CompanySettings, error)
	Upsert(ctx context.Context, s *models.CompanySettings) error
}

type CompanySettingsService struct {
	Repo CompanySettingsRepository
}

func NewCompanySettingsService(repo CompanySettingsRepository) *CompanySettingsService {
	return &CompanySettingsService{Repo: repo}
}

// GetOrDefault returns the singleton settings row, or the fixed defaults
// when it has never been written.
func (s *CompanySettingsService) GetOrDefault(ctx context.Context) (*models.CompanySettings, error) {
	settings, err := s.Repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultCompanySettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// Save creates the row on first use, updates it thereafter.
func (s *CompanySettingsService) Save(ctx context.Context, req *models.CompanySettingsRequest) (*models.CompanySettings, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, ValidationError("nama perusahaan wajib diisi")
	}

	settings := &models.CompanySettings{
		CompanyName:       strings.TrimSpace(req.CompanyName),
		Address:           req.Address,
		Phone:             req.Phone,
		Email:             req.Email,
		Website:           req.Website,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountHolder: req.BankAccountHolder,
		TaxNumber:         req.TaxNumber,
		LicenseNumber:     req.LicenseNumber,
	}

	if err := s.Repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
