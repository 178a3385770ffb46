package services

import (
	"context"
	"testing"
	"time"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	settings *models.CompanySettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*models.CompanySettings, error) {
	if f.settings == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s *models.CompanySettings) error {
	if f.settings == nil {
		s.ID = 1
		s.CreatedAt = time.Now()
	} else {
		s.ID = f.settings.ID
		s.CreatedAt = f.settings.CreatedAt
	}
	s.UpdatedAt = time.Now()
	copied := *s
	f.settings = &copied
	return nil
}

func TestGetOrDefaultFallsBack(t *testing.T) {
	svc := NewCompanySettingsService(&fakeSettingsRepo{})

	settings, err := svc.GetOrDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nama Perusahaan", settings.CompanyName)
	assert.Zero(t, settings.ID)
}

func TestSaveIsSingleton(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewCompanySettingsService(repo)
	ctx := context.Background()

	first, err := svc.Save(ctx, &models.CompanySettingsRequest{CompanyName: "PT Maju Jaya"})
	require.NoError(t, err)

	second, err := svc.Save(ctx, &models.CompanySettingsRequest{CompanyName: "PT Maju Jaya Abadi"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	stored, err := svc.GetOrDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PT Maju Jaya Abadi", stored.CompanyName)
}

func TestSaveRequiresCompanyName(t *testing.T) {
	svc := NewCompanySettingsService(&fakeSettingsRepo{})

	_, err := svc.Save(context.Background(), &models.CompanySettingsRequest{CompanyName: "  "})
	assert.Error(t, err)
}
