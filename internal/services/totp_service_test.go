package services

import (
	"context"
	"testing"
	"time"

	"tracker-backend/internal/models"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTOTPUser(t *testing.T) (*TOTPService, *fakeUserRepo, *models.User) {
	t.Helper()
	repo := newFakeUserRepo()
	user := &models.User{Username: "budi", Email: "budi@example.com", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), user))
	return NewTOTPService(repo), repo, user
}

func TestGenerateSetupStoresSecretDisabled(t *testing.T) {
	svc, repo, user := setupTOTPUser(t)

	setup, err := svc.GenerateSetup(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.Contains(t, setup.OTPAuthURL, "otpauth://totp/")

	stored := repo.users[user.ID]
	assert.Equal(t, setup.Secret, stored.TOTPSecret)
	assert.False(t, stored.TOTPEnabled)
}

func TestVerifyAndEnableChecksCode(t *testing.T) {
	svc, repo, user := setupTOTPUser(t)
	ctx := context.Background()

	setup, err := svc.GenerateSetup(ctx, user)
	require.NoError(t, err)

	err = svc.VerifyAndEnable(ctx, user.ID, "000000")
	assert.ErrorIs(t, err, ErrInvalidTOTPCode)
	assert.False(t, repo.users[user.ID].TOTPEnabled)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.VerifyAndEnable(ctx, user.ID, code))
	assert.True(t, repo.users[user.ID].TOTPEnabled)
}

func TestVerifyWithoutSecret(t *testing.T) {
	svc, _, user := setupTOTPUser(t)

	err := svc.VerifyAndEnable(context.Background(), user.ID, "123456")
	assert.ErrorIs(t, err, ErrNoTOTPSecret)
}

func TestValidateCodeRequiresEnabled2FA(t *testing.T) {
	svc, repo, user := setupTOTPUser(t)
	ctx := context.Background()

	setup, err := svc.GenerateSetup(ctx, user)
	require.NoError(t, err)

	// Secret stored but not yet verified: login step 2 must refuse.
	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	_, err = svc.ValidateCode(ctx, user.ID, code)
	assert.ErrorIs(t, err, ErrNoTOTPSecret)

	require.NoError(t, repo.EnableTOTP(ctx, user.ID))

	validated, err := svc.ValidateCode(ctx, user.ID, code)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)

	_, err = svc.ValidateCode(ctx, user.ID, "000000")
	assert.ErrorIs(t, err, ErrInvalidTOTPCode)
}

func TestDisableClearsSecret(t *testing.T) {
	svc, repo, user := setupTOTPUser(t)
	ctx := context.Background()

	_, err := svc.GenerateSetup(ctx, user)
	require.NoError(t, err)
	require.NoError(t, repo.EnableTOTP(ctx, user.ID))

	require.NoError(t, svc.Disable(ctx, user.ID))
	assert.Empty(t, repo.users[user.ID].TOTPSecret)
	assert.False(t, repo.users[user.ID].TOTPEnabled)
}
