package services

import (
	"context"

	"tracker-backend/internal/models"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "JobTracker"

// TOTPUserRepository is the slice of the user repository the 2FA flow needs.
type TOTPUserRepository interface {
	Get(ctx context.Context, id int) (*models.User, error)
	SetTOTPSecret(ctx context.Context, id int, secret string) error
	EnableTOTP(ctx context.Context, id int) error
	DisableTOTP(ctx context.Context, id int) error
}

type TOTPService struct {
	Users TOTPUserRepository
}

func NewTOTPService(users TOTPUserRepository) *TOTPService {
	return &TOTPService{Users: users}
}

// GenerateSetup creates a new TOTP secret for a user. The secret is stored
// but 2FA stays disabled until the first code is verified.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Users.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		OTPAuthURL:  key.URL(),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable verifies a TOTP code against the stored secret and
// enables 2FA for the user.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return mapNotFound(err)
	}
	if user.TOTPSecret == "" {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.Users.EnableTOTP(ctx, userID)
}

// ValidateCode checks a login-time TOTP code for a 2FA-enabled user.
func (s *TOTPService) ValidateCode(ctx context.Context, userID int, code string) (*models.User, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return nil, ErrNoTOTPSecret
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return nil, ErrInvalidTOTPCode
	}
	return user, nil
}

// Disable turns 2FA off and discards the secret.
func (s *TOTPService) Disable(ctx context.Context, userID int) error {
	return s.Users.DisableTOTP(ctx, userID)
}
