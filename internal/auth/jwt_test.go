package auth

import (
	"testing"

	"tracker-backend/internal/config"
	"tracker-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 168
	cfg.JWT.Issuer = "tracker-backend-test"
	return cfg
}

func testUser() *models.User {
	return &models.User{
		ID:       1,
		Username: "budi",
		Email:    "budi@example.com",
		Role:     models.RoleAdmin,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(testConfig("secret-a"))

	token, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "tracker-backend-test", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testConfig("secret-a")).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewJWTManager(testConfig("secret-b")).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := NewJWTManager(testConfig("secret-a"))
	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	m := NewJWTManager(testConfig("secret-a"))

	temp, err := m.GenerateTempToken(testUser())
	require.NoError(t, err)

	claims, err := m.ValidateTempToken(temp)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "2fa_pending", claims.Type)

	// A full session token must not pass temp validation.
	session, err := m.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = m.ValidateTempToken(session)
	assert.Error(t, err)
}

func TestSessionMaxAge(t *testing.T) {
	m := NewJWTManager(testConfig("secret-a"))
	assert.Equal(t, 168*3600, m.SessionMaxAge())
}
