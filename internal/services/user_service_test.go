package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/config"
	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ToggleActive(ctx context.Context, id int) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	u.IsActive = !u.IsActive
	return u.IsActive, nil
}

func (f *fakeUserRepo) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.TOTPSecret = secret
	u.TOTPEnabled = false
	return nil
}

func (f *fakeUserRepo) EnableTOTP(ctx context.Context, id int) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.TOTPEnabled = true
	return nil
}

func (f *fakeUserRepo) DisableTOTP(ctx context.Context, id int) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.TOTPSecret = ""
	u.TOTPEnabled = false
	return nil
}

func testJWTManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "tracker-backend-test"
	return auth.NewJWTManager(cfg)
}

func newUserService() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, testJWTManager()), repo
}

func registerUser(t *testing.T, svc *UserService, username string) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "rahasia123",
		FullName: "Test User",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesAdminWithSession(t *testing.T) {
	svc, _ := newUserService()

	resp := registerUser(t, svc, "budi")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	// The stored hash never equals the raw password.
	assert.NotEqual(t, "rahasia123", resp.User.PasswordHash)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newUserService()
	registerUser(t, svc, "budi")

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "budi", Email: "other@example.com", Password: "x",
	})
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Username: "other", Email: "budi@example.com", Password: "x",
	})
	assert.Error(t, err)
}

func TestLoginWrongCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService()
	registerUser(t, svc, "budi")

	_, errBadPass := svc.Login(context.Background(), &models.LoginRequest{
		Username: "budi", Password: "salah",
	})
	_, errNoUser := svc.Login(context.Background(), &models.LoginRequest{
		Username: "siapa", Password: "salah",
	})

	require.Error(t, errBadPass)
	require.Error(t, errNoUser)
	assert.Equal(t, errBadPass.Error(), errNoUser.Error())
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, repo := newUserService()
	resp := registerUser(t, svc, "budi")

	repo.users[resp.User.ID].IsActive = false

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "budi", Password: "rahasia123",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "dinonaktifkan"))
}

func TestLoginWithTOTPReturnsTempToken(t *testing.T) {
	svc, repo := newUserService()
	resp := registerUser(t, svc, "budi")

	repo.users[resp.User.ID].TOTPEnabled = true

	login, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "budi", Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.True(t, login.RequiresTOTP)
	assert.NotEmpty(t, login.TempToken)
	assert.Empty(t, login.Token)
}

func TestDeleteAndToggleGuardSelfAction(t *testing.T) {
	svc, _ := newUserService()
	a := registerUser(t, svc, "budi")
	b := registerUser(t, svc, "sari")

	err := svc.DeleteUser(context.Background(), a.User.ID, a.User.ID)
	assert.ErrorIs(t, err, ErrSelfAction)

	_, err = svc.ToggleActive(context.Background(), a.User.ID, a.User.ID)
	assert.ErrorIs(t, err, ErrSelfAction)

	active, err := svc.ToggleActive(context.Background(), b.User.ID, a.User.ID)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, svc.DeleteUser(context.Background(), b.User.ID, a.User.ID))
	_, err = svc.Get(context.Background(), b.User.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	svc, repo := newUserService()
	resp := registerUser(t, svc, "budi")
	oldHash := repo.users[resp.User.ID].PasswordHash

	_, err := svc.UpdateUser(context.Background(), resp.User.ID, &models.UpdateUserRequest{
		FullName: "Budi Santoso",
	})
	require.NoError(t, err)
	assert.Equal(t, oldHash, repo.users[resp.User.ID].PasswordHash)

	_, err = svc.UpdateUser(context.Background(), resp.User.ID, &models.UpdateUserRequest{
		Password: "password-baru",
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, repo.users[resp.User.ID].PasswordHash)
}
