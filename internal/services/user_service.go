package services

import (
	"context"
	"errors"
	"strings"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/models"
)

// UserRepository is satisfied by *repositories.UserRepository.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int) error
	ToggleActive(ctx context.Context, id int) (bool, error)
}

type UserService struct {
	Repo       UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager}
}

// Register creates a new admin account and returns a session.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ValidationError("username, email dan password wajib diisi")
	}

	if existing, _ := s.Repo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, ValidationError("username sudah digunakan")
	}
	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ValidationError("email sudah terdaftar")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user. Accounts with 2FA enabled get a short-lived
// temp token instead of a session; VerifyTOTPLogin completes the exchange.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username dan password wajib diisi")
	}

	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("username atau password salah")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.New("username atau password salah")
	}

	if !user.IsActive {
		return nil, errors.New("akun dinonaktifkan, hubungi administrator")
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{RequiresTOTP: true, TempToken: tempToken}, nil
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// CreateUser is the admin path; unlike Register it accepts a role.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ValidationError("username, email dan password wajib diisi")
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.ValidRole(role) {
		return nil, ValidationError("role tidak valid")
	}

	if existing, _ := s.Repo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, ValidationError("username sudah digunakan")
	}
	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ValidationError("email sudah terdaftar")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser mutates profile fields; an empty password keeps the old hash.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		if !models.ValidRole(req.Role) {
			return nil, ValidationError("role tidak valid")
		}
		user.Role = req.Role
	}
	if strings.TrimSpace(req.Password) != "" {
		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Acting on one's own account is rejected;
// the actor identity comes from the validated token, never the request body.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID int) error {
	if id == actorID {
		return ErrSelfAction
	}
	return mapNotFound(s.Repo.Delete(ctx, id))
}

// ToggleActive flips the active flag, with the same self-action guard.
func (s *UserService) ToggleActive(ctx context.Context, id, actorID int) (bool, error) {
	if id == actorID {
		return false, ErrSelfAction
	}
	active, err := s.Repo.ToggleActive(ctx, id)
	if err != nil {
		return false, mapNotFound(err)
	}
	return active, nil
}
