package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job_board/internal/model"
	"job_board/internal/repository"
	"job_board/internal/utils"

	"go.uber.org/zap"
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, name, phone, password string) (*model.User, string, error)
	Login(ctx context.Context, phone, password string) (*model.User, string, error)
	AdminLogin(ctx context.Context, login, password string) (*model.Admin, string, error)
	Verify(tokenString string, requireAdmin bool) (*model.Identity, error)
	ProvisionAdmin(ctx context.Context, login, password string) (*model.Admin, error)
}

type authService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	jwtUtil   *utils.JWTUtil
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. logger may be nil.
func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, jwtUtil *utils.JWTUtil, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		jwtUtil:   jwtUtil,
		logger:    logger,
	}
}

// Register creates a new user account and returns a token for it
func (s *authService) Register(ctx context.Context, name, phone, password string) (*model.User, string, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: hashedPassword,
	}

	// The unique index on phone_number decides; there is no racy pre-check.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Name, "")
	if err != nil {
		s.logger.Error("user created, but failed to generate token", zap.Int("user_id", user.ID), zap.Error(err))
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, phone, password string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, "", fmt.Errorf("%w: phone number and password required", ErrValidation)
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by phone: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Name, "")
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// AdminLogin authenticates a moderator; the token carries the admin role
func (s *authService) AdminLogin(ctx context.Context, login, password string) (*model.Admin, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	admin, err := s.adminRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, "", fmt.Errorf("error finding admin by login: %w", err)
	}
	if admin == nil || !utils.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(admin.ID, admin.Login, model.RoleAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return admin, token, nil
}

// Verify checks a bearer token and returns the identity it carries.
// It has no side effects; validity depends only on signature and expiry.
func (s *authService) Verify(tokenString string, requireAdmin bool) (*model.Identity, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.jwtUtil.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	identity := &model.Identity{ID: claims.UserID, Name: claims.Name, Role: model.RoleUser}
	if claims.Role == model.RoleAdmin {
		identity.Role = model.RoleAdmin
	}
	if requireAdmin && !identity.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return identity, nil
}

// ProvisionAdmin creates a moderator account. It is not reachable over HTTP.
func (s *authService) ProvisionAdmin(ctx context.Context, login, password string) (*model.Admin, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{Login: login, PasswordHash: hashedPassword}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAdminAlreadyExists
		}
		return nil, fmt.Errorf("failed to create admin in repository: %w", err)
	}
	s.logger.Info("admin provisioned", zap.String("login", admin.Login), zap.Int("admin_id", admin.ID))
	return admin, nil
}
