// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquafarm-service/internal/domain/user"
	xerrors "aquafarm-service/internal/pkg/errors"
	"aquafarm-service/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

func NewAuthService(userRepo user.Repository, jwtManager *jwt.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a farmer account. The entitlement starts expired with a
// zero pond quota; only an approved payment grants access.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Phone:              req.Phone,
		Role:               user.RoleFarmer,
		SubscriptionStatus: user.StatusExpired,
		MaxPonds:           0,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, fmt.Errorf("email already registered: %w", err)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID), zap.String("email", email))
	return user.ProfileOf(u, time.Now()), nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	token, jti, err := s.jwtManager.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", u.ID), zap.String("jti", jti))

	return &user.LoginResponse{
		Token:   token,
		Profile: user.ProfileOf(u, time.Now()),
	}, nil
}

// GetProfile returns the user's profile with the derived effective status.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ProfileOf(u, time.Now()), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *user.UpdateProfileRequest) (*user.Profile, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.FullName, req.Phone); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// EnsureAdminExists creates the admin account from env config if it is not
// already present. Admins get the unlimited pond sentinel so quota checks
// never block them.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, fullName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           fullName,
		Role:               user.RoleAdmin,
		SubscriptionStatus: user.StatusActive,
		MaxPonds:           user.UnlimitedPonds,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin account created", zap.String("email", email))
	return nil
}
