package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/touristfeedback/backend/internal/models"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// If a user with the same email exists, models.ErrEmailTaken is returned (wrapped).
	// If some other error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByCredentials retrieves a user matching email, password digest and role exactly.
	//
	// If no user matches, models.ErrUserNotFound will be returned together with "nil" value.
	GetByCredentials(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// HashPassword returns the hex SHA-256 digest stored for a plaintext password
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates a new tourist account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	user := &models.User{
		Fullname:     req.Fullname,
		Email:        req.Email,
		PasswordHash: HashPassword(req.Password),
		Role:         models.RoleTourist,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID))
	return user, nil
}

// Login authenticates a user for the given role
func (s *authService) Login(ctx context.Context, req *models.LoginRequest, role models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByCredentials(ctx, req.Email, HashPassword(req.Password), role)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *authService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	if userID <= 0 {
		return nil, models.ErrUserNotFound
	}

	return s.userRepo.GetByID(ctx, userID)
}
