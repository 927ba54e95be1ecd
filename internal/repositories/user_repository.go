package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/touristfeedback/backend/internal/models"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// userRepository implements UserRepository
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (fullname, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Fullname, user.Email, user.PasswordHash, string(user.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", models.ErrEmailTaken)
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByCredentials retrieves a user matching email, password digest and role exactly
func (r *userRepository) GetByCredentials(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	query := `
		SELECT id, fullname, email, password_hash, role
		FROM users
		WHERE email = ? AND password_hash = ? AND role = ?
		LIMIT 1
	`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, email, passwordHash, string(role)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by credentials", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by credentials: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, fullname, email, password_hash, role
		FROM users
		WHERE id = ?
	`

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	// Columns are nullable in the store, so scan through NullString
	var fullname, email, passwordHash, role sql.NullString
	if err := row.Scan(&user.ID, &fullname, &email, &passwordHash, &role); err != nil {
		return nil, err
	}
	user.Fullname = fullname.String
	user.Email = email.String
	user.PasswordHash = passwordHash.String
	user.Role = models.Role(role.String)
	return user, nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
