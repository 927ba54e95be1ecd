// Package database opens the SQLite store and manages its schema
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/touristfeedback/backend/internal/models"
	_ "modernc.org/sqlite"
)

// Open opens the SQLite store and verifies the connection.
// SQLite allows a single writer, so the pool is capped at one connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

const usersTable = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fullname TEXT,
    email TEXT UNIQUE,
    password_hash TEXT,
    role TEXT
)`

// feedback.user_id is intentionally not a foreign key: orphaned rows stay visible
const feedbackTable = `
CREATE TABLE feedback (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER,
    location TEXT,
    visit_date TEXT,
    rating INTEGER,
    category TEXT,
    comment TEXT,
    recommend TEXT,
    created_at TEXT
)`

// Bootstrap creates the users and feedback tables and inserts the seed admin
// when the store is new. An already initialized store is left untouched.
// The admin's PasswordHash must already be a digest.
func Bootstrap(ctx context.Context, db *sql.DB, admin models.User) (bool, error) {
	initialized, err := tableExists(ctx, db, "users")
	if err != nil {
		return false, err
	}
	if initialized {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{usersTable, feedbackTable} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (fullname, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		admin.Fullname, admin.Email, admin.PasswordHash, models.RoleAdmin,
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit schema: %w", err)
	}

	return true, nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return count > 0, nil
}

// FeedbackTextColumns are the columns older stores may be missing
var FeedbackTextColumns = []string{"location", "visit_date", "category", "recommend"}

// EnsureFeedbackColumns adds each missing text column to an existing feedback table.
// A column that is already present is skipped; any other failure is returned.
// It returns the columns that were added.
func EnsureFeedbackColumns(ctx context.Context, db *sql.DB) ([]string, error) {
	var added []string
	for _, column := range FeedbackTextColumns {
		ok, err := ensureColumn(ctx, db, "feedback", column)
		if err != nil {
			return added, err
		}
		if ok {
			added = append(added, column)
		}
	}
	return added, nil
}

func ensureColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	// Identifiers come from the fixed column list above, never from user input
	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", table, column)
	if _, err := db.ExecContext(ctx, query); err != nil {
		if isDuplicateColumn(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return true, nil
}

// isDuplicateColumn matches on the message because SQLite reports a
// duplicate column as a plain SQLITE_ERROR with no extended code.
func isDuplicateColumn(err error) bool {
	return strings.Contains(err.Error(), "duplicate column name")
}
