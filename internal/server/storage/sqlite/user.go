package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iudanet/gonotes/internal/models"
	"github.com/iudanet/gonotes/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, failed_attempts, locked_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FailedAttempts,
		lockedUntilToUnix(user.LockedUntil),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Единственный UNIQUE в users это email
		var serr *sqlitedrv.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, failed_attempts, locked_until, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, failed_attempts, locked_until, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, userID))
}

// RegisterLoginFailure records a failed login attempt as one UPDATE so
// that concurrent attempts never interleave a separate read-modify-write
// on the counter. A stale lock (locked_until in the past) restarts the
// counter at 1; otherwise the counter is incremented, and locked_until is
// set when the new value reaches the threshold on a not-yet-locked row.
func (s *Storage) RegisterLoginFailure(ctx context.Context, userID string, threshold int, lockUntil time.Time) (int, *time.Time, error) {
	now := time.Now()

	query := `
		UPDATE users
		SET failed_attempts = CASE
		        WHEN locked_until IS NOT NULL AND locked_until <= ?1 THEN 1
		        ELSE failed_attempts + 1
		    END,
		    locked_until = CASE
		        WHEN locked_until IS NOT NULL AND locked_until > ?1 THEN locked_until
		        WHEN (CASE
		                WHEN locked_until IS NOT NULL AND locked_until <= ?1 THEN 1
		                ELSE failed_attempts + 1
		              END) >= ?2 THEN ?3
		        ELSE NULL
		    END,
		    updated_at = ?4
		WHERE id = ?5
	`

	result, err := s.db.ExecContext(ctx, query,
		now.Unix(),
		threshold,
		lockUntil.Unix(),
		now,
		userID,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to register login failure: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return 0, nil, storage.ErrUserNotFound
	}

	// Читаем получившееся состояние счетчика
	var attempts int
	var locked sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT failed_attempts, locked_until FROM users WHERE id = ?`, userID,
	).Scan(&attempts, &locked)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read login failure state: %w", err)
	}

	return attempts, unixToLockedUntil(locked), nil
}

// ResetLoginFailures clears the failure counter and lock after a
// successful authentication
func (s *Storage) ResetLoginFailures(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET failed_attempts = 0, locked_until = NULL, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// scanUser is a helper to scan a single user row
func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var locked sql.NullInt64

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FailedAttempts,
		&locked,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.LockedUntil = unixToLockedUntil(locked)

	return user, nil
}

func lockedUntilToUnix(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func unixToLockedUntil(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}
