package storage

import (
	"context"
	"time"

	"github.com/iudanet/gonotes/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if email is already registered
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email (expects normalized email)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// RegisterLoginFailure records a failed login attempt as a single
	// atomic update: restarts the counter at 1 when the stored lock is
	// stale, otherwise increments it, and sets locked_until when the
	// counter reaches the threshold of a not-yet-locked record.
	// Returns the resulting counter value and lock timestamp.
	// Returns ErrUserNotFound if user doesn't exist
	RegisterLoginFailure(ctx context.Context, userID string, threshold int, lockUntil time.Time) (int, *time.Time, error)

	// ResetLoginFailures clears the failure counter and any lock after a
	// successful authentication
	// Returns ErrUserNotFound if user doesn't exist
	ResetLoginFailures(ctx context.Context, userID string) error
}
