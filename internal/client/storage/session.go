// Package storage defines the client-side session persistence layer.
package storage

import (
	"context"
	"errors"
)

// ErrSessionNotFound indicates that no session is stored (not logged in)
var ErrSessionNotFound = errors.New("session not found")

// SessionData represents a cached login session
type SessionData struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`      // JWT bearer token
	ExpiresAt int64  `json:"expires_at"` // unix seconds, token expiry
}

// SessionStorage defines interface for storing the login session on the
// client between invocations
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error

	// IsAuthenticated checks if a non-expired session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}
