package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNoteNotFound indicates that note was not found or is not owned
	// by the requesting user. Callers must not distinguish the two cases.
	ErrNoteNotFound = errors.New("note not found")
)
