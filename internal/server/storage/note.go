package storage

import (
	"context"

	"github.com/iudanet/gonotes/internal/models"
)

// NoteStorage defines interface for note persistence.
// Every operation is scoped by the owning user: a note that exists but
// belongs to someone else behaves exactly like a missing note.
type NoteStorage interface {
	// CreateNote creates a new note
	CreateNote(ctx context.Context, note *models.Note) error

	// GetUserNotes retrieves all notes of a user, newest first
	// Returns empty slice if no notes found
	GetUserNotes(ctx context.Context, userID string) ([]*models.Note, error)

	// GetNote retrieves a single note by id within the user's scope
	// Returns ErrNoteNotFound if note doesn't exist or is foreign-owned
	GetNote(ctx context.Context, userID, noteID string) (*models.Note, error)

	// UpdateNote updates title/content of a note within the user's scope
	// Returns ErrNoteNotFound if note doesn't exist or is foreign-owned
	UpdateNote(ctx context.Context, note *models.Note) error

	// DeleteNote deletes a note within the user's scope
	// Returns ErrNoteNotFound if note doesn't exist or is foreign-owned
	DeleteNote(ctx context.Context, userID, noteID string) error
}
