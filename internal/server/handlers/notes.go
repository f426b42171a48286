package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gonotes/internal/models"
	"github.com/iudanet/gonotes/internal/server/storage"
	"github.com/iudanet/gonotes/internal/validation"
	"github.com/iudanet/gonotes/pkg/api"
)

// NotesHandler обрабатывает CRUD запросы заметок
// Все методы ожидают аутентифицированный контекст (auth middleware)
type NotesHandler struct {
	logger      *slog.Logger
	noteStorage storage.NoteStorage
}

// NewNotesHandler создает новый handler для заметок
func NewNotesHandler(logger *slog.Logger, noteStorage storage.NoteStorage) *NotesHandler {
	return &NotesHandler{
		logger:      logger,
		noteStorage: noteStorage,
	}
}

// Create обрабатывает POST /notes
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create note request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	var fieldErrors []api.FieldError
	if err := validation.ValidateNoteTitle(req.Title); err != nil {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "title", Message: err.Error()})
	}
	if err := validation.ValidateNoteContent(req.Content); err != nil {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "content", Message: err.Error()})
	}
	if len(fieldErrors) > 0 {
		sendValidationErrors(h.logger, w, fieldErrors)
		return
	}

	now := time.Now()
	note := &models.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.noteStorage.CreateNote(ctx, note); err != nil {
		h.logger.ErrorContext(ctx, "failed to create note", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "note created",
		slog.String("note_id", note.ID),
		slog.String("user_id", userID))

	resp := api.NoteResponse{
		Message: "Note created successfully",
		Note:    toAPINote(note),
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// List обрабатывает GET /notes
// Возвращает заметки пользователя, новые первыми
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	notes, err := h.noteStorage.GetUserNotes(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notes", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.NotesResponse{
		Message: "Notes retrieved successfully",
		Notes:   make([]api.Note, 0, len(notes)),
	}
	for _, note := range notes {
		resp.Notes = append(resp.Notes, toAPINote(note))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Update обрабатывает PUT /notes/{id}
// Частичное обновление: отсутствующее поле не меняется
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID := r.PathValue("id")
	if _, err := uuid.Parse(noteID); err != nil {
		sendError(h.logger, w, "invalid note ID", http.StatusBadRequest)
		return
	}

	var req api.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update note request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	var fieldErrors []api.FieldError
	if req.Title != nil {
		if err := validation.ValidateNoteTitle(*req.Title); err != nil {
			fieldErrors = append(fieldErrors, api.FieldError{Field: "title", Message: err.Error()})
		}
	}
	if req.Content != nil {
		if err := validation.ValidateNoteContent(*req.Content); err != nil {
			fieldErrors = append(fieldErrors, api.FieldError{Field: "content", Message: err.Error()})
		}
	}
	if len(fieldErrors) > 0 {
		sendValidationErrors(h.logger, w, fieldErrors)
		return
	}

	// Чужая заметка неотличима от несуществующей: всегда 404
	note, err := h.noteStorage.GetNote(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			sendError(h.logger, w, "Note not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get note", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.UpdatedAt = time.Now()

	if err := h.noteStorage.UpdateNote(ctx, note); err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			sendError(h.logger, w, "Note not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update note", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.NoteResponse{
		Message: "Note updated successfully",
		Note:    toAPINote(note),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete обрабатывает DELETE /notes/{id}
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	noteID := r.PathValue("id")
	if _, err := uuid.Parse(noteID); err != nil {
		sendError(h.logger, w, "invalid note ID", http.StatusBadRequest)
		return
	}

	if err := h.noteStorage.DeleteNote(ctx, userID, noteID); err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			sendError(h.logger, w, "Note not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete note", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "note deleted",
		slog.String("note_id", noteID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Note deleted successfully"}, http.StatusOK)
}

// toAPINote converts a storage note to its API representation
func toAPINote(note *models.Note) api.Note {
	return api.Note{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
