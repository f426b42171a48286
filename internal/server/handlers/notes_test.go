package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gonotes/internal/models"
	"github.com/iudanet/gonotes/internal/server/storage"
	"github.com/iudanet/gonotes/pkg/api"
)

// mockNoteStorage is a mock implementation of NoteStorage for testing
type mockNoteStorage struct {
	notes map[string]*models.Note // noteID -> Note
}

func newMockNoteStorage() *mockNoteStorage {
	return &mockNoteStorage{notes: make(map[string]*models.Note)}
}

func (m *mockNoteStorage) CreateNote(ctx context.Context, note *models.Note) error {
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteStorage) GetUserNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	result := []*models.Note{}
	for _, note := range m.notes {
		if note.UserID == userID {
			result = append(result, note)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockNoteStorage) GetNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	note, ok := m.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, storage.ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (m *mockNoteStorage) UpdateNote(ctx context.Context, note *models.Note) error {
	existing, ok := m.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return storage.ErrNoteNotFound
	}
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteStorage) DeleteNote(ctx context.Context, userID, noteID string) error {
	note, ok := m.notes[noteID]
	if !ok || note.UserID != userID {
		return storage.ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}

// authedRequest builds a request with the user id already in context,
// as the auth middleware would do
func authedRequest(method, target, userID string, body interface{}) *http.Request {
	var req *http.Request
	if body != nil {
		data, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

func addNote(m *mockNoteStorage, userID, title string, createdAt time.Time) *models.Note {
	note := &models.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	m.notes[note.ID] = note
	return note
}

func TestNotesHandler_Create_Success(t *testing.T) {
	notes := newMockNoteStorage()
	handler := NewNotesHandler(setupTestLogger(), notes)

	req := authedRequest(http.MethodPost, "/notes", "user-1", api.CreateNoteRequest{
		Title:   "Shopping",
		Content: "milk, bread",
	})
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp api.NoteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Note.ID)
	assert.Equal(t, "Shopping", resp.Note.Title)

	stored, err := notes.GetNote(context.Background(), "user-1", resp.Note.ID)
	require.NoError(t, err)
	assert.Equal(t, "milk, bread", stored.Content)
}

func TestNotesHandler_Create_Validation(t *testing.T) {
	handler := NewNotesHandler(setupTestLogger(), newMockNoteStorage())

	tests := []struct {
		name    string
		title   string
		content string
		field   string
	}{
		{"missing title", "", "some content", "title"},
		{"blank title", "   ", "some content", "title"},
		{"title too long", strings.Repeat("x", 201), "some content", "title"},
		{"missing content", "title", "", "content"},
		{"content too long", "title", strings.Repeat("x", 5001), "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/notes", "user-1", api.CreateNoteRequest{
				Title:   tt.title,
				Content: tt.content,
			})
			w := httptest.NewRecorder()
			handler.Create(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp api.ValidationErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.NotEmpty(t, resp.Errors)
			assert.Equal(t, tt.field, resp.Errors[0].Field)
		})
	}
}

func TestNotesHandler_List_Empty(t *testing.T) {
	handler := NewNotesHandler(setupTestLogger(), newMockNoteStorage())

	req := authedRequest(http.MethodGet, "/notes", "user-1", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// Пустой список сериализуется как [], не null
	assert.Contains(t, w.Body.String(), `"notes":[]`)
}

func TestNotesHandler_List_NewestFirst(t *testing.T) {
	notes := newMockNoteStorage()
	now := time.Now()
	addNote(notes, "user-1", "oldest", now.Add(-2*time.Hour))
	addNote(notes, "user-1", "newest", now)
	addNote(notes, "user-1", "middle", now.Add(-time.Hour))
	addNote(notes, "user-2", "foreign", now) // не должна попасть в список

	handler := NewNotesHandler(setupTestLogger(), notes)

	req := authedRequest(http.MethodGet, "/notes", "user-1", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.NotesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Notes, 3)
	assert.Equal(t, "newest", resp.Notes[0].Title)
	assert.Equal(t, "middle", resp.Notes[1].Title)
	assert.Equal(t, "oldest", resp.Notes[2].Title)
}

func TestNotesHandler_Update_Success(t *testing.T) {
	notes := newMockNoteStorage()
	note := addNote(notes, "user-1", "old title", time.Now())
	handler := NewNotesHandler(setupTestLogger(), notes)

	newTitle := "new title"
	req := authedRequest(http.MethodPut, "/notes/"+note.ID, "user-1", api.UpdateNoteRequest{Title: &newTitle})
	req.SetPathValue("id", note.ID)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.NoteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "new title", resp.Note.Title)
	// Не переданное поле не изменилось
	assert.Equal(t, note.Content, resp.Note.Content)
}

func TestNotesHandler_Update_ForeignNote(t *testing.T) {
	notes := newMockNoteStorage()
	note := addNote(notes, "user-2", "foreign", time.Now())
	handler := NewNotesHandler(setupTestLogger(), notes)

	newTitle := "hijack"
	req := authedRequest(http.MethodPut, "/notes/"+note.ID, "user-1", api.UpdateNoteRequest{Title: &newTitle})
	req.SetPathValue("id", note.ID)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	// Чужая заметка дает 404, не 403
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesHandler_Update_MalformedID(t *testing.T) {
	handler := NewNotesHandler(setupTestLogger(), newMockNoteStorage())

	newTitle := "t"
	req := authedRequest(http.MethodPut, "/notes/not-a-uuid", "user-1", api.UpdateNoteRequest{Title: &newTitle})
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotesHandler_Delete_Success(t *testing.T) {
	notes := newMockNoteStorage()
	note := addNote(notes, "user-1", "to delete", time.Now())
	handler := NewNotesHandler(setupTestLogger(), notes)

	req := authedRequest(http.MethodDelete, "/notes/"+note.ID, "user-1", nil)
	req.SetPathValue("id", note.ID)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	_, err := notes.GetNote(context.Background(), "user-1", note.ID)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
}

func TestNotesHandler_Delete_NotFound(t *testing.T) {
	handler := NewNotesHandler(setupTestLogger(), newMockNoteStorage())

	missingID := uuid.New().String()
	req := authedRequest(http.MethodDelete, "/notes/"+missingID, "user-1", nil)
	req.SetPathValue("id", missingID)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
