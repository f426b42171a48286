package api

import "time"

// Note представляет заметку в ответах API
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateNoteRequest представляет запрос на создание заметки
type CreateNoteRequest struct {
	Title   string `json:"title"`   // обязателен, до 200 символов
	Content string `json:"content"` // обязателен, до 5000 символов
}

// UpdateNoteRequest представляет запрос на частичное обновление заметки
// nil-поле означает "не менять"
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// NoteResponse представляет ответ с одной заметкой
type NoteResponse struct {
	Message string `json:"message"`
	Note    Note   `json:"note"`
}

// NotesResponse представляет ответ со списком заметок (новые первыми)
type NotesResponse struct {
	Message string `json:"message"`
	Notes   []Note `json:"notes"`
}

// MessageResponse представляет ответ только с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
