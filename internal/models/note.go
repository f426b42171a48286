package models

import "time"

// Note представляет заметку пользователя
type Note struct {
	ID        string    `json:"id"`         // UUID заметки
	UserID    string    `json:"-"`          // ID владельца
	Title     string    `json:"title"`      // заголовок, до 200 символов
	Content   string    `json:"content"`    // текст, до 5000 символов
	CreatedAt time.Time `json:"created_at"` // время создания
	UpdatedAt time.Time `json:"updated_at"` // время последнего обновления
}
