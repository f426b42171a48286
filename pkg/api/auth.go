// Package api contains the request/response types of the HTTP API,
// shared between server handlers and the client.
package api

import "time"

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль (минимум 6 символов)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo представляет публичные данные пользователя
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse представляет ответ на успешный signup/login
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"` // JWT bearer token
	User    UserInfo `json:"user"`
}

// LockedResponse представляет ответ 423 для заблокированного аккаунта
type LockedResponse struct {
	Message   string    `json:"message"`
	LockUntil time.Time `json:"lockUntil"` // абсолютное время разблокировки
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // HTTP статус текстом
	Message string `json:"message,omitempty"` // детали ошибки
}

// FieldError описывает ошибку валидации конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse представляет ответ 400 с пополевыми ошибками
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}
