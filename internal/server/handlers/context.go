package handlers

import "context"

// contextKey is a private type for request context keys
type contextKey string

const (
	// UserIDKey ключ контекста с ID аутентифицированного пользователя
	UserIDKey contextKey = "user_id"
	// EmailKey ключ контекста с email аутентифицированного пользователя
	EmailKey contextKey = "email"
)

// UserIDFromContext extracts the authenticated user id set by the auth
// middleware
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
