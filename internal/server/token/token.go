// Package token issues and verifies the stateless bearer tokens the API
// uses after authentication. Verification failures map to a closed set
// of sentinel errors so parser internals never reach a client.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL срок жизни access token
const DefaultTTL = 7 * 24 * time.Hour

// Closed set of verification failures. Anything that is not one of these
// is an internal error.
var (
	// ErrExpired token is well-formed and correctly signed but expired
	ErrExpired = errors.New("token expired")
	// ErrMalformed token is not a parseable JWT
	ErrMalformed = errors.New("token malformed")
	// ErrInvalid signature mismatch or any other verification failure
	ErrInvalid = errors.New("token invalid")
)

// Claims представляет JWT claims для нашего приложения
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию для подписи токенов
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Generate создает новый подписанный JWT для пользователя
func Generate(cfg Config, userID, email string) (string, error) {
	now := time.Now()
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "gonotes",
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate валидирует и парсит JWT, возвращая одну из sentinel ошибок
// при любой проблеме с токеном
func Validate(cfg Config, tokenString string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, ErrInvalid
		}
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
