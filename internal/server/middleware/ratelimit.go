package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter хранит отдельный token bucket на каждый ключ (IP адрес)
type KeyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

// NewKeyedLimiter создает limiter, допускающий requests запросов в window
// с ключа. Неположительный requests или window означает "без лимита".
func NewKeyedLimiter(requests int, window time.Duration) *KeyedLimiter {
	limit := rate.Inf
	if requests > 0 && window > 0 {
		limit = rate.Every(window / time.Duration(requests))
	}

	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    requests,
	}
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}

	// Простая защита от бесконечного роста map
	if len(l.limiters) > 10000 {
		l.limiters = make(map[string]*rate.Limiter)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// RateLimitConfig описывает лимиты для транспортного уровня
// Disabled отключает ограничение полностью (test environment mode)
type RateLimitConfig struct {
	GeneralRequests int
	GeneralWindow   time.Duration
	AuthRequests    int
	AuthWindow      time.Duration
	Disabled        bool
}

// RateLimitMiddleware создает middleware ограничения частоты запросов
// по IP: общий лимит для всех путей и более строгий для /auth/*
func RateLimitMiddleware(cfg RateLimitConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if cfg.Disabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	general := NewKeyedLimiter(cfg.GeneralRequests, cfg.GeneralWindow)
	auth := NewKeyedLimiter(cfg.AuthRequests, cfg.AuthWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := general
			if strings.HasPrefix(r.URL.Path, "/auth/") {
				limiter = auth
			}

			key := getClientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded, please try again later"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	// Проверяем X-Forwarded-For (для прокси/load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Берем первый IP из списка (реальный клиент)
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}

	// Проверяем X-Real-IP
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
