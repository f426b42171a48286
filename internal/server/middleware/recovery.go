package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware создает middleware для восстановления после паники
// Перехватывает panic, логирует стек вызовов и возвращает 500.
// При includeDetail (не-production режим) сообщение паники попадает в
// ответ, иначе клиент получает generic ошибку.
func RecoveryMiddleware(logger *slog.Logger, includeDetail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stackTrace := debug.Stack()

					logger.Error("Panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
						"stack", string(stackTrace),
					)

					message := "Internal Server Error"
					if includeDetail {
						message = fmt.Sprintf("Internal Server Error: %v", err)
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = fmt.Fprintf(w, `{"error":"Internal Server Error","message":%q}`, message)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
