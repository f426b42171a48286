// Package server initializes and runs the notes application server:
// it wires configuration, storage, handlers and the middleware chain,
// and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/gonotes/internal/server/config"
	"github.com/iudanet/gonotes/internal/server/handlers"
	"github.com/iudanet/gonotes/internal/server/lockout"
	"github.com/iudanet/gonotes/internal/server/middleware"
	"github.com/iudanet/gonotes/internal/server/storage"
	"github.com/iudanet/gonotes/internal/server/storage/sqlite"
	"github.com/iudanet/gonotes/internal/server/token"
)

// App represents the running application
type App struct {
	config     *config.Config
	logger     *slog.Logger
	storage    *sqlite.Storage
	httpServer *http.Server
}

// NewApp builds the application from configuration
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	tokenConfig := token.Config{
		Secret: []byte(cfg.JWTSecret),
		TTL:    token.DefaultTTL,
	}

	rateConfig := middleware.RateLimitConfig{
		GeneralRequests: cfg.RateLimitGeneral,
		GeneralWindow:   cfg.RateLimitGeneralWindow,
		AuthRequests:    cfg.RateLimitAuth,
		AuthWindow:      cfg.RateLimitAuthWindow,
		Disabled:        cfg.IsTest(),
	}

	handler := NewRouter(logger, store, store, tokenConfig, rateConfig, !cfg.IsProduction())

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		config:     cfg,
		logger:     logger,
		storage:    store,
		httpServer: httpServer,
	}, nil
}

// NewRouter assembles the route table and middleware chain.
// Separated from NewApp so tests can run requests against the full stack
// without binding a socket.
func NewRouter(
	logger *slog.Logger,
	users storage.UserStorage,
	notes storage.NoteStorage,
	tokenConfig token.Config,
	rateConfig middleware.RateLimitConfig,
	includeErrorDetail bool,
) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, users, lockout.NewService(users), tokenConfig)
	notesHandler := handlers.NewNotesHandler(logger, notes)
	healthHandler := handlers.NewHealthHandler(logger)

	requireAuth := middleware.AuthMiddleware(logger, tokenConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("POST /notes", requireAuth(http.HandlerFunc(notesHandler.Create)))
	mux.Handle("GET /notes", requireAuth(http.HandlerFunc(notesHandler.List)))
	mux.Handle("PUT /notes/{id}", requireAuth(http.HandlerFunc(notesHandler.Update)))
	mux.Handle("DELETE /notes/{id}", requireAuth(http.HandlerFunc(notesHandler.Delete)))
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Цепочка: recovery снаружи, затем логирование, затем rate limit
	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(rateConfig, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger, includeErrorDetail)(handler)

	return handler
}

// Run starts the HTTP server and blocks until shutdown
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	errC := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server",
			"address", app.config.Address,
			"environment", app.config.Environment,
		)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		_ = app.storage.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("failed to shut down http server", slog.Any("error", err))
	}

	if err := app.storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	return nil
}

// parseLogLevel maps the LOG_LEVEL setting to a slog level
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
