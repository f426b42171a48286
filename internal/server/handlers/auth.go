package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gonotes/internal/crypto"
	"github.com/iudanet/gonotes/internal/models"
	"github.com/iudanet/gonotes/internal/server/lockout"
	"github.com/iudanet/gonotes/internal/server/storage"
	"github.com/iudanet/gonotes/internal/server/token"
	"github.com/iudanet/gonotes/internal/validation"
	"github.com/iudanet/gonotes/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	lockout     *lockout.Service
	tokenConfig token.Config
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, lockoutSvc *lockout.Service, tokenConfig token.Config) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		lockout:     lockoutSvc,
		tokenConfig: tokenConfig,
	}
}

// Signup обрабатывает POST /auth/signup
// Регистрация нового пользователя
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)

	// Валидация полей запроса
	var fieldErrors []api.FieldError
	if err := validation.ValidateEmail(email); err != nil {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "password", Message: err.Error()})
	}
	if len(fieldErrors) > 0 {
		sendValidationErrors(h.logger, w, fieldErrors)
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "signup with already registered email")
			sendError(h.logger, w, "user already exists with this email", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	signed, err := token.Generate(h.tokenConfig, user.ID, user.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Message: "User created successfully",
		Token:   signed,
		User:    api.UserInfo{ID: user.ID, Email: user.Email},
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /auth/login
// Прогоняет попытку через lockout state machine и выдает токен на
// успешном исходе
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)

	var fieldErrors []api.FieldError
	if err := validation.ValidateEmail(email); err != nil {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "email", Message: err.Error()})
	}
	if req.Password == "" {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "password", Message: "password is required"})
	}
	if len(fieldErrors) > 0 {
		sendValidationErrors(h.logger, w, fieldErrors)
		return
	}

	result, err := h.lockout.Attempt(ctx, email, req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "login attempt failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	switch result.Outcome {
	case lockout.OutcomeLocked:
		h.logger.WarnContext(ctx, "login rejected: account locked",
			slog.Time("locked_until", result.LockedUntil))

		resp := api.LockedResponse{
			Message: fmt.Sprintf(
				"Account is temporarily locked due to too many failed login attempts. Please try again in %d minute(s).",
				result.RetryAfterMinutes),
			LockUntil: result.LockedUntil,
		}
		sendJSON(h.logger, w, resp, http.StatusLocked)
		return

	case lockout.OutcomeInvalidCredentials:
		// Ответ одинаков для несуществующего email и неверного пароля
		h.logger.WarnContext(ctx, "login rejected: invalid credentials")
		sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	user := result.User

	signed, err := token.Generate(h.tokenConfig, user.ID, user.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Message: "Login successful",
		Token:   signed,
		User:    api.UserInfo{ID: user.ID, Email: user.Email},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
