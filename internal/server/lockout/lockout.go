// Package lockout implements the login-attempt policy: repeated failed
// password checks temporarily lock the account, successful checks reset
// the counter. The counter and lock timestamp live in the user record so
// the policy survives restarts and applies across concurrent requests.
package lockout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gonotes/internal/crypto"
	"github.com/iudanet/gonotes/internal/models"
	"github.com/iudanet/gonotes/internal/server/storage"
)

const (
	// MaxFailedAttempts блокирует аккаунт после стольких неудачных попыток
	MaxFailedAttempts = 5
	// LockDuration длительность блокировки аккаунта
	LockDuration = 30 * time.Minute
)

// Outcome is the closed set of results of an authentication attempt
type Outcome int

const (
	// OutcomeAuthenticated password matched, counters are reset
	OutcomeAuthenticated Outcome = iota
	// OutcomeInvalidCredentials unknown email or wrong password;
	// the two are deliberately indistinguishable
	OutcomeInvalidCredentials
	// OutcomeLocked the account is temporarily locked
	OutcomeLocked
)

// Result describes the outcome of an authentication attempt
type Result struct {
	Outcome Outcome

	// User is set only when Outcome is OutcomeAuthenticated
	User *models.User

	// LockedUntil and RetryAfterMinutes are set when Outcome is
	// OutcomeLocked. RetryAfterMinutes is rounded up.
	LockedUntil       time.Time
	RetryAfterMinutes int
}

// Service runs the lockout state machine against the credential store
type Service struct {
	users storage.UserStorage
	now   func() time.Time
}

// NewService creates a new lockout service
func NewService(users storage.UserStorage) *Service {
	return &Service{
		users: users,
		now:   time.Now,
	}
}

// WithClock overrides the clock, used in tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Attempt runs one authentication attempt for the given credentials.
// email is expected to be normalized by the caller.
func (s *Service) Attempt(ctx context.Context, email, password string) (*Result, error) {
	now := s.now()

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Не раскрываем существование аккаунта
			return &Result{Outcome: OutcomeInvalidCredentials}, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Активная блокировка отклоняет попытку до проверки пароля
	// и не трогает счетчик
	if user.IsLocked(now) {
		return lockedResult(*user.LockedUntil, now), nil
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		_, lockedUntil, err := s.users.RegisterLoginFailure(ctx, user.ID, MaxFailedAttempts, now.Add(LockDuration))
		if err != nil {
			return nil, fmt.Errorf("failed to register login failure: %w", err)
		}

		// Пятая неудача ставит блокировку, и о ней сообщаем сразу
		if lockedUntil != nil && lockedUntil.After(now) {
			return lockedResult(*lockedUntil, now), nil
		}

		return &Result{Outcome: OutcomeInvalidCredentials}, nil
	}

	// Единственный переход обратно в чистое состояние OPEN
	if err := s.users.ResetLoginFailures(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to reset login failures: %w", err)
	}
	user.FailedAttempts = 0
	user.LockedUntil = nil

	return &Result{Outcome: OutcomeAuthenticated, User: user}, nil
}

// lockedResult builds a Locked result with the remaining time rounded up
// to whole minutes
func lockedResult(lockedUntil, now time.Time) *Result {
	remaining := lockedUntil.Sub(now)
	minutes := int((remaining + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	return &Result{
		Outcome:           OutcomeLocked,
		LockedUntil:       lockedUntil,
		RetryAfterMinutes: minutes,
	}
}
