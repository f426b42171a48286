package models

import "time"

// User представляет учетную запись пользователя
type User struct {
	ID             string     `json:"id"`         // UUID пользователя
	Email          string     `json:"email"`      // уникальный email (lowercase)
	PasswordHash   string     `json:"-"`          // bcrypt хеш пароля, никогда не отдается наружу
	FailedAttempts int        `json:"-"`          // счетчик неудачных попыток входа
	LockedUntil    *time.Time `json:"-"`          // время окончания блокировки, nil если не заблокирован
	CreatedAt      time.Time  `json:"created_at"` // время создания
	UpdatedAt      time.Time  `json:"updated_at"` // время последнего обновления
}

// IsLocked reports whether the account lock is currently active.
// A lock timestamp in the past is stale and counts as unlocked.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// HasStaleLock reports whether a lock timestamp exists but has already
// expired. The next login failure restarts the counter at 1.
func (u *User) HasStaleLock(now time.Time) bool {
	return u.LockedUntil != nil && !u.LockedUntil.After(now)
}
