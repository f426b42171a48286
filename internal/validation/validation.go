package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern определяет допустимую форму email
// Минимальная проверка формы: непустая часть, @, непустой домен с точкой
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
	// MaxTitleLen максимальная длина заголовка заметки
	MaxTitleLen = 200
	// MaxContentLen максимальная длина текста заметки
	MaxContentLen = 5000
)

// NormalizeEmail приводит email к каноничной форме (trim + lowercase).
// Сравнение email всегда регистронезависимое.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет, что email имеет допустимую форму.
// Ожидает уже нормализованный email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("please provide a valid email")
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidateNoteTitle проверяет заголовок заметки
func ValidateNoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title cannot exceed %d characters", MaxTitleLen)
	}
	return nil
}

// ValidateNoteContent проверяет текст заметки
func ValidateNoteContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > MaxContentLen {
		return fmt.Errorf("content cannot exceed %d characters", MaxContentLen)
	}
	return nil
}
