package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"\tUser@Example.com\n", "user@example.com"},
		{"user@example.com", "user@example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.input))
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid subdomain", "user@mail.example.com", false},
		{"empty", "", true},
		{"no at sign", "userexample.com", true},
		{"no domain dot", "user@example", true},
		{"missing local part", "@example.com", true},
		{"spaces inside", "us er@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "secret1", false},
		{"exactly min length", "123456", false},
		{"too short", "12345", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNoteTitle(t *testing.T) {
	assert.NoError(t, ValidateNoteTitle("a title"))
	assert.NoError(t, ValidateNoteTitle(strings.Repeat("x", MaxTitleLen)))
	assert.Error(t, ValidateNoteTitle(""))
	assert.Error(t, ValidateNoteTitle("   "))
	assert.Error(t, ValidateNoteTitle(strings.Repeat("x", MaxTitleLen+1)))
}

func TestValidateNoteContent(t *testing.T) {
	assert.NoError(t, ValidateNoteContent("some content"))
	assert.NoError(t, ValidateNoteContent(strings.Repeat("x", MaxContentLen)))
	assert.Error(t, ValidateNoteContent(""))
	assert.Error(t, ValidateNoteContent("   "))
	assert.Error(t, ValidateNoteContent(strings.Repeat("x", MaxContentLen+1)))
}
