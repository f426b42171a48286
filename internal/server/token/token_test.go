package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Secret: []byte("test-secret"),
	TTL:    time.Hour,
}

func TestGenerateAndValidate(t *testing.T) {
	signed, err := Generate(testConfig, "user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Validate(testConfig, signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "gonotes", claims.Issuer)
}

func TestGenerate_DefaultTTL(t *testing.T) {
	cfg := Config{Secret: []byte("test-secret")}

	signed, err := Generate(cfg, "user-1", "a@b.com")
	require.NoError(t, err)

	claims, err := Validate(cfg, signed)
	require.NoError(t, err)

	// Без явного TTL токен живет 7 дней
	expected := time.Now().Add(DefaultTTL)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
}

func TestValidate_Expired(t *testing.T) {
	cfg := Config{Secret: []byte("test-secret"), TTL: -time.Hour}

	signed, err := Generate(cfg, "user-1", "a@b.com")
	require.NoError(t, err)

	_, err = Validate(Config{Secret: []byte("test-secret")}, signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidate_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"two parts", "aaaa.bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(testConfig, tt.token)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	signed, err := Generate(testConfig, "user-1", "a@b.com")
	require.NoError(t, err)

	_, err = Validate(Config{Secret: []byte("other-secret")}, signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate_TamperedPayload(t *testing.T) {
	signed, err := Generate(testConfig, "user-1", "a@b.com")
	require.NoError(t, err)

	tampered := signed[:len(signed)-4] + "AAAA"

	_, err = Validate(testConfig, tampered)
	require.Error(t, err)
	// Любая подмена дает одну из sentinel ошибок, не сырую ошибку парсера
	assert.True(t, err == ErrExpired || err == ErrMalformed || err == ErrInvalid)
}
