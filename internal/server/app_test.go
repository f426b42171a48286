package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gonotes/internal/server/lockout"
	"github.com/iudanet/gonotes/internal/server/middleware"
	"github.com/iudanet/gonotes/internal/server/storage/sqlite"
	"github.com/iudanet/gonotes/internal/server/token"
	"github.com/iudanet/gonotes/pkg/api"
)

// setupTestServer собирает полный стек (router + middleware + sqlite in-memory)
// поверх httptest
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	tokenConfig := token.Config{
		Secret: []byte("integration-test-secret"),
		TTL:    time.Hour,
	}

	rateConfig := middleware.RateLimitConfig{Disabled: true}

	handler := NewRouter(logger, store, store, tokenConfig, rateConfig, true)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, bearer string, body interface{}) *http.Response {
	return requestJSON(t, http.MethodPost, url, bearer, body)
}

func requestJSON(t *testing.T, method, url, bearer string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() {
		_ = resp.Body.Close()
	}()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func signupUser(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	resp := postJSON(t, srv.URL+"/auth/signup", "", api.SignupRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var authResp api.AuthResponse
	decodeBody(t, resp, &authResp)
	require.NotEmpty(t, authResp.Token)
	return authResp.Token
}

func TestIntegration_SignupLoginAndNotes(t *testing.T) {
	srv := setupTestServer(t)

	bearer := signupUser(t, srv, "alice@example.com", "password123")

	// Логин теми же учетными данными
	resp := postJSON(t, srv.URL+"/auth/login", "", api.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp api.AuthResponse
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp.Token)
	assert.Equal(t, "alice@example.com", loginResp.User.Email)

	// Пустой список
	resp = requestJSON(t, http.MethodGet, srv.URL+"/notes", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listResp api.NotesResponse
	decodeBody(t, resp, &listResp)
	assert.Empty(t, listResp.Notes)

	// Создание заметки
	resp = postJSON(t, srv.URL+"/notes", bearer, api.CreateNoteRequest{
		Title:   "first note",
		Content: "hello",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var createResp api.NoteResponse
	decodeBody(t, resp, &createResp)
	noteID := createResp.Note.ID
	require.NotEmpty(t, noteID)

	// Обновление только заголовка
	newTitle := "renamed"
	resp = requestJSON(t, http.MethodPut, srv.URL+"/notes/"+noteID, bearer, api.UpdateNoteRequest{
		Title: &newTitle,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updateResp api.NoteResponse
	decodeBody(t, resp, &updateResp)
	assert.Equal(t, "renamed", updateResp.Note.Title)
	assert.Equal(t, "hello", updateResp.Note.Content)

	// Удаление
	resp = requestJSON(t, http.MethodDelete, srv.URL+"/notes/"+noteID, bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = requestJSON(t, http.MethodGet, srv.URL+"/notes", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listResp)
	assert.Empty(t, listResp.Notes)
}

func TestIntegration_LockoutFlow(t *testing.T) {
	srv := setupTestServer(t)

	signupUser(t, srv, "bob@example.com", "password123")

	// Неудачные попытки до порога дают 401
	for i := 0; i < lockout.MaxFailedAttempts-1; i++ {
		resp := postJSON(t, srv.URL+"/auth/login", "", api.LoginRequest{
			Email:    "bob@example.com",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// Пороговая попытка блокирует аккаунт
	resp := postJSON(t, srv.URL+"/auth/login", "", api.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, http.StatusLocked, resp.StatusCode)
	var lockedResp api.LockedResponse
	decodeBody(t, resp, &lockedResp)
	assert.WithinDuration(t, time.Now().Add(lockout.LockDuration), lockedResp.LockUntil, 10*time.Second)

	// Заблокированный аккаунт отклоняет и правильный пароль
	resp = postJSON(t, srv.URL+"/auth/login", "", api.LoginRequest{
		Email:    "bob@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestIntegration_NotesIsolatedBetweenUsers(t *testing.T) {
	srv := setupTestServer(t)

	aliceToken := signupUser(t, srv, "alice@example.com", "password123")
	bobToken := signupUser(t, srv, "bob@example.com", "password123")

	resp := postJSON(t, srv.URL+"/notes", aliceToken, api.CreateNoteRequest{
		Title:   "alice note",
		Content: "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var createResp api.NoteResponse
	decodeBody(t, resp, &createResp)

	// Боб не видит заметок Алисы
	resp = requestJSON(t, http.MethodGet, srv.URL+"/notes", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listResp api.NotesResponse
	decodeBody(t, resp, &listResp)
	assert.Empty(t, listResp.Notes)

	// И не может удалить чужую заметку
	resp = requestJSON(t, http.MethodDelete, srv.URL+"/notes/"+createResp.Note.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestIntegration_NotesRequireAuth(t *testing.T) {
	srv := setupTestServer(t)

	resp := requestJSON(t, http.MethodGet, srv.URL+"/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, srv.URL+"/notes", "garbage-token", api.CreateNoteRequest{
		Title:   "x",
		Content: "y",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestIntegration_Health(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"OK"`)
}
