package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	clientapi "github.com/iudanet/gonotes/internal/client/api"
	"github.com/iudanet/gonotes/internal/client/storage"
	"github.com/iudanet/gonotes/pkg/api"
)

// RunRegister регистрирует нового пользователя и сохраняет сессию
func RunRegister(ctx context.Context, apiClient *clientapi.Client, store storage.SessionStorage) error {
	email, password, err := promptCredentials()
	if err != nil {
		return err
	}

	resp, err := apiClient.Signup(ctx, api.SignupRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	if err := saveSession(ctx, store, resp); err != nil {
		return err
	}

	fmt.Printf("Registered as %s\n", resp.User.Email)
	return nil
}

// RunLogin выполняет вход и сохраняет сессию
func RunLogin(ctx context.Context, apiClient *clientapi.Client, store storage.SessionStorage) error {
	email, password, err := promptCredentials()
	if err != nil {
		return err
	}

	resp, err := apiClient.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	if err := saveSession(ctx, store, resp); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", resp.User.Email)
	return nil
}

// RunLogout удаляет сохраненную сессию
func RunLogout(ctx context.Context, store storage.SessionStorage) error {
	if err := store.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Println("Not logged in")
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Println("Logged out")
	return nil
}

// RunStatus показывает состояние текущей сессии
func RunStatus(ctx context.Context, store storage.SessionStorage) error {
	session, err := store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Println("Not logged in")
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	expires := time.Unix(session.ExpiresAt, 0)
	if expires.Before(time.Now()) {
		fmt.Printf("Session for %s expired at %s, log in again\n", session.Email, expires.Format(time.RFC3339))
		return nil
	}

	fmt.Printf("Logged in as %s (token valid until %s)\n", session.Email, expires.Format(time.RFC3339))
	return nil
}

// RunAdd создает новую заметку
func RunAdd(ctx context.Context, args []string, apiClient *clientapi.Client, store storage.SessionStorage) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "Note title (required)")
	content := fs.String("content", "", "Note content (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := requireSession(ctx, apiClient, store); err != nil {
		return err
	}

	resp, err := apiClient.CreateNote(ctx, api.CreateNoteRequest{Title: *title, Content: *content})
	if err != nil {
		return err
	}

	fmt.Printf("Created note %s\n", resp.Note.ID)
	return nil
}

// RunList выводит заметки пользователя, новые первыми
func RunList(ctx context.Context, apiClient *clientapi.Client, store storage.SessionStorage) error {
	if _, err := requireSession(ctx, apiClient, store); err != nil {
		return err
	}

	resp, err := apiClient.ListNotes(ctx)
	if err != nil {
		return err
	}

	if len(resp.Notes) == 0 {
		fmt.Println("No notes")
		return nil
	}

	for _, note := range resp.Notes {
		fmt.Printf("%s  %s  %s\n", note.ID, note.CreatedAt.Format("2006-01-02 15:04"), note.Title)
	}
	return nil
}

// RunUpdate обновляет заметку; не указанное поле не меняется
func RunUpdate(ctx context.Context, args []string, apiClient *clientapi.Client, store storage.SessionStorage) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	content := fs.String("content", "", "New content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: update [-title ...] [-content ...] <note-id>")
	}
	noteID := fs.Arg(0)

	req := api.UpdateNoteRequest{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			req.Title = title
		case "content":
			req.Content = content
		}
	})
	if req.Title == nil && req.Content == nil {
		return fmt.Errorf("nothing to update, pass -title and/or -content")
	}

	if _, err := requireSession(ctx, apiClient, store); err != nil {
		return err
	}

	resp, err := apiClient.UpdateNote(ctx, noteID, req)
	if err != nil {
		return err
	}

	fmt.Printf("Updated note %s\n", resp.Note.ID)
	return nil
}

// RunDelete удаляет заметку
func RunDelete(ctx context.Context, args []string, apiClient *clientapi.Client, store storage.SessionStorage) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: delete <note-id>")
	}
	noteID := args[0]

	if _, err := requireSession(ctx, apiClient, store); err != nil {
		return err
	}

	if err := apiClient.DeleteNote(ctx, noteID); err != nil {
		return err
	}

	fmt.Printf("Deleted note %s\n", noteID)
	return nil
}

// saveSession сохраняет сессию после signup/login
// Срок действия берем из exp claim токена (без проверки подписи:
// подпись проверяет сервер, клиенту нужен только срок)
func saveSession(ctx context.Context, store storage.SessionStorage, resp *api.AuthResponse) error {
	session := &storage.SessionData{
		UserID: resp.User.ID,
		Email:  resp.User.Email,
		Token:  resp.Token,
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(resp.Token, &claims); err == nil && claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Unix()
	}

	if err := store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
