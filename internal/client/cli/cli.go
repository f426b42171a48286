// Package cli implements the gonotes command-line client commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/iudanet/gonotes/internal/client/api"
	"github.com/iudanet/gonotes/internal/client/storage"
)

// PrintUsage выводит справку по командам
func PrintUsage() {
	fmt.Println(`Usage: gonotes-client [flags] <command> [arguments]

Commands:
  register          Create a new account
  login             Log in and cache the session token
  logout            Remove the cached session
  status            Show current session state
  add               Create a note (-title, -content)
  list              List notes, newest first
  update <id>       Update a note (-title, -content)
  delete <id>       Delete a note

Flags:
  -server URL       Server base URL (default http://localhost:8080)
  -db PATH          Path to local session database`)
}

// promptLine читает строку из stdin с приглашением
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword читает пароль без эха
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}

// promptCredentials спрашивает email и пароль
func promptCredentials() (email, password string, err error) {
	email, err = promptLine("Email: ")
	if err != nil {
		return "", "", err
	}

	password, err = promptPassword("Password: ")
	if err != nil {
		return "", "", err
	}

	return email, password, nil
}

// requireSession загружает сессию и настраивает токен в API клиенте
func requireSession(ctx context.Context, apiClient *api.Client, store storage.SessionStorage) (*storage.SessionData, error) {
	session, err := store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, fmt.Errorf("not logged in, run 'gonotes-client login' first")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	apiClient.SetToken(session.Token)
	return session, nil
}
