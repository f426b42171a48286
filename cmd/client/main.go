package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/gonotes/internal/client/api"
	"github.com/iudanet/gonotes/internal/client/cli"
	"github.com/iudanet/gonotes/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "gonotes-client.db", "Path to local session database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx := context.Background()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)

	var cmdErr error
	switch command {
	case "register":
		cmdErr = cli.RunRegister(ctx, apiClient, boltStorage)
	case "login":
		cmdErr = cli.RunLogin(ctx, apiClient, boltStorage)
	case "logout":
		cmdErr = cli.RunLogout(ctx, boltStorage)
	case "status":
		cmdErr = cli.RunStatus(ctx, boltStorage)
	case "add":
		cmdErr = cli.RunAdd(ctx, args[1:], apiClient, boltStorage)
	case "list":
		cmdErr = cli.RunList(ctx, apiClient, boltStorage)
	case "update":
		cmdErr = cli.RunUpdate(ctx, args[1:], apiClient, boltStorage)
	case "delete":
		cmdErr = cli.RunDelete(ctx, args[1:], apiClient, boltStorage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("gonotes Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
