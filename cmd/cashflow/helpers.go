package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/config"
	"github.com/finloom/cashflow-copilot/internal/llm"
	"github.com/finloom/cashflow-copilot/internal/model"
	"github.com/finloom/cashflow-copilot/internal/storage"
)

// initStorage initializes the storage layer with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/cashflow/cashflow.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// createLLMClient creates an LLM client from the configured provider.
// Shared by every command that needs advice or classification fallback.
func createLLMClient() (llm.Client, error) {
	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, err
	}
	return llm.NewClient(cfg)
}

// resolveUser looks up the user named by the --user flag.
func resolveUser(ctx context.Context, store *storage.SQLiteStorage, username string) (*model.User, error) {
	if username == "" {
		username = viper.GetString("user")
	}
	if username == "" {
		return nil, fmt.Errorf("no user specified: pass --user or set CASHFLOW_USER")
	}

	user, err := store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("user %q not found, run 'cashflow register %s' first", username, username), err)
	}
	return user, nil
}
