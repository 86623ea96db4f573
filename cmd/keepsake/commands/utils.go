// ABOUTME: Shared setup and formatting helpers for CLI commands
// ABOUTME: Builds the engine from config and flags, consolidates output helpers
package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/rowan/keepsake/internal/config"
	"github.com/rowan/keepsake/internal/core"
	"github.com/rowan/keepsake/internal/llm"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

// openEngine loads configuration, opens storage, and builds the memory engine.
// The returned cleanup func closes the store.
func openEngine() (*core.Engine, string, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, "", nil, fmt.Errorf("loading config: %w", err)
	}

	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	user := cfg.DefaultUser
	if userID != "" {
		user = userID
	}

	if cfg.OpenAIKey == "" {
		return nil, "", nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewOpenAIClient(cfg.OpenAIKey)
	if err != nil {
		return nil, "", nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("initializing storage: %w", err)
	}

	engine, err := core.NewEngine(store, client, client)
	if err != nil {
		_ = store.Close()
		return nil, "", nil, fmt.Errorf("initializing engine: %w", err)
	}

	cleanup := func() { _ = store.Close() }
	return engine, user, cleanup, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}
