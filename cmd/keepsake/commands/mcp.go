// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use keepsake memory via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rowan/keepsake/internal/config"
	"github.com/rowan/keepsake/internal/core"
	"github.com/rowan/keepsake/internal/llm"
	"github.com/rowan/keepsake/internal/mcp"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs keepsake as an MCP (Model Context Protocol) server, exposing the
memory tools over stdio so an LLM agent can remember, reason, and learn
across conversations.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  keepsake mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "keepsake": {
  #       "command": "keepsake",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if userID != "" {
		cfg.DefaultUser = userID
	}

	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set - memory tools require it")
	}

	client, err := llm.NewOpenAIClient(cfg.OpenAIKey)
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	engine, err := core.NewEngine(store, client, client)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("initializing engine: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Keepsake Memory",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, engine, cfg.DefaultUser)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("keepsake MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		if err := store.Close(); err != nil {
			log.Printf("Warning: error closing storage: %v", err)
		}
		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
