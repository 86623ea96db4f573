// ABOUTME: CLI command to delete all memory for a user
// ABOUTME: Requires --force; resets facts, messages, summaries, learning, behaviors
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all memory for a user",
		Long: `Delete all stored memory for the current user: facts, messages,
summaries, learning history, and unlocked behaviors. Irreversible.

Examples:
  keepsake reset --force
  keepsake --user alice reset --force`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}

	cmd.Flags().BoolVar(&resetForce, "force", false, "Actually perform the reset")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		return fmt.Errorf("refusing to reset without --force")
	}

	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := engine.ResetMemory(user); err != nil {
		return fmt.Errorf("resetting memory: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Memory reset for %s\n", user)
	}
	return nil
}
