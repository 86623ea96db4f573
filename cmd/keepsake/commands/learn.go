// ABOUTME: CLI command to learn from a completed user/assistant exchange
// ABOUTME: Scores satisfaction, adapts personality, extracts and stores facts
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLearnCmd creates the learn command
func NewLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn <message> <response>",
		Short: "Learn from an exchange",
		Long: `Learn from a completed user/assistant exchange.

Scores how satisfied the user seems with the response, nudges the
personality accordingly, and extracts any new facts worth remembering.

Examples:
  keepsake learn "I work at Acme now" "Nice, congrats on the new job!"`,
		Args: cobra.ExactArgs(2),
		RunE: runLearn,
	}

	return cmd
}

func runLearn(cmd *cobra.Command, args []string) error {
	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.IngestFacts(args[0], args[1], user)
	if err != nil {
		return fmt.Errorf("learning from exchange: %w", err)
	}

	if quiet {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Learned (satisfaction %.2f, %d facts stored)\n", result.Satisfaction, result.FactsStored)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  pattern: %s/%s\n", result.Pattern.Type, result.Pattern.Context)
		fmt.Fprintf(cmd.OutOrStdout(), "  style:   %s\n", result.ResponseStyle)
	}
	for _, b := range result.NewBehaviors {
		fmt.Fprintf(cmd.OutOrStdout(), "  unlocked: %s (%s)\n", b.BehaviorID, b.Description)
	}

	return nil
}
