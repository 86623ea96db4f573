// ABOUTME: CLI command to record an inbound user message
// ABOUTME: Classifies the message and reports the derived generation settings
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSayCmd creates the say command
func NewSayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "say <message>",
		Short: "Record a message",
		Long: `Record a user message.

The message is classified, generation settings for the reply are derived
from the current personality, and old history is compressed when the
conversation grows past the threshold.

Examples:
  keepsake say "I'm so stressed about my deadline"
  keepsake say "lol that was great"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSay,
	}

	return cmd
}

func runSay(cmd *cobra.Command, args []string) error {
	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	message := strings.Join(args, " ")
	result, err := engine.RecordMessage(message, user)
	if err != nil {
		return fmt.Errorf("recording message: %w", err)
	}

	if quiet {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded (%s/%s)\n", result.Pattern.Type, result.Pattern.Context)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  temperature: %.2f\n", result.Settings.Temperature)
		fmt.Fprintf(cmd.OutOrStdout(), "  max tokens:  %d\n", result.Settings.MaxTokens)
		if result.Compressed {
			fmt.Fprintln(cmd.OutOrStdout(), "  compressed old history into summary")
		}
		if result.Context.HasSummary {
			fmt.Fprintf(cmd.OutOrStdout(), "  summary (%dh old): %s\n", result.Context.AgeHours, truncate(result.Context.Summary, 80))
		}
	}

	return nil
}
