// ABOUTME: CLI command to correct a stored fact
// ABOUTME: Replaces a fact's value in place; the old value is no longer retrievable
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var correctSubject string

// NewCorrectCmd creates the correct command
func NewCorrectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct <attribute> <value>",
		Short: "Correct a stored fact",
		Long: `Correct the value of a stored fact.

The fact keeps its identity; only its value changes. The old value can
no longer be retrieved afterwards.

Examples:
  keepsake correct workplace "Initech"
  keepsake correct --subject son eye_color "green"`,
		Args: cobra.ExactArgs(2),
		RunE: runCorrect,
	}

	cmd.Flags().StringVar(&correctSubject, "subject", "", "Subject the fact is about (default: user)")

	return cmd
}

func runCorrect(cmd *cobra.Command, args []string) error {
	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	correction, err := engine.CorrectFact(args[0], args[1], user, correctSubject)
	if err != nil {
		return fmt.Errorf("correcting fact: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s: %q → %q\n",
			correction.Subject, correction.Attribute, correction.OldValue, correction.NewValue)
	}
	return nil
}
