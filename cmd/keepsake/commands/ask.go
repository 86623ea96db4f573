// ABOUTME: CLI command to answer a question from stored memory
// ABOUTME: Runs semantic retrieval plus multi-strategy reasoning and prints the answer
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from memory",
		Long: `Answer a question using stored facts.

Examples:
  keepsake ask "where do I work?"
  keepsake ask "what color are my son's eyes?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	question := strings.Join(args, " ")
	answer := engine.AnswerQuestion(question, user)

	if !answer.Found {
		fmt.Fprintln(cmd.OutOrStdout(), answer.Reasoning)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Answer)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  strategy:   %s\n", answer.Strategy)
		fmt.Fprintf(cmd.OutOrStdout(), "  confidence: %.2f\n", answer.Confidence)
		fmt.Fprintf(cmd.OutOrStdout(), "  reasoning:  %s\n", answer.Reasoning)
		for _, f := range answer.FactsUsed {
			fmt.Fprintf(cmd.OutOrStdout(), "  fact: %s %s = %s\n", f.Subject, f.Attribute, f.Value)
		}
	}

	return nil
}
