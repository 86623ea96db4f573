// ABOUTME: CLI command for semantic fact search
// ABOUTME: Prints facts ranked by similarity to the query
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored facts",
		Long: `Search stored facts by semantic similarity.

Examples:
  keepsake search "where I studied"
  keepsake search --limit 3 "drinks"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", searchLimit)
	}

	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	query := strings.Join(args, " ")
	results, err := engine.SearchFacts(query, user, searchLimit)
	if err != nil {
		return fmt.Errorf("searching facts: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching facts.")
		}
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f  %s %s = %s\n",
			r.Similarity, r.Fact.Subject, r.Fact.Attribute, r.Fact.Value)
	}
	return nil
}
