// ABOUTME: CLI command to display memory statistics
// ABOUTME: Shows fact counts, subjects, satisfaction, compression state, behaviors
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory statistics",
		Long:  `Display statistics about stored memory for the current user.`,
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, user, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := engine.Stats(user)
	if err != nil {
		return fmt.Errorf("collecting stats: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Memory for %s\n", user)
	fmt.Fprintf(out, "  Facts:          %d (%d subjects, avg confidence %.2f)\n",
		stats.TotalFacts, stats.UniqueSubjects, stats.AverageConfidence)
	if len(stats.Subjects) > 0 {
		fmt.Fprintf(out, "  Subjects:       %s\n", strings.Join(stats.Subjects, ", "))
	}
	fmt.Fprintf(out, "  Messages:       %d\n", stats.MessageCount)
	if stats.MessagesCompressed > 0 {
		fmt.Fprintf(out, "  Compressed:     %d messages (%d tokens)\n",
			stats.MessagesCompressed, stats.CompressionTokens)
	}
	fmt.Fprintf(out, "  Satisfaction:   %.2f\n", stats.AverageSatisfaction)
	fmt.Fprintf(out, "  Cached embeds:  %d\n", stats.EmbeddingsCached)
	if len(stats.Behaviors) > 0 {
		fmt.Fprintf(out, "  Behaviors:      %s\n", strings.Join(stats.Behaviors, ", "))
	}

	return nil
}
