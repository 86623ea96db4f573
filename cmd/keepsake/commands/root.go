// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Wires subcommands and global --db/--user/--verbose/--quiet flags
package commands

import (
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	userID  string
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keepsake",
		Short: "Personal memory for an AI assistant",
		Long: `Keepsake remembers what you tell it.

It stores facts about you and the people in your life, answers questions
by reasoning over what it knows, compresses old conversation history into
rolling summaries, and adapts its personality to how you respond.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default: XDG data dir)")
	cmd.PersistentFlags().StringVar(&userID, "user", "", "User to act as (default: from KEEPSAKE_USER or \"default\")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewAskCmd(),
		NewSayCmd(),
		NewLearnCmd(),
		NewCorrectCmd(),
		NewSearchCmd(),
		NewStatsCmd(),
		NewResetCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
