package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <league-id>",
	Short: "Compare the remote transactions feed against the stored snapshot and update on change.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Change.CheckForUpdates(cmd.Context(), args[0])
	},
}
