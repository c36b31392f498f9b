package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pointsCmd)
}

var pointsCmd = &cobra.Command{
	Use:   "points <league-id>",
	Short: "Rebuild the adjusted per-team stats for every completed gameweek.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Scoring.ProcessPoints(cmd.Context(), args[0])
	},
}
