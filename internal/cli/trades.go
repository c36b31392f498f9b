package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tradesCmd)
}

var tradesCmd = &cobra.Command{
	Use:   "trades <league-id>",
	Short: "Rebuild the trade tracker.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Trades.Track(cmd.Context(), args[0])
	},
}
