package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(notifyCmd)
}

var notifyCmd = &cobra.Command{
	Use:   "notify <league-id>",
	Short: "Deliver any undelivered updates to the configured Discord webhooks.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Notify.SendPending(cmd.Context(), args[0])
	},
}
