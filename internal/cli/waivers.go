package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(waiversCmd)
}

var waiversCmd = &cobra.Command{
	Use:   "waivers <league-id>",
	Short: "Rebuild the waiver and free-agent tracker.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Waivers.Track(cmd.Context(), args[0])
	},
}
