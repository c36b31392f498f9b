package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:       "report <waivers|trades> <league-id>",
	Short:     "Print the full waiver or trade history report.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"waivers", "trades"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			out string
			err error
		)
		switch args[0] {
		case "waivers":
			out, err = application.Reports.WaiverReport(cmd.Context(), args[1])
		case "trades":
			out, err = application.Reports.TradeReport(cmd.Context(), args[1])
		default:
			return fmt.Errorf("unknown report %q: expected waivers or trades", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
