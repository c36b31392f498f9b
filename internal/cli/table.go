package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tableOptimal  bool
	tableGameweek int
)

func init() {
	tableCmd.Flags().BoolVar(&tableOptimal, "optimal", false, "show the optimal-selection standings instead")
	tableCmd.Flags().IntVar(&tableGameweek, "gw", 0, "gameweek to show (default: latest completed)")
	rootCmd.AddCommand(tableCmd)
}

var tableCmd = &cobra.Command{
	Use:   "table <league-id>",
	Short: "Print the league standings.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		render := application.Reports.LeagueTable
		if tableOptimal {
			render = application.Reports.OptimalLeagueTable
		}

		out, err := render(cmd.Context(), args[0], tableGameweek)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
