package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	graphNoOpen bool
	graphTrades bool
)

func init() {
	graphCmd.Flags().BoolVar(&graphNoOpen, "no-open", false, "write the page without opening it")
	graphCmd.Flags().BoolVar(&graphTrades, "trades", false, "render per-trade player performance instead of league positions")
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph <league-id>",
	Short: "Render the league-position progression or trade-performance page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		open := application.Config.OpenViewer && !graphNoOpen
		render := application.Graphs.RenderProgression
		if graphTrades {
			render = application.Graphs.RenderTradePerformance
		}
		path, err := render(cmd.Context(), args[0], open)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
