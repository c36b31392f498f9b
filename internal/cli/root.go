// Package cli defines the draftwatch command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draftwatch/draftwatch/internal/app"
	"github.com/draftwatch/draftwatch/internal/config"
)

var application *app.App

var rootCmd = &cobra.Command{
	Use:           "draftwatch",
	Short:         "draftwatch keeps FPL Draft league data, reports, and Discord updates in sync.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		application = app.New(cfg)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			_ = application.Logger.Sync()
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
