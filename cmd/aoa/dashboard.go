package main

import (
	"fmt"

	"github.com/unowned-ai/aoa/pkg/app"
	"github.com/unowned-ai/aoa/pkg/tui"

	"github.com/spf13/cobra"
)

var dashboardTUIFlag bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your logs, reading list and link dumps",
	Long: `Prints three tables, most recent first: every log with its attention and first learning,
the days something was read, and the days with saved links. --tui shows them full screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()
		client, err := newClient()
		if err != nil {
			return err
		}

		dash := app.NewDashboard(client, store, logger)
		if dashboardTUIFlag {
			return tui.ShowDashboard(cmd.Context(), dash)
		}

		if err := dash.Load(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboard(dash, terminalWidth()))
		if dash.Err != "" {
			return fmt.Errorf("failed to fetch logs: %s", dash.Err)
		}
		return nil
	},
}

func initDashboardCmd() {
	dashboardCmd.Flags().BoolVar(&dashboardTUIFlag, "tui", false, "Show the dashboard as a full-screen terminal UI")
	rootCmd.AddCommand(dashboardCmd)
}
