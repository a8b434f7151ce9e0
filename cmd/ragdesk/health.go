package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/service/health"
	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:          "health",
	Short:        "Check the database, session store and vector index",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			report := a.Health().Check(ctx)
			out := cmd.OutOrStdout()

			printTitle(out, report.Status)
			for _, c := range report.Components {
				status := ui.OKStyle.Render(c.Status)
				if c.Status != health.StatusUp {
					status = ui.ErrorStyle.Render(c.Status) + " " + ui.DescStyle.Render(c.Error)
				}
				fmt.Fprintf(out, "  %-10s %s\n", c.Name, status)
			}

			if report.Status != health.StatusHealthy {
				return fmt.Errorf("ragdesk is %s", report.Status)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
