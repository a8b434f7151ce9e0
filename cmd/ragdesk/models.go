package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:          "models",
	Short:        "List the models offered by the configured provider",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			cfg := a.LLMConfig()
			models, err := a.Provider().Models(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("%s models", cfg.GetProvider()))
			for _, m := range models {
				marker := " "
				if m.ID == cfg.GetModel() {
					marker = ui.OKStyle.Render("*")
				}
				ctxLen := ""
				if m.ContextLength > 0 {
					ctxLen = ui.DescStyle.Render(fmt.Sprintf("%d ctx", m.ContextLength))
				}
				fmt.Fprintf(out, "%s %-48s %s\n", marker, m.ID, ctxLen)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
