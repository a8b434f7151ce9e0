package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:          "history <session>",
	Short:        "Print the recent messages of a session",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			msgs, err := a.Sessions().ReadWindow(ctx, args[0], historyLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintf(out, "Session %s has no messages (it may have expired).\n", args[0])
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(out, "%s %s\n%s\n\n",
					ui.TitleStyle.UnsetMarginBottom().Render(m.Role),
					ui.DescStyle.Render(m.Timestamp.Local().Format("2006-01-02 15:04:05")),
					m.Content)
			}
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:          "clear <session>",
	Short:        "Delete the history of a session",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.Sessions().Clear(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cleared %s\n", ui.OKStyle.Render("✓"), args[0])
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of most recent messages; 0 prints all")
	rootCmd.AddCommand(historyCmd, clearCmd)
}
