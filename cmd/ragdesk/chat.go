package main

import (
	"context"

	"github.com/sandevgo/ragdesk/internal/transport/cli"
	"github.com/spf13/cobra"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the knowledge base in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			rl, err := cli.NewReadLine(a.Chat(), a.cfg, chatSession)
			if err != nil {
				return err
			}
			defer rl.Shutdown(ctx)
			return rl.Start(ctx)
		})
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", cli.DefaultSessionID, "conversation session id")
	rootCmd.AddCommand(chatCmd)
}
