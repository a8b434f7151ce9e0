package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/sandevgo/ragdesk/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the RAGDesk services",
	Long:  `Starts the configured chat transports (Telegram, CLI) and background maintenance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting ragdesk")

		a := newApp(ctx)
		services := a.Services(cancel)

		srv.StartServices(ctx, services, cancel)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("ragdesk has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
