package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/pkg/env"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Create the runtime directory with a default .env",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")

		if _, err := os.Stat(envPath); err == nil && !forceInit {
			return fmt.Errorf("%s already exists, use --force to overwrite", envPath)
		}

		defaults, err := config.ParseDefaults()
		if err != nil {
			return fmt.Errorf("failed to build defaults: %w", err)
		}
		defaults.App.RuntimePath = runtimePath

		content, err := env.MarshalEnv(defaults)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", envPath, err)
		}

		logger.Info().Str("path", envPath).Msg("wrote default configuration")
		fmt.Fprintf(cmd.OutOrStdout(), "Set your API keys in %s, then run 'ragdesk ingest <file>' and 'ragdesk chat'.\n", envPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
