package main

import (
	"context"
	"os"
	"strconv"

	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug    bool
	jsonLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "ragdesk",
	Short: "RAGDesk: document-grounded chat assistant",
	Long:  `RAGDesk answers questions from your documents, remembers conversations and takes interview bookings.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "log one JSON object per line")
}

// setupLogger loads the runtime .env first so LOG_JSON and RAGDESK_DEBUG set
// there are honoured.
func setupLogger(ctx context.Context) (context.Context, func()) {
	envErr := loadEnv(config.GetRuntimePath())

	envJSON, _ := strconv.ParseBool(os.Getenv("LOG_JSON"))
	ctx, flush := log.NewContextWithOptions(ctx, log.Options{
		Debug: debug || config.IsDebug(),
		JSON:  jsonLogs || envJSON,
	})

	if envErr != nil {
		log.FromCtx(ctx).Warn().Err(envErr).Msg("failed to load .env file")
	}
	return ctx, flush
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}{{if .HasAvailableInheritedFlags}}{{StyleTitle "GLOBAL FLAGS"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
