package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

// runWithApp is the common body of the one-shot commands.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var flushLog func()
	ctx, flushLog = setupLogger(ctx)
	defer flushLog()

	a := newApp(ctx)
	defer a.Close()

	return fn(ctx, a)
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, ui.TitleStyle.Render(title))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", ui.DescStyle.Render(fmt.Sprintf("%-12s", label)), value)
}
