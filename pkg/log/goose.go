package log

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger adapts zerolog to goose.Logger. Applied migrations are reported
// at info, the per-start "no migrations to run" chatter at debug.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msgf(trim(format), v...)
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	ev := g.logger.Debug()
	if strings.HasPrefix(format, "OK ") {
		ev = g.logger.Info()
	}
	ev.Msgf(trim(format), v...)
}
