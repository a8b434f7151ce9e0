package log

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// BadgerLogger adapts zerolog to badger.Logger. Badger is chatty at info
// level, so its info output is demoted to debug.
type BadgerLogger struct {
	logger zerolog.Logger
}

func NewBadgerLoggerFromCtx(ctx context.Context) *BadgerLogger {
	return &BadgerLogger{
		logger: FromCtx(ctx).With().Str("component", "badger").Logger(),
	}
}

func (b *BadgerLogger) Errorf(format string, v ...interface{}) {
	b.logger.Error().Msgf(trim(format), v...)
}

func (b *BadgerLogger) Warningf(format string, v ...interface{}) {
	b.logger.Warn().Msgf(trim(format), v...)
}

func (b *BadgerLogger) Infof(format string, v ...interface{}) {
	b.logger.Debug().Msgf(trim(format), v...)
}

func (b *BadgerLogger) Debugf(format string, v ...interface{}) {
	b.logger.Trace().Msgf(trim(format), v...)
}

func trim(format string) string {
	return strings.TrimRight(format, "\n")
}
