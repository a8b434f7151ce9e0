// Package chat is the entry point shared by the chat transports: slash
// commands go to the command router, everything else to the responder.
package chat

import (
	"context"
	"errors"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/service/command"
	"github.com/sandevgo/ragdesk/pkg/log"
)

const bookingHint = "_Looking to book an interview? Use `/book name | email | YYYY-MM-DD | HH:MM | notes`._"

type Service struct {
	router    core.CmdRouter
	answerer  command.Answerer
	intent    core.IntentClassifier
	formatter *command.ResponseFormatter
}

func NewService(router core.CmdRouter, answerer command.Answerer, intent core.IntentClassifier) *Service {
	return &Service{
		router:    router,
		answerer:  answerer,
		intent:    intent,
		formatter: command.NewResponseFormatter(),
	}
}

// Handle returns the markdown reply for one user input.
func (s *Service) Handle(ctx context.Context, sessionID, input string) (string, error) {
	if out, ok := s.router.Execute(ctx, sessionID, input); ok {
		return out, nil
	}

	reply, err := s.answerer.Respond(ctx, sessionID, input, true)
	if err != nil {
		if !errors.Is(err, core.ErrEmptyQuery) {
			log.FromCtx(ctx).Error().Err(err).Str("session_id", sessionID).Msg("chat turn failed")
		}
		return "", err
	}

	out := s.formatter.Reply(reply)
	if s.intent != nil && s.intent.IsBookingIntent(input) {
		out = s.formatter.Combine(out, bookingHint)
	}
	return out, nil
}
