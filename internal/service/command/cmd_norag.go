package command

import (
	"context"
	"strings"

	"github.com/sandevgo/ragdesk/internal/service/rag"
)

type Answerer interface {
	Respond(ctx context.Context, sessionID, query string, useRAG bool) (*rag.Reply, error)
}

// NoRAGCommand answers from the model alone, skipping document retrieval.
type NoRAGCommand struct {
	answerer  Answerer
	formatter *ResponseFormatter
}

func NewNoRAGCommand(answerer Answerer) *NoRAGCommand {
	return &NoRAGCommand{answerer: answerer, formatter: NewResponseFormatter()}
}

func (c *NoRAGCommand) Name() string { return "norag" }

func (c *NoRAGCommand) Description() string {
	return "Ask without searching the knowledge base"
}

func (c *NoRAGCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return c.formatter.Combine(
			c.formatter.Usage("/norag <question>"),
			c.formatter.Examples([]string{"/norag tell me a joke"}),
		), nil
	}

	reply, err := c.answerer.Respond(ctx, sessionID, query, false)
	if err != nil {
		return "", err
	}
	return c.formatter.Reply(reply), nil
}
