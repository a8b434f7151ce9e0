package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/ragdesk/internal/core"
)

const defaultHistoryLimit = 20

type HistoryCommand struct {
	store     core.ConversationStore
	formatter *ResponseFormatter
}

func NewHistoryCommand(store core.ConversationStore) *HistoryCommand {
	return &HistoryCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *HistoryCommand) Name() string { return "history" }

func (c *HistoryCommand) Description() string {
	return "Show recent messages of this conversation"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return c.formatter.Usage("/history [n]"), nil
		}
		limit = n
	}

	msgs, err := c.store.ReadWindow(ctx, sessionID, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read history: %w", err)
	}
	if len(msgs) == 0 {
		return "No messages in this conversation yet.", nil
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Last %d messages", len(msgs))),
		c.formatter.Messages(msgs),
	), nil
}

type ClearCommand struct {
	store     core.ConversationStore
	formatter *ResponseFormatter
}

func NewClearCommand(store core.ConversationStore) *ClearCommand {
	return &ClearCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *ClearCommand) Name() string { return "clear" }

func (c *ClearCommand) Description() string { return "Forget this conversation" }

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if err := c.store.Clear(ctx, sessionID); err != nil {
		return "", fmt.Errorf("failed to clear history: %w", err)
	}
	return c.formatter.Success("Conversation cleared"), nil
}
