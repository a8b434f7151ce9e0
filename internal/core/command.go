package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

// Command is a slash command available inside chat transports.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

// ChatHandler turns one line of user input into a markdown reply.
type ChatHandler interface {
	Handle(ctx context.Context, sessionID, input string) (string, error)
}
