package command

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/service/rag"
	"github.com/stretchr/testify/assert"
)

type echoCommand struct {
	err error
}

func (e echoCommand) Name() string        { return "echo" }
func (e echoCommand) Description() string { return "echo args" }
func (e echoCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return sessionID + ":" + args[0], nil
}

func TestRouter_Execute(t *testing.T) {
	r := New([]core.Command{echoCommand{}})

	out, ok := r.Execute(context.Background(), "s1", "plain text")
	assert.False(t, ok)
	assert.Empty(t, out)

	out, ok = r.Execute(context.Background(), "s1", "  /ECHO hello")
	assert.True(t, ok)
	assert.Equal(t, "s1:hello", out)

	out, ok = r.Execute(context.Background(), "s1", "/missing")
	assert.True(t, ok)
	assert.Contains(t, out, "Unknown command")
}

func TestRouter_CommandError(t *testing.T) {
	r := New([]core.Command{echoCommand{err: errors.New("nope")}})

	out, ok := r.Execute(context.Background(), "s1", "/echo x")
	assert.True(t, ok)
	assert.Contains(t, out, "/echo failed")
	assert.Contains(t, out, "nope")
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r := NewRouter(Deps{Store: nil})
	r.Register(echoCommand{})

	cmds := r.ListCommands()
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"echo", "help"}, names)
}

func TestFormatter_Reply(t *testing.T) {
	f := NewResponseFormatter()

	assert.Equal(t, "plain", f.Reply(&rag.Reply{Answer: "plain"}))

	out := f.Reply(&rag.Reply{
		Answer: "grounded",
		Sources: []core.RetrievedChunk{
			{Chunk: core.Chunk{Filename: "faq.txt", ChunkIndex: 2}, Score: 0.91},
		},
	})
	assert.Contains(t, out, "grounded")
	assert.Contains(t, out, "faq.txt #2 (0.91)")
}
