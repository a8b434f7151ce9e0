package mock

import (
	"context"
	"sync"

	"github.com/sandevgo/ragdesk/internal/core"
)

// LLM records every instruction sequence it receives.
type LLM struct {
	CompleteFunc func(ctx context.Context, messages []core.Message, opts core.CompletionOptions) (string, error)
	Answer       string

	mu    sync.Mutex
	calls []LLMCall
}

type LLMCall struct {
	Messages []core.Message
	Options  core.CompletionOptions
}

var _ core.LLM = (*LLM)(nil)

func NewLLM(answer string) *LLM {
	return &LLM{Answer: answer}
}

func (m *LLM) Complete(ctx context.Context, messages []core.Message, opts core.CompletionOptions) (string, error) {
	cp := make([]core.Message, len(messages))
	copy(cp, messages)

	m.mu.Lock()
	m.calls = append(m.calls, LLMCall{Messages: cp, Options: opts})
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages, opts)
	}
	return m.Answer, nil
}

func (m *LLM) Calls() []LLMCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LLMCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent call, or a zero value if there was none.
func (m *LLM) LastCall() LLMCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return LLMCall{}
	}
	return m.calls[len(m.calls)-1]
}
