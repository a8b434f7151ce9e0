package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/core/mock"
	"github.com/sandevgo/ragdesk/internal/service/booking"
	"github.com/sandevgo/ragdesk/internal/service/command"
	"github.com/sandevgo/ragdesk/internal/service/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModels struct{}

func (stubModels) Models(ctx context.Context) ([]core.Model, error) {
	return []core.Model{{ID: "gpt-4o-mini"}, {ID: "gpt-4o"}}, nil
}

type fixture struct {
	store    *mock.ConversationStore
	llm      *mock.LLM
	index    *mock.VectorIndex
	bookings *mock.BookingRepository
	svc      *Service
}

func newFixture(t *testing.T, hits ...core.SearchHit) *fixture {
	t.Helper()
	f := &fixture{
		store:    mock.NewConversationStore(),
		llm:      mock.NewLLM("the answer"),
		index:    mock.NewVectorIndex(hits...),
		bookings: mock.NewBookingRepository(),
	}

	cfg := config.DefaultRAGConfig()
	responder := rag.NewResponder(cfg, rag.NewRetriever(mock.NewEmbedder(), f.index, cfg.TopK, cfg.SimilarityThreshold), f.store, f.llm)

	llmCfg := &config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"}
	router := command.NewRouter(command.Deps{
		Provider: llmCfg,
		Models:   stubModels{},
		Store:    f.store,
		Answerer: responder,
		Booker:   booking.NewService(f.bookings),
	})
	f.svc = NewService(router, responder, rag.NewKeywordClassifier())
	return f
}

func TestHandle_PlainMessageUsesRetrieval(t *testing.T) {
	f := newFixture(t, mock.Hit("a", 0.9, "faq.txt", "Office opens at 9."))

	out, err := f.svc.Handle(context.Background(), "s1", "When does the office open?")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "the answer"))
	assert.Contains(t, out, "Sources")
	assert.Contains(t, out, "faq.txt")
	assert.Equal(t, 1, f.index.SearchCalls())
}

func TestHandle_BookingHint(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Handle(context.Background(), "s1", "Can I schedule an interview?")
	require.NoError(t, err)
	assert.Contains(t, out, "/book")

	out, err = f.svc.Handle(context.Background(), "s1", "What is the dress code?")
	require.NoError(t, err)
	assert.NotContains(t, out, "/book")
}

func TestHandle_GenerationFailure(t *testing.T) {
	f := newFixture(t)
	f.llm.CompleteFunc = func(ctx context.Context, m []core.Message, o core.CompletionOptions) (string, error) {
		return "", errors.New("boom")
	}

	_, err := f.svc.Handle(context.Background(), "s1", "hi")
	assert.ErrorIs(t, err, core.ErrGeneration)
}

func TestHandle_NoRAGCommand(t *testing.T) {
	f := newFixture(t, mock.Hit("a", 0.9, "faq.txt", "Office opens at 9."))

	out, err := f.svc.Handle(context.Background(), "s1", "/norag tell me a joke")
	require.NoError(t, err)
	assert.Equal(t, "the answer", out)
	assert.Zero(t, f.index.SearchCalls())

	out, err = f.svc.Handle(context.Background(), "s1", "/norag")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage")
}

func TestHandle_HistoryAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.svc.Handle(ctx, "s1", "/history")
	require.NoError(t, err)
	assert.Contains(t, out, "No messages")

	_, err = f.svc.Handle(ctx, "s1", "first question")
	require.NoError(t, err)

	out, err = f.svc.Handle(ctx, "s1", "/history 1")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 1 messages")
	assert.Contains(t, out, "the answer")
	assert.NotContains(t, out, "first question")

	out, err = f.svc.Handle(ctx, "s1", "/history zero")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage")

	out, err = f.svc.Handle(ctx, "s1", "/clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")
	assert.Empty(t, f.store.Messages("s1"))
}

func TestHandle_BookCommand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.svc.Handle(ctx, "s1", "/book Ada Lovelace | ada@example.com | 2026-11-02 | 10:30 | video")
	require.NoError(t, err)
	assert.Contains(t, out, "Interview requested")

	list, err := f.bookings.ListBookings(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "video", list[0].Notes)

	out, err = f.svc.Handle(ctx, "s1", "/book Ada | not-an-email | 2026-11-02 | 10:30")
	require.NoError(t, err)
	assert.Contains(t, out, "invalid booking")

	out, err = f.svc.Handle(ctx, "s1", "/book just a name")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage")
}

func TestHandle_HelpAndUnknown(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Handle(context.Background(), "s1", "/help")
	require.NoError(t, err)
	for _, name := range []string{"/book", "/clear", "/help", "/history", "/models", "/norag"} {
		assert.Contains(t, out, name)
	}

	out, err = f.svc.Handle(context.Background(), "s1", "/nope")
	require.NoError(t, err)
	assert.Contains(t, out, "Unknown command: /nope")
}

func TestHandle_ModelsCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Handle(context.Background(), "s1", "/models")
	require.NoError(t, err)
	assert.Contains(t, out, "`gpt-4o`")
	assert.Contains(t, out, "openai")
}
