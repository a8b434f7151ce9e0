package rag

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

type ChunkRetriever interface {
	Retrieve(ctx context.Context, query string) ([]core.RetrievedChunk, error)
}

// Reply is the outcome of one successful turn.
type Reply struct {
	Answer  string
	Sources []core.RetrievedChunk
	Mode    Mode
}

// Responder answers a query for a session, optionally grounding the model in
// retrieved document chunks, and records the exchange in the session log.
type Responder struct {
	cfg       *config.RAGConfig
	retriever ChunkRetriever
	store     core.ConversationStore
	llm       core.LLM
	locks     *sessionLocks
}

func NewResponder(
	cfg *config.RAGConfig,
	retriever ChunkRetriever,
	store core.ConversationStore,
	llm core.LLM,
) *Responder {
	r := &Responder{
		cfg:       cfg,
		retriever: retriever,
		store:     store,
		llm:       llm,
	}
	if cfg.SerializeSessions {
		r.locks = newSessionLocks()
	}
	return r
}

// Respond runs one turn. Retrieval and history failures degrade the turn; a
// model failure aborts it with core.ErrGeneration and nothing is persisted.
func (r *Responder) Respond(ctx context.Context, sessionID, query string, useRAG bool) (*Reply, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, core.ErrEmptySession
	}
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	logger := log.FromCtx(ctx).With().Str("session_id", sessionID).Logger()

	if r.locks != nil {
		unlock := r.locks.lock(sessionID)
		defer unlock()
	}

	history := r.readHistory(ctx, sessionID)

	mode := ModeConversational
	var contextText string
	var sources []core.RetrievedChunk

	if useRAG {
		mode = ModeUngrounded
		chunks := r.retrieve(ctx, query)
		// Relevant chunks were found even if none fit the budget, so the
		// model must not be told the knowledge base has nothing.
		if len(chunks) > 0 {
			var used int
			mode = ModeGrounded
			contextText, used = BuildContext(chunks, r.cfg.MaxContextLength)
			sources = chunks[:used]
		}
	}
	if sources == nil {
		sources = []core.RetrievedChunk{}
	}

	messages := buildInstructions(mode, contextText, history, query)

	genCtx, cancel := withTimeout(ctx, r.cfg.GenerationTimeout)
	answer, err := r.llm.Complete(genCtx, messages, core.CompletionOptions{
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	})
	cancel()
	if err != nil {
		logger.Error().Err(err).Str("mode", string(mode)).Msg("generation failed")
		return nil, core.ErrGeneration
	}

	r.saveExchange(ctx, sessionID, query, answer)

	logger.Debug().
		Str("mode", string(mode)).
		Int("sources", len(sources)).
		Int("history_chars", len(history)).
		Msg("turn completed")

	return &Reply{Answer: answer, Sources: sources, Mode: mode}, nil
}

func (r *Responder) readHistory(ctx context.Context, sessionID string) string {
	if r.cfg.HistoryWindow <= 0 {
		return ""
	}

	readCtx, cancel := withTimeout(ctx, r.cfg.HistoryTimeout)
	defer cancel()

	msgs, err := r.store.ReadWindow(readCtx, sessionID, r.cfg.HistoryWindow)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("session_id", sessionID).Msg("history unavailable, answering without it")
		return ""
	}
	return formatHistory(msgs)
}

func (r *Responder) retrieve(ctx context.Context, query string) []core.RetrievedChunk {
	retrieveCtx, cancel := withTimeout(ctx, r.cfg.RetrievalTimeout)
	defer cancel()

	chunks, err := r.retriever.Retrieve(retrieveCtx, query)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("retrieval failed, answering without context")
		return nil
	}
	return chunks
}

func (r *Responder) saveExchange(ctx context.Context, sessionID, query, answer string) {
	logger := log.FromCtx(ctx)

	saveCtx, cancel := withTimeout(context.WithoutCancel(ctx), r.cfg.HistoryTimeout)
	defer cancel()

	if err := r.store.Append(saveCtx, sessionID, core.RoleUser, query); err != nil {
		logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to save user message")
		return
	}
	if err := r.store.Append(saveCtx, sessionID, core.RoleAssistant, answer); err != nil {
		logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to save assistant message")
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
