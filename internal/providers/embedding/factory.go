package embedding

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// noToken is sent to OpenAI-compatible services that do not authenticate.
const noToken = "none"

// NewEmbedder builds the embedding backend named by cfg. batchSize caps the
// number of texts per request.
func NewEmbedder(ctx context.Context, cfg core.EmbeddingConfig, batchSize int) (*Embedder, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetEmbeddingProvider()).
		Str("model", cfg.GetEmbeddingModel()).
		Int("dimension", cfg.GetEmbeddingDimension()).
		Msg("starting embedding provider")

	var client embeddings.EmbedderClient
	switch cfg.GetEmbeddingProvider() {
	case "openai":
		opts := []openai.Option{
			openai.WithEmbeddingModel(cfg.GetEmbeddingModel()),
		}
		token := cfg.GetEmbeddingAPIKey()
		if token == "" {
			token = noToken
		}
		opts = append(opts, openai.WithToken(token))
		if url := cfg.GetEmbeddingBaseURL(); url != "" {
			opts = append(opts, openai.WithBaseURL(url))
		}
		c, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai embedding client: %w", err)
		}
		client = c
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.GetEmbeddingModel())}
		if url := cfg.GetEmbeddingBaseURL(); url != "" {
			opts = append(opts, ollama.WithServerURL(url))
		}
		c, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama embedding client: %w", err)
		}
		client = c
	default:
		return nil, fmt.Errorf("%w: embedding provider %q", core.ErrUnsupportedProvider, cfg.GetEmbeddingProvider())
	}

	embOpts := []embeddings.Option{embeddings.WithStripNewLines(true)}
	if batchSize > 0 {
		embOpts = append(embOpts, embeddings.WithBatchSize(batchSize))
	}
	e, err := embeddings.NewEmbedder(client, embOpts...)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return newEmbedder(e, cfg.GetEmbeddingDimension(), cfg.GetEmbeddingProvider()), nil
}
