package embedding

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/tmc/langchaingo/embeddings"
)

// Embedder adapts a langchaingo embedder to core.Embedder and rejects vectors
// whose length differs from the configured dimension.
type Embedder struct {
	embedder  embeddings.Embedder
	dimension int
	name      string
}

var _ core.Embedder = (*Embedder)(nil)

func newEmbedder(e embeddings.Embedder, dimension int, name string) *Embedder {
	return &Embedder{embedder: e, dimension: dimension, name: name}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	log.FromCtx(ctx).Debug().Str("embedder", e.name).Int("length", len(text)).Msg("embedding query")

	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if err := e.check(vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	log.FromCtx(ctx).Debug().Str("embedder", e.name).Int("count", len(texts)).Msg("embedding documents")

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embed documents: got %d vectors for %d texts", len(vecs), len(texts))
	}
	for _, v := range vecs {
		if err := e.check(v); err != nil {
			return nil, err
		}
	}
	return vecs, nil
}

func (e *Embedder) Dimension() int {
	return e.dimension
}

func (e *Embedder) check(vec []float32) error {
	if len(vec) != e.dimension {
		return fmt.Errorf("%w: model returned %d, expected %d", core.ErrDimensionMismatch, len(vec), e.dimension)
	}
	return nil
}
