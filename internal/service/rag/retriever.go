package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

// Retriever embeds a query, runs a top-k search and keeps only the hits whose
// score reaches the threshold. Hits keep the order returned by the index.
type Retriever struct {
	embedder  core.Embedder
	index     core.VectorIndex
	topK      int
	threshold float32
}

func NewRetriever(embedder core.Embedder, index core.VectorIndex, topK int, threshold float32) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{
		embedder:  embedder,
		index:     index,
		topK:      topK,
		threshold: threshold,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string) ([]core.RetrievedChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.index.Search(ctx, vec, r.topK, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	chunks := filterByThreshold(hits, r.threshold)

	log.FromCtx(ctx).Debug().
		Int("hits", len(hits)).
		Int("relevant", len(chunks)).
		Float32("threshold", r.threshold).
		Msg("retrieved chunks")

	return chunks, nil
}

func filterByThreshold(hits []core.SearchHit, threshold float32) []core.RetrievedChunk {
	chunks := make([]core.RetrievedChunk, 0, len(hits))
	for i, h := range hits {
		if h.Score < threshold {
			continue
		}
		chunks = append(chunks, core.RetrievedChunk{
			Chunk: h.ToChunk(),
			Score: h.Score,
			Rank:  i + 1,
		})
	}
	return chunks
}
