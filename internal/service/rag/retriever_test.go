package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/core/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriever_FiltersByThreshold(t *testing.T) {
	index := mock.NewVectorIndex(
		mock.Hit("a", 0.9, "a.txt", "alpha"),
		mock.Hit("b", 0.75, "b.txt", "beta"),
		mock.Hit("c", 0.6, "c.txt", "gamma"),
		mock.Hit("d", 0.5, "d.txt", "delta"),
		mock.Hit("e", 0.3, "e.txt", "epsilon"),
	)
	r := NewRetriever(mock.NewEmbedder(), index, 5, 0.7)

	chunks, err := r.Retrieve(context.Background(), "what is alpha?")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "a", chunks[0].ChunkID)
	assert.Equal(t, float32(0.9), chunks[0].Score)
	assert.Equal(t, 1, chunks[0].Rank)
	assert.Equal(t, "b", chunks[1].ChunkID)
	assert.Equal(t, 2, chunks[1].Rank)
	assert.Equal(t, 5, index.LastTopK())
}

func TestRetriever_ScoreEqualToThresholdIsKept(t *testing.T) {
	index := mock.NewVectorIndex(mock.Hit("a", 0.7, "a.txt", "alpha"))
	r := NewRetriever(mock.NewEmbedder(), index, 5, 0.7)

	chunks, err := r.Retrieve(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
}

func TestRetriever_PreservesIndexOrder(t *testing.T) {
	// The index is trusted for ordering; the gate never re-ranks.
	index := mock.NewVectorIndex(
		mock.Hit("x", 0.8, "x.txt", "x"),
		mock.Hit("y", 0.95, "y.txt", "y"),
		mock.Hit("z", 0.71, "z.txt", "z"),
	)
	r := NewRetriever(mock.NewEmbedder(), index, 5, 0.7)

	chunks, err := r.Retrieve(context.Background(), "q")
	require.NoError(t, err)

	ids := make([]string, 0, len(chunks))
	for _, c := range chunks {
		ids = append(ids, c.ChunkID)
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids)
}

func TestRetriever_MapsMetadata(t *testing.T) {
	index := mock.NewVectorIndex(core.SearchHit{
		ID:    "chunk-1",
		Score: 0.88,
		Metadata: core.Metadata{
			core.MetaDocumentID: "doc-9",
			core.MetaFilename:   "handbook.pdf",
			core.MetaChunkText:  "Interviews last 45 minutes.",
			core.MetaChunkIndex: float64(3),
		},
	})
	r := NewRetriever(mock.NewEmbedder(), index, 5, 0.7)

	chunks, err := r.Retrieve(context.Background(), "how long?")
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, core.Chunk{
		ChunkID:    "chunk-1",
		DocumentID: "doc-9",
		Filename:   "handbook.pdf",
		Text:       "Interviews last 45 minutes.",
		ChunkIndex: 3,
	}, chunks[0].Chunk)
}

func TestRetriever_NoResultsIsNotAnError(t *testing.T) {
	r := NewRetriever(mock.NewEmbedder(), mock.NewVectorIndex(), 5, 0.7)

	chunks, err := r.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetriever_PropagatesFailures(t *testing.T) {
	embedErr := errors.New("embedding backend down")
	searchErr := errors.New("index down")

	t.Run("embedder", func(t *testing.T) {
		emb := mock.NewEmbedder()
		emb.EmbedFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, embedErr
		}
		index := mock.NewVectorIndex()
		r := NewRetriever(emb, index, 5, 0.7)

		_, err := r.Retrieve(context.Background(), "q")
		assert.ErrorIs(t, err, embedErr)
		assert.Zero(t, index.SearchCalls())
	})

	t.Run("index", func(t *testing.T) {
		index := mock.NewVectorIndex()
		index.SearchFunc = func(ctx context.Context, v []float32, k int, f core.Metadata) ([]core.SearchHit, error) {
			return nil, searchErr
		}
		r := NewRetriever(mock.NewEmbedder(), index, 5, 0.7)

		_, err := r.Retrieve(context.Background(), "q")
		assert.ErrorIs(t, err, searchErr)
	})
}

func TestRetriever_EmptyQuery(t *testing.T) {
	emb := mock.NewEmbedder()
	r := NewRetriever(emb, mock.NewVectorIndex(), 5, 0.7)

	_, err := r.Retrieve(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
	assert.Zero(t, emb.EmbedCalls())
}
