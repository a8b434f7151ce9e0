package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	dim int
	err error
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.dim)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return make([]float32, f.dim), nil
}

func TestEmbedder_DimensionCheck(t *testing.T) {
	ctx := context.Background()

	ok := newEmbedder(&fakeEmbedder{dim: 4}, 4, "fake")
	vec, err := ok.Embed(ctx, "q")
	require.NoError(t, err)
	assert.Len(t, vec, 4)

	vecs, err := ok.EmbedBatch(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)

	bad := newEmbedder(&fakeEmbedder{dim: 3}, 4, "fake")
	_, err = bad.Embed(ctx, "q")
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = bad.EmbedBatch(ctx, []string{"a"})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestEmbedder_EmptyBatch(t *testing.T) {
	e := newEmbedder(&fakeEmbedder{err: errors.New("must not be called")}, 4, "fake")
	vecs, err := e.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestEmbedder_PropagatesErrors(t *testing.T) {
	backendErr := errors.New("backend down")
	e := newEmbedder(&fakeEmbedder{err: backendErr}, 4, "fake")

	_, err := e.Embed(context.Background(), "q")
	assert.ErrorIs(t, err, backendErr)
}

func TestNewEmbedder_OpenAICompatible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		var req struct {
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type item struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			data[i] = item{Object: "embedding", Embedding: []float32{0.1, 0.2, 0.3}, Index: i}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data, "model": "test"})
	}))
	defer srv.Close()

	cfg := &config.EmbeddingConfig{Provider: "openai", Model: "test", BaseURL: srv.URL, Dimension: 3}
	e, err := NewEmbedder(context.Background(), cfg, 2)
	require.NoError(t, err)

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 3, e.Dimension())
}

func TestNewEmbedder_Unsupported(t *testing.T) {
	_, err := NewEmbedder(context.Background(), &config.EmbeddingConfig{Provider: "cohere", Dimension: 3}, 0)
	assert.ErrorIs(t, err, core.ErrUnsupportedProvider)
}
