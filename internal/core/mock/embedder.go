// Package mock provides hand-written test doubles for the core capability
// interfaces. Every double records its calls and can be overridden per test
// through its Func fields.
package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/sandevgo/ragdesk/internal/core"
)

const defaultDimension = 8

type Embedder struct {
	EmbedFunc      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFunc func(ctx context.Context, texts []string) ([][]float32, error)
	Dim            int

	mu         sync.Mutex
	embedCalls int
	batchCalls int
}

var _ core.Embedder = (*Embedder)(nil)

func NewEmbedder() *Embedder {
	return &Embedder{Dim: defaultDimension}
}

func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	m.mu.Unlock()

	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return DeterministicVector(text, m.Dimension()), nil
}

func (m *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()

	if m.EmbedBatchFunc != nil {
		return m.EmbedBatchFunc(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = DeterministicVector(t, m.Dimension())
	}
	return out, nil
}

func (m *Embedder) Dimension() int {
	if m.Dim <= 0 {
		return defaultDimension
	}
	return m.Dim
}

func (m *Embedder) EmbedCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls
}

func (m *Embedder) BatchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchCalls
}

// DeterministicVector derives a unit vector from the FNV hash of text, so equal
// texts always map to equal vectors.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vec := make([]float32, dim)
	var sum float64
	for i := range vec {
		seed = seed*1664525 + 1013904223
		vec[i] = float32(seed%1000)/1000.0 + 0.001
		sum += float64(vec[i]) * float64(vec[i])
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
