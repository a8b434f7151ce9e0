// Package memory is an in-process vector index for tests and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/vecmath"
)

type entry struct {
	vector   []float32
	metadata core.Metadata
}

type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]entry
}

var _ core.VectorIndex = (*Index)(nil)

// NewIndex accepts vectors of any length when dimension is zero.
func NewIndex(dimension int) *Index {
	return &Index{dimension: dimension, entries: make(map[string]entry)}
}

func (x *Index) Upsert(ctx context.Context, vectors [][]float32, ids []string, metadata []core.Metadata) error {
	if len(vectors) != len(ids) || len(ids) != len(metadata) {
		return fmt.Errorf("upsert: %d vectors, %d ids, %d metadata", len(vectors), len(ids), len(metadata))
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for i, v := range vectors {
		if x.dimension > 0 && len(v) != x.dimension {
			return fmt.Errorf("%w: vector %s has %d, index has %d", core.ErrDimensionMismatch, ids[i], len(v), x.dimension)
		}
	}
	for i, v := range vectors {
		x.entries[ids[i]] = entry{
			vector:   append([]float32(nil), v...),
			metadata: maps.Clone(metadata[i]),
		}
	}
	return nil
}

// Search scans every entry. Ties keep id order so results are stable.
func (x *Index) Search(ctx context.Context, vector []float32, topK int, filter core.Metadata) ([]core.SearchHit, error) {
	if topK <= 0 {
		return nil, nil
	}
	if x.dimension > 0 && len(vector) != x.dimension {
		return nil, fmt.Errorf("%w: query has %d, index has %d", core.ErrDimensionMismatch, len(vector), x.dimension)
	}

	x.mu.RLock()
	hits := make([]core.SearchHit, 0, len(x.entries))
	for id, e := range x.entries {
		if !matches(e.metadata, filter) {
			continue
		}
		hits = append(hits, core.SearchHit{
			ID:       id,
			Score:    vecmath.Cosine(vector, e.vector),
			Metadata: maps.Clone(e.metadata),
		})
	}
	x.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (x *Index) DeleteByDocument(ctx context.Context, documentID string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for id, e := range x.entries {
		if e.metadata.String(core.MetaDocumentID) == documentID {
			delete(x.entries, id)
		}
	}
	return nil
}

func (x *Index) Ping(ctx context.Context) error {
	return nil
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

func matches(m, filter core.Metadata) bool {
	for k, v := range filter {
		if m[k] != v {
			return false
		}
	}
	return true
}
