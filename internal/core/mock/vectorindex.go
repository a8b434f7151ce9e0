package mock

import (
	"context"
	"sync"

	"github.com/sandevgo/ragdesk/internal/core"
)

// VectorIndex returns a canned hit list from Search and records upserts and
// deletions.
type VectorIndex struct {
	Hits       []core.SearchHit
	SearchFunc func(ctx context.Context, vector []float32, topK int, filter core.Metadata) ([]core.SearchHit, error)
	UpsertFunc func(ctx context.Context, vectors [][]float32, ids []string, metadata []core.Metadata) error
	DeleteFunc func(ctx context.Context, documentID string) error

	mu          sync.Mutex
	searchCalls int
	lastTopK    int
	upserted    []string
	deleted     []string
}

var _ core.VectorIndex = (*VectorIndex)(nil)

func NewVectorIndex(hits ...core.SearchHit) *VectorIndex {
	return &VectorIndex{Hits: hits}
}

func (m *VectorIndex) Upsert(ctx context.Context, vectors [][]float32, ids []string, metadata []core.Metadata) error {
	if m.UpsertFunc != nil {
		if err := m.UpsertFunc(ctx, vectors, ids, metadata); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.upserted = append(m.upserted, ids...)
	m.mu.Unlock()
	return nil
}

func (m *VectorIndex) Search(ctx context.Context, vector []float32, topK int, filter core.Metadata) ([]core.SearchHit, error) {
	m.mu.Lock()
	m.searchCalls++
	m.lastTopK = topK
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, vector, topK, filter)
	}
	hits := m.Hits
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (m *VectorIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(ctx, documentID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.deleted = append(m.deleted, documentID)
	m.mu.Unlock()
	return nil
}

func (m *VectorIndex) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

func (m *VectorIndex) LastTopK() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTopK
}

func (m *VectorIndex) Upserted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.upserted...)
}

func (m *VectorIndex) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// Hit is a shorthand for building search results in tests.
func Hit(id string, score float32, filename, text string) core.SearchHit {
	return core.SearchHit{
		ID:    id,
		Score: score,
		Metadata: core.Metadata{
			core.MetaDocumentID: "doc-" + id,
			core.MetaFilename:   filename,
			core.MetaChunkText:  text,
			core.MetaChunkIndex: 0,
		},
	}
}
