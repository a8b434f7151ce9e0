package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/sqlite"
)

var metadataKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// VectorsRepo is the default vector index. Embeddings are stored as BLOBs and
// ranked with the cosine_similarity function registered by pkg/sqlite.
type VectorsRepo struct {
	db        *sql.DB
	dimension int
}

var _ core.VectorIndex = (*VectorsRepo)(nil)

func NewVectorsRepo(db *sql.DB, dimension int) *VectorsRepo {
	return &VectorsRepo{db: db, dimension: dimension}
}

func (r *VectorsRepo) Upsert(ctx context.Context, vectors [][]float32, ids []string, metadata []core.Metadata) error {
	if len(vectors) != len(ids) || len(ids) != len(metadata) {
		return fmt.Errorf("upsert: %d vectors, %d ids, %d metadata", len(vectors), len(ids), len(metadata))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunk_vectors (chunk_id, document_id, embedding, metadata) VALUES (?, ?, ?, ?)
		 ON CONFLICT (chunk_id) DO UPDATE SET
		   document_id = excluded.document_id,
		   embedding = excluded.embedding,
		   metadata = excluded.metadata`)
	if err != nil {
		return fmt.Errorf("failed to prepare vector upsert: %w", err)
	}
	defer stmt.Close()

	for i, vec := range vectors {
		if r.dimension > 0 && len(vec) != r.dimension {
			return fmt.Errorf("%w: vector %s has %d, index has %d", core.ErrDimensionMismatch, ids[i], len(vec), r.dimension)
		}
		blob, err := sqlite.EncodeVector(vec)
		if err != nil {
			return err
		}
		meta, err := json.Marshal(metadata[i])
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, ids[i], metadata[i].String(core.MetaDocumentID), blob, string(meta)); err != nil {
			return fmt.Errorf("failed to upsert vector %s: %w", ids[i], err)
		}
	}

	return tx.Commit()
}

func (r *VectorsRepo) Search(ctx context.Context, vector []float32, topK int, filter core.Metadata) ([]core.SearchHit, error) {
	if topK <= 0 {
		return nil, nil
	}
	if r.dimension > 0 && len(vector) != r.dimension {
		return nil, fmt.Errorf("%w: query has %d, index has %d", core.ErrDimensionMismatch, len(vector), r.dimension)
	}
	blob, err := sqlite.EncodeVector(vector)
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  = []any{blob}
	)
	for k, v := range filter {
		if !metadataKey.MatchString(k) {
			return nil, fmt.Errorf("invalid metadata filter key %q", k)
		}
		if k == core.MetaDocumentID {
			where = append(where, "document_id = ?")
		} else {
			where = append(where, "json_extract(metadata, ?) = ?")
			args = append(args, "$."+k)
		}
		args = append(args, v)
	}

	query := `SELECT chunk_id, metadata, cosine_similarity(embedding, ?) AS score FROM chunk_vectors`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY score DESC, chunk_id LIMIT ?`
	args = append(args, topK)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	var hits []core.SearchHit
	for rows.Next() {
		var (
			hit   core.SearchHit
			meta  string
			score float64
		)
		if err := rows.Scan(&hit.ID, &meta, &score); err != nil {
			return nil, fmt.Errorf("failed to scan vector hit: %w", err)
		}
		if err := json.Unmarshal([]byte(meta), &hit.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of %s: %w", hit.ID, err)
		}
		hit.Score = float32(score)
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (r *VectorsRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chunk_vectors WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to delete vectors: %w", err)
	}
	return nil
}

func (r *VectorsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
