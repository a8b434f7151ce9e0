package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
)

type DocumentsRepo struct {
	db *sql.DB
}

var _ core.DocumentRepository = (*DocumentsRepo)(nil)

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

// SaveDocument writes the document row and all of its chunks atomically.
func (r *DocumentsRepo) SaveDocument(ctx context.Context, doc core.DocumentMetadata, chunks []core.StoredChunk) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, filename, file_type, file_size, chunking_strategy, total_chunks, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.FileType, doc.FileSize, doc.ChunkingStrategy, doc.TotalChunks, doc.UploadedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (id, document_id, chunk_index, chunk_text, chunk_size, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.ID, doc.ID, c.ChunkIndex, c.Text, c.Size, c.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", c.ChunkIndex, err)
		}
	}

	return tx.Commit()
}

const documentColumns = `id, filename, file_type, file_size, chunking_strategy, total_chunks, uploaded_at`

func (r *DocumentsRepo) GetDocument(ctx context.Context, id string) (core.DocumentMetadata, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DocumentMetadata{}, fmt.Errorf("%w: %s", core.ErrDocumentNotFound, id)
	}
	if err != nil {
		return core.DocumentMetadata{}, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (r *DocumentsRepo) ListDocuments(ctx context.Context) ([]core.DocumentMetadata, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []core.DocumentMetadata{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *DocumentsRepo) GetChunks(ctx context.Context, documentID string) ([]core.StoredChunk, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, chunk_index, chunk_text, chunk_size, created_at
		 FROM chunks WHERE document_id = ? ORDER BY chunk_index`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	chunks := []core.StoredChunk{}
	for rows.Next() {
		var c core.StoredChunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.ChunkIndex, &c.Text, &c.Size, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// DeleteDocument removes the document; chunk rows follow through the
// foreign key cascade.
func (r *DocumentsRepo) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", core.ErrDocumentNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (core.DocumentMetadata, error) {
	var d core.DocumentMetadata
	err := s.Scan(&d.ID, &d.Filename, &d.FileType, &d.FileSize, &d.ChunkingStrategy, &d.TotalChunks, &d.UploadedAt)
	return d, err
}
