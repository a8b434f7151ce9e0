package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testDocument(id string, chunks int, at time.Time) (core.DocumentMetadata, []core.StoredChunk) {
	doc := core.DocumentMetadata{
		ID:               id,
		Filename:         id + ".txt",
		FileType:         "txt",
		FileSize:         1024,
		ChunkingStrategy: "fixed",
		TotalChunks:      chunks,
		UploadedAt:       at,
	}
	stored := make([]core.StoredChunk, chunks)
	for i := range stored {
		stored[i] = core.StoredChunk{
			ID:         id + "-c" + string(rune('0'+i)),
			DocumentID: id,
			ChunkIndex: i,
			Text:       "chunk text",
			Size:       10,
			CreatedAt:  at,
		}
	}
	return doc, stored
}

func TestDocumentsRepo_SaveGetList(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentsRepo(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	older, olderChunks := testDocument("old", 2, now.Add(-time.Hour))
	newer, newerChunks := testDocument("new", 3, now)
	require.NoError(t, repo.SaveDocument(ctx, older, olderChunks))
	require.NoError(t, repo.SaveDocument(ctx, newer, newerChunks))

	got, err := repo.GetDocument(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "new.txt", got.Filename)
	assert.Equal(t, 3, got.TotalChunks)
	assert.True(t, now.Equal(got.UploadedAt))

	docs, err := repo.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)

	chunks, err := repo.GetChunks(ctx, "new")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
	}
}

func TestDocumentsRepo_EmptyList(t *testing.T) {
	docs, err := NewDocumentsRepo(newTestDB(t)).ListDocuments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocumentsRepo_SaveIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentsRepo(newTestDB(t))

	doc, chunks := testDocument("dup", 2, time.Now())
	chunks[1].ChunkIndex = chunks[0].ChunkIndex

	require.Error(t, repo.SaveDocument(ctx, doc, chunks))

	_, err := repo.GetDocument(ctx, "dup")
	assert.ErrorIs(t, err, core.ErrDocumentNotFound)
}

func TestDocumentsRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentsRepo(newTestDB(t))

	doc, chunks := testDocument("d1", 2, time.Now())
	require.NoError(t, repo.SaveDocument(ctx, doc, chunks))

	require.NoError(t, repo.DeleteDocument(ctx, "d1"))

	remaining, err := repo.GetChunks(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, repo.DeleteDocument(ctx, "d1"), core.ErrDocumentNotFound)
}

func TestBookingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingsRepo(newTestDB(t))
	now := time.Now().UTC()

	for i, session := range []string{"s1", "s2", "s1"} {
		require.NoError(t, repo.SaveBooking(ctx, core.Booking{
			ID:            string(rune('a' + i)),
			SessionID:     session,
			Name:          "Ada",
			Email:         "ada@example.com",
			PreferredDate: "2026-11-02",
			PreferredTime: "10:30",
			Status:        core.BookingStatusPending,
			CreatedAt:     now.Add(time.Duration(i) * time.Minute),
			UpdatedAt:     now,
		}))
	}

	all, err := repo.ListBookings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	s1, err := repo.ListBookings(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, s1, 2)
	assert.Equal(t, "c", s1[0].ID)
	assert.Equal(t, core.BookingStatusPending, s1[0].Status)
}

func TestVectorsRepo_SearchRanksByCosine(t *testing.T) {
	ctx := context.Background()
	repo := NewVectorsRepo(newTestDB(t), 3)

	vectors := [][]float32{{1, 0, 0}, {0.8, 0.6, 0}, {0, 0, 1}}
	ids := []string{"x", "y", "z"}
	meta := []core.Metadata{
		{core.MetaDocumentID: "d1", core.MetaFilename: "a.txt", core.MetaChunkIndex: 0, core.MetaFileType: "txt"},
		{core.MetaDocumentID: "d1", core.MetaFilename: "a.txt", core.MetaChunkIndex: 1, core.MetaFileType: "txt"},
		{core.MetaDocumentID: "d2", core.MetaFilename: "b.pdf", core.MetaChunkIndex: 0, core.MetaFileType: "pdf"},
	}
	require.NoError(t, repo.Upsert(ctx, vectors, ids, meta))

	hits, err := repo.Search(ctx, []float32{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "x", hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
	assert.Equal(t, "y", hits[1].ID)
	assert.InDelta(t, 0.8, hits[1].Score, 1e-5)
	assert.Equal(t, 1, hits[1].Metadata.Int(core.MetaChunkIndex))
	assert.Equal(t, "a.txt", hits[1].Metadata.String(core.MetaFilename))
}

func TestVectorsRepo_Filter(t *testing.T) {
	ctx := context.Background()
	repo := NewVectorsRepo(newTestDB(t), 2)

	require.NoError(t, repo.Upsert(ctx,
		[][]float32{{1, 0}, {1, 0.1}},
		[]string{"a", "b"},
		[]core.Metadata{
			{core.MetaDocumentID: "d1", core.MetaFileType: "txt"},
			{core.MetaDocumentID: "d2", core.MetaFileType: "pdf"},
		},
	))

	hits, err := repo.Search(ctx, []float32{1, 0}, 5, core.Metadata{core.MetaFileType: "pdf"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].ID)

	hits, err = repo.Search(ctx, []float32{1, 0}, 5, core.Metadata{core.MetaDocumentID: "d1"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ID)

	_, err = repo.Search(ctx, []float32{1, 0}, 5, core.Metadata{"bad key'": "x"})
	assert.Error(t, err)
}

func TestVectorsRepo_UpsertReplacesAndDeleteByDocument(t *testing.T) {
	ctx := context.Background()
	repo := NewVectorsRepo(newTestDB(t), 2)
	meta := []core.Metadata{{core.MetaDocumentID: "d1", core.MetaChunkText: "v1"}}

	require.NoError(t, repo.Upsert(ctx, [][]float32{{1, 0}}, []string{"a"}, meta))
	meta[0][core.MetaChunkText] = "v2"
	require.NoError(t, repo.Upsert(ctx, [][]float32{{0, 1}}, []string{"a"}, meta))

	hits, err := repo.Search(ctx, []float32{0, 1}, 5, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "v2", hits[0].Metadata.String(core.MetaChunkText))
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)

	require.NoError(t, repo.DeleteByDocument(ctx, "d1"))
	hits, err = repo.Search(ctx, []float32{0, 1}, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorsRepo_DimensionMismatch(t *testing.T) {
	repo := NewVectorsRepo(newTestDB(t), 3)
	err := repo.Upsert(context.Background(), [][]float32{{1, 0}}, []string{"a"},
		[]core.Metadata{{core.MetaDocumentID: "d1"}})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestVectorsRepo_SearchRejectsWrongQueryDimension(t *testing.T) {
	ctx := context.Background()
	repo := NewVectorsRepo(newTestDB(t), 3)
	require.NoError(t, repo.Upsert(ctx, [][]float32{{1, 0, 0}}, []string{"a"},
		[]core.Metadata{{core.MetaDocumentID: "d1"}}))

	hits, err := repo.Search(ctx, []float32{1, 0}, 5, nil)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	assert.Nil(t, hits)
}
