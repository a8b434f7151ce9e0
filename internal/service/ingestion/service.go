// Package ingestion turns uploaded files into searchable chunks: text is
// extracted, split, embedded in parallel batches and written to the vector
// index and the document repository.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/providers/chunking"
	"github.com/sandevgo/ragdesk/internal/providers/extract"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/sandevgo/ragdesk/pkg/retry"
)

const (
	defaultBatchSize = 32
	defaultWorkers   = 4
)

// Request describes one upload. Zero values fall back to the configured
// chunking defaults.
type Request struct {
	Filename     string
	Content      []byte
	Strategy     string
	ChunkSize    int
	ChunkOverlap int
}

type Service struct {
	cfg       *config.IngestionConfig
	extractor core.TextExtractor
	embedder  core.Embedder
	index     core.VectorIndex
	docs      core.DocumentRepository

	pool      *ants.Pool
	batchSize int
	retrier   *retry.Retrier
	now       func() time.Time
}

type Option func(*Service) error

// WithWorkers sets the number of embedding batches processed at once.
func WithWorkers(n int) Option {
	return func(s *Service) error {
		if n < 1 {
			n = 1
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

func WithBatchSize(n int) Option {
	return func(s *Service) error {
		if n < 1 {
			return fmt.Errorf("batch size must be positive, got %d", n)
		}
		s.batchSize = n
		return nil
	}
}

// WithRetryConfig replaces the backoff used for embedding batches.
func WithRetryConfig(cfg *retry.Config) Option {
	return func(s *Service) error {
		s.retrier = retry.NewRetrier(cfg)
		return nil
	}
}

func NewService(
	cfg *config.IngestionConfig,
	extractor core.TextExtractor,
	embedder core.Embedder,
	index core.VectorIndex,
	docs core.DocumentRepository,
	opts ...Option,
) (*Service, error) {
	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = 3
	retryCfg.RetryIf = retryableEmbedError

	s := &Service{
		cfg:       cfg,
		extractor: extractor,
		embedder:  embedder,
		index:     index,
		docs:      docs,
		batchSize: defaultBatchSize,
		retrier:   retry.NewRetrier(retryCfg),
		now:       func() time.Time { return time.Now().UTC() },
	}

	if err := WithWorkers(defaultWorkers)(s); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}
	return s, nil
}

func retryableEmbedError(err error) bool {
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, core.ErrDimensionMismatch)
}

// Release stops the worker pool. The service must not be used afterwards.
func (s *Service) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Ingest stores a document and its chunks. Vectors are written before the
// metadata rows and removed again if the rows cannot be saved.
func (s *Service) Ingest(ctx context.Context, req Request) (core.DocumentMetadata, error) {
	logger := log.FromCtx(ctx).With().Str("filename", req.Filename).Logger()

	if err := s.applyDefaults(&req); err != nil {
		return core.DocumentMetadata{}, err
	}
	if err := s.checkFile(req); err != nil {
		return core.DocumentMetadata{}, err
	}

	chunker, err := chunking.New(req.Strategy, req.ChunkSize, req.ChunkOverlap)
	if err != nil {
		return core.DocumentMetadata{}, err
	}

	text, err := s.extractor.Extract(ctx, req.Filename, req.Content)
	if err != nil {
		return core.DocumentMetadata{}, err
	}

	pieces, err := chunker.Split(text)
	if err != nil {
		return core.DocumentMetadata{}, fmt.Errorf("failed to split %s: %w", req.Filename, err)
	}
	pieces = nonEmpty(pieces)
	if len(pieces) == 0 {
		return core.DocumentMetadata{}, fmt.Errorf("%w: %s produced no chunks", core.ErrEmptyDocument, req.Filename)
	}

	vectors, err := s.embed(ctx, pieces)
	if err != nil {
		return core.DocumentMetadata{}, fmt.Errorf("failed to embed %s: %w", req.Filename, err)
	}

	now := s.now()
	doc := core.DocumentMetadata{
		ID:               uuid.NewString(),
		Filename:         req.Filename,
		FileType:         extract.FileType(req.Filename),
		FileSize:         int64(len(req.Content)),
		ChunkingStrategy: chunker.Name(),
		TotalChunks:      len(pieces),
		UploadedAt:       now,
	}

	ids := make([]string, len(pieces))
	metadata := make([]core.Metadata, len(pieces))
	stored := make([]core.StoredChunk, len(pieces))
	for i, piece := range pieces {
		ids[i] = uuid.NewString()
		metadata[i] = core.Metadata{
			core.MetaDocumentID: doc.ID,
			core.MetaChunkIndex: i,
			core.MetaChunkText:  piece,
			core.MetaFilename:   doc.Filename,
			core.MetaFileType:   doc.FileType,
		}
		stored[i] = core.StoredChunk{
			ID:         ids[i],
			DocumentID: doc.ID,
			ChunkIndex: i,
			Text:       piece,
			Size:       utf8.RuneCountInString(piece),
			CreatedAt:  now,
		}
	}

	if err := s.index.Upsert(ctx, vectors, ids, metadata); err != nil {
		s.rollback(ctx, doc.ID)
		return core.DocumentMetadata{}, fmt.Errorf("failed to store vectors: %w", err)
	}

	if err := s.docs.SaveDocument(ctx, doc, stored); err != nil {
		s.rollback(ctx, doc.ID)
		return core.DocumentMetadata{}, fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info().
		Str("document_id", doc.ID).
		Str("strategy", doc.ChunkingStrategy).
		Int("chunks", doc.TotalChunks).
		Msg("document ingested")

	return doc, nil
}

func (s *Service) applyDefaults(req *Request) error {
	if req.Strategy == "" {
		req.Strategy = s.cfg.Strategy
	}
	// Overlap only defaults together with size; an explicit size with zero
	// overlap is a valid request.
	if req.ChunkSize == 0 {
		req.ChunkSize = s.cfg.ChunkSize
		if req.ChunkOverlap == 0 {
			req.ChunkOverlap = s.cfg.ChunkOverlap
		}
	}
	if err := config.ValidateStrategy(req.Strategy); err != nil {
		return err
	}
	return config.ValidateChunking(req.ChunkSize, req.ChunkOverlap)
}

func (s *Service) checkFile(req Request) error {
	if strings.TrimSpace(req.Filename) == "" {
		return fmt.Errorf("%w: missing filename", core.ErrUnsupportedFileType)
	}
	supported := false
	ext := "." + extract.FileType(req.Filename)
	for _, e := range extract.Supported() {
		if e == ext {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %q", core.ErrUnsupportedFileType, ext)
	}
	if int64(len(req.Content)) > s.cfg.MaxFileSize() {
		return fmt.Errorf("%w: %d bytes, limit is %d MB", core.ErrFileTooLarge, len(req.Content), s.cfg.MaxFileSizeMB)
	}
	if len(req.Content) == 0 {
		return fmt.Errorf("%w: %s is empty", core.ErrEmptyDocument, req.Filename)
	}
	return nil
}

// embed splits texts into batches and embeds them on the worker pool,
// preserving input order in the result.
func (s *Service) embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for start := 0; start < len(texts); start += s.batchSize {
		end := min(start+s.batchSize, len(texts))

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()

			var batch [][]float32
			err := s.retrier.Do(ctx, func() error {
				var err error
				batch, err = s.embedder.EmbedBatch(ctx, texts[start:end])
				return err
			})
			if err != nil {
				fail(err)
				return
			}
			if len(batch) != end-start {
				fail(fmt.Errorf("embedder returned %d vectors for %d texts", len(batch), end-start))
				return
			}
			copy(vectors[start:end], batch)
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit embedding batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

func (s *Service) rollback(ctx context.Context, documentID string) {
	if err := s.index.DeleteByDocument(context.WithoutCancel(ctx), documentID); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("document_id", documentID).Msg("failed to remove vectors of rejected document")
	}
}

func (s *Service) ListDocuments(ctx context.Context) ([]core.DocumentMetadata, error) {
	return s.docs.ListDocuments(ctx)
}

func (s *Service) GetDocument(ctx context.Context, id string) (core.DocumentMetadata, error) {
	return s.docs.GetDocument(ctx, id)
}

func (s *Service) GetChunks(ctx context.Context, id string) ([]core.StoredChunk, error) {
	if _, err := s.docs.GetDocument(ctx, id); err != nil {
		return nil, err
	}
	return s.docs.GetChunks(ctx, id)
}

// DeleteDocument removes the document's vectors and then its rows; chunk rows
// follow the document through the repository cascade.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.docs.GetDocument(ctx, id); err != nil {
		return err
	}
	if err := s.index.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vectors: %w", err)
	}
	if err := s.docs.DeleteDocument(ctx, id); err != nil {
		return err
	}
	log.FromCtx(ctx).Info().Str("document_id", id).Msg("document deleted")
	return nil
}

func nonEmpty(pieces []string) []string {
	out := pieces[:0]
	for _, p := range pieces {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
