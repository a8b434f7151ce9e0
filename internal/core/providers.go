package core

import "context"

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// LLM is a language-model backend.
type LLM interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}

// VectorIndex stores vectors with metadata and answers nearest-neighbour queries.
// Search returns hits ordered by descending score.
type VectorIndex interface {
	Upsert(ctx context.Context, vectors [][]float32, ids []string, metadata []Metadata) error
	Search(ctx context.Context, vector []float32, topK int, filter Metadata) ([]SearchHit, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

// Chunker splits extracted document text into ordered pieces.
type Chunker interface {
	Split(text string) ([]string, error)
	Name() string
}

// TextExtractor turns raw file bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, content []byte) (string, error)
}

// IntentClassifier flags queries that ask to book an interview.
type IntentClassifier interface {
	IsBookingIntent(query string) bool
}

// Pinger is implemented by collaborators that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelLister is implemented by LLM backends that expose their catalogue.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}
