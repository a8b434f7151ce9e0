package core

import "time"

const (
	AppName          = "RAGDesk"
	AppUserAgent     = "RAGDesk/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/ragdesk"
	AppVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single immutable entry of a session log.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidRole reports whether role can be stored in a session.
func ValidRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Chunk is a contiguous span of a source document.
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Text       string `json:"text"`
	ChunkIndex int    `json:"chunk_index"`
}

// RetrievedChunk is a Chunk annotated with its similarity to a query.
// Rank is 1-based in the order the vector index returned it.
type RetrievedChunk struct {
	Chunk
	Score float32 `json:"score"`
	Rank  int     `json:"rank"`
}

// Metadata keys written to the vector index payload.
const (
	MetaDocumentID = "document_id"
	MetaChunkIndex = "chunk_index"
	MetaChunkText  = "chunk_text"
	MetaFilename   = "filename"
	MetaFileType   = "file_type"
)

// Metadata is the payload stored next to a vector.
type Metadata map[string]any

func (m Metadata) String(key string) string {
	v, _ := m[key].(string)
	return v
}

func (m Metadata) Int(key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	}
	return 0
}

// SearchHit is a raw nearest-neighbour result.
type SearchHit struct {
	ID       string
	Score    float32
	Metadata Metadata
}

// ToChunk rebuilds the chunk stored in the hit payload.
func (h SearchHit) ToChunk() Chunk {
	return Chunk{
		ChunkID:    h.ID,
		DocumentID: h.Metadata.String(MetaDocumentID),
		Filename:   h.Metadata.String(MetaFilename),
		Text:       h.Metadata.String(MetaChunkText),
		ChunkIndex: h.Metadata.Int(MetaChunkIndex),
	}
}

// CompletionOptions are the sampling parameters for one model call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

type DocumentMetadata struct {
	ID               string    `json:"document_id"`
	Filename         string    `json:"filename"`
	FileType         string    `json:"file_type"`
	FileSize         int64     `json:"file_size"`
	ChunkingStrategy string    `json:"chunking_strategy"`
	TotalChunks      int       `json:"total_chunks"`
	UploadedAt       time.Time `json:"upload_timestamp"`
}

type StoredChunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Text       string    `json:"chunk_text"`
	Size       int       `json:"chunk_size"`
	CreatedAt  time.Time `json:"created_at"`
}

const BookingStatusPending = "pending"

type BookingRequest struct {
	SessionID     string `json:"session_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Notes         string `json:"notes,omitempty"`
}

type Booking struct {
	ID            string    `json:"booking_id"`
	SessionID     string    `json:"session_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Model describes an entry of a provider's model catalogue.
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length"`
}
