package core

import "context"

// ConversationStore is an append-only, per-session message log with a TTL
// refreshed on every write.
type ConversationStore interface {
	Append(ctx context.Context, sessionID, role, content string) error
	// ReadWindow returns the most recent max messages, oldest first.
	// max <= 0 returns the whole session.
	ReadWindow(ctx context.Context, sessionID string, max int) ([]Message, error)
	Clear(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc DocumentMetadata, chunks []StoredChunk) error
	GetDocument(ctx context.Context, id string) (DocumentMetadata, error)
	ListDocuments(ctx context.Context) ([]DocumentMetadata, error)
	GetChunks(ctx context.Context, documentID string) ([]StoredChunk, error)
	DeleteDocument(ctx context.Context, id string) error
}

type BookingRepository interface {
	SaveBooking(ctx context.Context, b Booking) error
	ListBookings(ctx context.Context, sessionID string) ([]Booking, error)
}
