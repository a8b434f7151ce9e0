package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sandevgo/ragdesk/internal/core"
)

// DocumentRepository keeps documents and chunks in maps. SaveErr injects a
// failure into SaveDocument.
type DocumentRepository struct {
	SaveErr error

	mu     sync.Mutex
	docs   map[string]core.DocumentMetadata
	chunks map[string][]core.StoredChunk
}

var _ core.DocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		docs:   make(map[string]core.DocumentMetadata),
		chunks: make(map[string][]core.StoredChunk),
	}
}

func (m *DocumentRepository) SaveDocument(ctx context.Context, doc core.DocumentMetadata, chunks []core.StoredChunk) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[doc.ID]; ok {
		return fmt.Errorf("document %s already exists", doc.ID)
	}
	m.docs[doc.ID] = doc
	m.chunks[doc.ID] = append([]core.StoredChunk(nil), chunks...)
	return nil
}

func (m *DocumentRepository) GetDocument(ctx context.Context, id string) (core.DocumentMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return core.DocumentMetadata{}, fmt.Errorf("%w: %s", core.ErrDocumentNotFound, id)
	}
	return doc, nil
}

func (m *DocumentRepository) ListDocuments(ctx context.Context) ([]core.DocumentMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]core.DocumentMetadata, 0, len(m.docs))
	for _, d := range m.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.After(docs[j].UploadedAt) })
	return docs, nil
}

func (m *DocumentRepository) GetChunks(ctx context.Context, documentID string) ([]core.StoredChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.StoredChunk{}, m.chunks[documentID]...), nil
}

func (m *DocumentRepository) DeleteDocument(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrDocumentNotFound, id)
	}
	delete(m.docs, id)
	delete(m.chunks, id)
	return nil
}

type BookingRepository struct {
	SaveErr error

	mu       sync.Mutex
	bookings []core.Booking
}

var _ core.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (m *BookingRepository) SaveBooking(ctx context.Context, b core.Booking) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *BookingRepository) ListBookings(ctx context.Context, sessionID string) ([]core.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []core.Booking{}
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if sessionID == "" || m.bookings[i].SessionID == sessionID {
			out = append(out, m.bookings[i])
		}
	}
	return out, nil
}
