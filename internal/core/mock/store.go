package mock

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
)

// ConversationStore keeps sessions in a map. ReadErr and AppendErr inject
// failures.
type ConversationStore struct {
	ReadErr   error
	AppendErr error

	mu       sync.Mutex
	sessions map[string][]core.Message
	reads    int
}

var _ core.ConversationStore = (*ConversationStore)(nil)

func NewConversationStore() *ConversationStore {
	return &ConversationStore{sessions: make(map[string][]core.Message)}
}

func (m *ConversationStore) Append(ctx context.Context, sessionID, role, content string) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], core.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (m *ConversationStore) ReadWindow(ctx context.Context, sessionID string, max int) ([]core.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	msgs := m.sessions[sessionID]
	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *ConversationStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *ConversationStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok, nil
}

// Messages returns everything stored for a session, bypassing ReadErr.
func (m *ConversationStore) Messages(sessionID string) []core.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Message(nil), m.sessions[sessionID]...)
}

func (m *ConversationStore) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}
