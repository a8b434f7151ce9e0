// Package badger keeps conversation sessions in BadgerDB. A session is a
// single key holding its JSON-encoded message log; every write re-sets the
// key with a fresh TTL so idle sessions expire on their own.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/sandevgo/ragdesk/pkg/retry"
)

const (
	sessionPrefix = "session/"
	gcInterval    = 10 * time.Minute
	gcDiscard     = 0.5
)

type SessionStore struct {
	db      *badger.DB
	ttl     time.Duration
	retrier *retry.Retrier
	now     func() time.Time
}

var _ core.ConversationStore = (*SessionStore)(nil)

// Open opens the session store at path. With inMemory set the path is
// ignored and nothing touches the disk.
func Open(ctx context.Context, path string, inMemory bool, ttl time.Duration) (*SessionStore, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %v", ttl)
	}

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create sessions directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = log.NewBadgerLoggerFromCtx(ctx)
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &SessionStore{
		db:  db,
		ttl: ttl,
		retrier: retry.NewRetrier(retry.NewFastConfig(func(err error) bool {
			return errors.Is(err, badger.ErrConflict)
		})),
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func sessionKey(sessionID string) []byte {
	return []byte(sessionPrefix + sessionID)
}

func (s *SessionStore) Append(ctx context.Context, sessionID, role, content string) error {
	if strings.TrimSpace(sessionID) == "" {
		return core.ErrEmptySession
	}
	if !core.ValidRole(role) {
		return fmt.Errorf("invalid message role %q", role)
	}

	msg := core.Message{Role: role, Content: content, Timestamp: s.now()}

	return s.retrier.Do(ctx, func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			msgs, err := readSession(txn, sessionID)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)

			value, err := json.Marshal(msgs)
			if err != nil {
				return fmt.Errorf("failed to encode session: %w", err)
			}
			return txn.SetEntry(badger.NewEntry(sessionKey(sessionID), value).WithTTL(s.ttl))
		})
	})
}

func (s *SessionStore) ReadWindow(ctx context.Context, sessionID string, max int) ([]core.Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, core.ErrEmptySession
	}

	var msgs []core.Message
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		msgs, err = readSession(txn, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}
	if msgs == nil {
		msgs = []core.Message{}
	}
	return msgs, nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return core.ErrEmptySession
	}
	return s.retrier.Do(ctx, func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(sessionKey(sessionID))
		})
	})
}

func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, core.ErrEmptySession
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey(sessionID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("session store is closed")
	}
	return nil
}

func readSession(txn *badger.Txn, sessionID string) ([]core.Message, error) {
	item, err := txn.Get(sessionKey(sessionID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var msgs []core.Message
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &msgs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return msgs, nil
}

// Start runs value-log garbage collection until ctx is done.
func (s *SessionStore) Start(ctx context.Context) error {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.collectGarbage(ctx)
		}
	}
}

func (s *SessionStore) collectGarbage(ctx context.Context) {
	for {
		err := s.db.RunValueLogGC(gcDiscard)
		if err == nil {
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrGCInMemoryMode) {
			log.FromCtx(ctx).Warn().Err(err).Msg("session store gc failed")
		}
		return
	}
}

func (s *SessionStore) Shutdown(ctx context.Context) error {
	return s.Close()
}

func (s *SessionStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}
