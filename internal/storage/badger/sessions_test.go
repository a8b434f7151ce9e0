package badger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *SessionStore {
	t.Helper()
	s, err := Open(context.Background(), "", true, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionStore_AppendAndReadWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(ctx, "s1", core.RoleUser, fmt.Sprintf("q%d", i)))
		require.NoError(t, s.Append(ctx, "s1", core.RoleAssistant, fmt.Sprintf("a%d", i)))
	}

	all, err := s.ReadWindow(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "q0", all[0].Content)
	assert.Equal(t, core.RoleAssistant, all[5].Role)
	assert.False(t, all[0].Timestamp.IsZero())

	last, err := s.ReadWindow(ctx, "s1", 4)
	require.NoError(t, err)
	require.Len(t, last, 4)
	assert.Equal(t, "q1", last[0].Content)
	assert.Equal(t, "a2", last[3].Content)

	again, err := s.ReadWindow(ctx, "s1", 4)
	require.NoError(t, err)
	assert.Equal(t, last, again)
}

func TestSessionStore_UnknownSessionIsEmpty(t *testing.T) {
	s := newTestStore(t, time.Hour)

	msgs, err := s.ReadWindow(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	ok, err := s.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_ClearAndExists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	require.NoError(t, s.Append(ctx, "s1", core.RoleUser, "hi"))
	require.NoError(t, s.Append(ctx, "s2", core.RoleUser, "hello"))

	ok, err := s.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Clear(ctx, "s1"))

	ok, err = s.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := s.ReadWindow(ctx, "s2", 0)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSessionStore_Validation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	assert.ErrorIs(t, s.Append(ctx, " ", core.RoleUser, "x"), core.ErrEmptySession)
	assert.Error(t, s.Append(ctx, "s1", "tool", "x"))

	_, err := s.ReadWindow(ctx, "", 1)
	assert.ErrorIs(t, err, core.ErrEmptySession)

	_, err = Open(ctx, "", true, 0)
	assert.Error(t, err)
}

func TestSessionStore_Expires(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Second)

	require.NoError(t, s.Append(ctx, "s1", core.RoleUser, "short lived"))

	assert.Eventually(t, func() bool {
		ok, err := s.Exists(ctx, "s1")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestSessionStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)
	const writers = 8

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, "shared", core.RoleUser, fmt.Sprintf("m%d", i)))
		}(i)
	}
	wg.Wait()

	msgs, err := s.ReadWindow(ctx, "shared", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, writers)
}

func TestSessionStore_PingAfterClose(t *testing.T) {
	s, err := Open(context.Background(), "", true, time.Hour)
	require.NoError(t, err)

	assert.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}
