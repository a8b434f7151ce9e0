package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func up(ctx context.Context) error { return nil }

func TestCheck_Healthy(t *testing.T) {
	c := NewChecker(time.Second).
		Register("sqlite", pingFunc(up)).
		Register("sessions", pingFunc(up)).
		Register("vectors", nil)

	r := c.Check(context.Background())

	assert.Equal(t, StatusHealthy, r.Status)
	require.Len(t, r.Components, 2)
	assert.Equal(t, "sessions", r.Components[0].Name)
	assert.Equal(t, "sqlite", r.Components[1].Name)
}

func TestCheck_Degraded(t *testing.T) {
	c := NewChecker(time.Second).
		Register("sqlite", pingFunc(up)).
		Register("qdrant", pingFunc(func(ctx context.Context) error { return errors.New("connection refused") }))

	r := c.Check(context.Background())

	assert.Equal(t, StatusDegraded, r.Status)
	assert.Equal(t, Component{Name: "qdrant", Status: StatusDown, Error: "connection refused"}, r.Components[0])
}

func TestCheck_Timeout(t *testing.T) {
	c := NewChecker(20 * time.Millisecond).
		Register("slow", pingFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}))

	r := c.Check(context.Background())
	assert.Equal(t, StatusDegraded, r.Status)
}
