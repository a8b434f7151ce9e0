package srv

import (
	"context"

	"github.com/sandevgo/ragdesk/pkg/log"
)

// closer wraps a resource that has nothing to run and only needs releasing
// on shutdown, such as a database handle.
type closer struct {
	name  string
	close func() error
}

// NewCloser returns a Service whose Shutdown calls fn once. A nil fn is
// allowed and does nothing.
func NewCloser(name string, fn func() error) Service {
	return &closer{name: name, close: fn}
}

func (c *closer) Name() string { return c.name }

func (c *closer) Start(context.Context) error { return nil }

func (c *closer) Shutdown(ctx context.Context) error {
	if c.close == nil {
		return nil
	}
	fn := c.close
	c.close = nil
	if err := fn(); err != nil {
		return err
	}
	log.FromCtx(ctx).Debug().Str("resource", c.name).Msg("closed")
	return nil
}
