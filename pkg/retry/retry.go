package retry

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/sandevgo/ragdesk/pkg/log"
)

type Operation = func() error

// Predicate reports whether a failed attempt is worth repeating.
type Predicate = func(error) bool

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
	// RetryIf limits retries to matching errors. Nil retries everything.
	RetryIf Predicate
}

// NewDefaultConfig suits remote calls: embedding APIs, Qdrant.
func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    5,
		BackoffFactor: 2.15,
		InitialDelay:  300 * time.Millisecond,
		MaxDelay:      20 * time.Second,
		Jitter:        50 * time.Millisecond,
	}
}

// NewFastConfig suits in-process contention such as transaction conflicts,
// where the competing writer finishes within milliseconds.
func NewFastConfig(retryIf Predicate) *Config {
	return &Config{
		MaxRetries:    8,
		BackoffFactor: 1.6,
		InitialDelay:  2 * time.Millisecond,
		MaxDelay:      100 * time.Millisecond,
		Jitter:        3 * time.Millisecond,
		RetryIf:       retryIf,
	}
}

// Retrier is safe for concurrent use; jitter comes from the global
// math/rand/v2 source.
type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{config: config}
}

// backoff returns the wait before retry number attempt (zero based), without
// jitter. It grows by BackoffFactor and is capped at MaxDelay.
func (r *Retrier) backoff(attempt int) time.Duration {
	d := float64(r.config.InitialDelay)
	for i := 0; i < attempt; i++ {
		d *= r.config.BackoffFactor
		if d >= float64(r.config.MaxDelay) {
			return r.config.MaxDelay
		}
	}
	return min(time.Duration(d), r.config.MaxDelay)
}

// Do runs op until it succeeds, the retry budget is spent, RetryIf rejects
// the error or ctx is done. The last error from op is returned as is.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	logger := log.FromCtx(ctx)

	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if attempt == r.config.MaxRetries {
			return err
		}
		if r.config.RetryIf != nil && !r.config.RetryIf(err) {
			return err
		}

		wait := r.backoff(attempt) + time.Duration(rand.Float64()*float64(r.config.Jitter))
		logger.Debug().Err(err).Int("attempt", attempt+1).Dur("wait", wait).Msg("retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
