// Package health probes the storage backends the responder depends on.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUp        = "up"
	StatusDown      = "down"
	defaultDeadline = 3 * time.Second
)

type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type Report struct {
	Status     string      `json:"status"`
	Components []Component `json:"components"`
}

type Checker struct {
	probes  map[string]core.Pinger
	timeout time.Duration
}

func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultDeadline
	}
	return &Checker{probes: make(map[string]core.Pinger), timeout: timeout}
}

// Register adds a named probe. Nil pingers are ignored so optional backends
// can be passed unconditionally.
func (c *Checker) Register(name string, p core.Pinger) *Checker {
	if p != nil {
		c.probes[name] = p
	}
	return c
}

// Check pings every probe concurrently. Any failure marks the report degraded.
func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		components = make([]Component, 0, len(c.probes))
	)
	for name, p := range c.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comp := Component{Name: name, Status: StatusUp}
			if err := p.Ping(ctx); err != nil {
				comp.Status = StatusDown
				comp.Error = err.Error()
				log.FromCtx(ctx).Warn().Err(err).Str("component", name).Msg("health probe failed")
			}
			mu.Lock()
			components = append(components, comp)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(components, func(i, j int) bool { return components[i].Name < components[j].Name })

	report := Report{Status: StatusHealthy, Components: components}
	for _, comp := range components {
		if comp.Status != StatusUp {
			report.Status = StatusDegraded
			break
		}
	}
	return report
}
