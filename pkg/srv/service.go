package srv

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/ragdesk/pkg/log"
)

// ShutdownTimeout bounds each Service.Shutdown call.
const ShutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Named services are logged by name instead of by type.
type Named interface {
	Name() string
}

func nameOf(s Service) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// StartServices runs every service in its own goroutine. A service that fails
// to start triggers onFailure, which normally cancels the root context so the
// rest shut down cleanly instead of the process exiting with stores open.
func StartServices(ctx context.Context, services []Service, onFailure func()) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Str("service", nameOf(service)).Msg("service failed to start")
				if onFailure != nil {
					onFailure()
				}
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done and then stops services in slice
// order. Each Shutdown gets a fresh context bounded by ShutdownTimeout, since
// ctx itself is already cancelled by then.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)
	base := context.WithoutCancel(ctx)

	for _, service := range services {
		sctx, cancel := context.WithTimeout(base, ShutdownTimeout)
		if err := service.Shutdown(sctx); err != nil {
			logger.Error().Err(err).Str("service", nameOf(service)).Msg("service failed to shutdown")
		}
		cancel()
	}
}
