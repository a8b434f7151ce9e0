package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

// Provider is a completion backend that can also list its models.
type Provider interface {
	core.LLM
	core.ModelLister
}

// NewProvider creates the backend selected by cfg. timeout bounds a single
// HTTP exchange; zero keeps the default.
func NewProvider(ctx context.Context, cfg core.ProviderConfig, timeout time.Duration) (Provider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	var (
		p    Provider
		base *baseProvider
	)
	switch cfg.GetProvider() {
	case "openai":
		o := NewOpenAI(cfg.GetAPIKey(), cfg.GetModel())
		p, base = o, &o.baseProvider
	case "anthropic":
		a := NewAnthropic(cfg.GetAPIKey(), cfg.GetModel())
		p, base = a, &a.baseProvider
	case "openrouter":
		o := NewOpenRouter(cfg.GetAPIKey(), cfg.GetModel())
		p, base = o, &o.baseProvider
	case "ollama":
		o := NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel())
		p, base = o, &o.baseProvider
	case "custom":
		c := NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel())
		p, base = c, &c.baseProvider
	default:
		return nil, fmt.Errorf("%w: llm provider %q", core.ErrUnsupportedProvider, cfg.GetProvider())
	}

	base.setTimeout(timeout)
	return p, nil
}
