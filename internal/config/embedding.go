package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

type EmbeddingConfig struct {
	Provider  string `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	Model     string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	BaseURL   string `env:"EMBEDDING_BASE_URL"`
	APIKey    string `env:"EMBEDDING_API_KEY"`
	Dimension int    `env:"EMBEDDING_DIMENSION" envDefault:"1536"`

	// BatchSize is the number of chunks sent per embedding request.
	BatchSize int `env:"EMBEDDING_BATCH_SIZE" envDefault:"32"`
	Workers   int `env:"EMBEDDING_WORKERS" envDefault:"4"`
}

var _ core.EmbeddingConfig = (*EmbeddingConfig)(nil)

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	if err := c.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid Embedding config")
	}
	return c
}

func (c *EmbeddingConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("%w: embedding provider %q", core.ErrUnsupportedProvider, c.Provider)
	}
	switch {
	case c.Dimension <= 0:
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.Dimension)
	case c.BatchSize <= 0:
		return fmt.Errorf("EMBEDDING_BATCH_SIZE must be positive, got %d", c.BatchSize)
	case c.Workers <= 0:
		return fmt.Errorf("EMBEDDING_WORKERS must be positive, got %d", c.Workers)
	}
	return nil
}

func (c *EmbeddingConfig) GetEmbeddingProvider() string { return c.Provider }
func (c *EmbeddingConfig) GetEmbeddingModel() string    { return c.Model }
func (c *EmbeddingConfig) GetEmbeddingBaseURL() string  { return c.BaseURL }
func (c *EmbeddingConfig) GetEmbeddingAPIKey() string   { return c.APIKey }
func (c *EmbeddingConfig) GetEmbeddingDimension() int   { return c.Dimension }
