package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

const (
	VectorDBSQLite = "sqlite"
	VectorDBQdrant = "qdrant"
	VectorDBMemory = "memory"
)

type StorageConfig struct {
	VectorDBType string `env:"VECTOR_DB_TYPE" envDefault:"sqlite"`

	QdrantURL        string `env:"QDRANT_URL" envDefault:"http://localhost:6333"`
	QdrantAPIKey     string `env:"QDRANT_API_KEY"`
	QdrantCollection string `env:"QDRANT_COLLECTION" envDefault:"documents"`

	// SessionTTL is refreshed on every append.
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	SessionsInMemory bool          `env:"SESSIONS_IN_MEMORY" envDefault:"false"`
}

func NewStorageConfig(ctx context.Context) *StorageConfig {
	c := &StorageConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Storage config")
	}
	if err := c.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid Storage config")
	}
	return c
}

func (c *StorageConfig) Validate() error {
	switch c.VectorDBType {
	case VectorDBSQLite, VectorDBMemory:
	case VectorDBQdrant:
		if c.QdrantURL == "" || c.QdrantCollection == "" {
			return fmt.Errorf("QDRANT_URL and QDRANT_COLLECTION are required for qdrant")
		}
	default:
		return fmt.Errorf("%w: VECTOR_DB_TYPE %q", core.ErrUnsupportedProvider, c.VectorDBType)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	return nil
}
