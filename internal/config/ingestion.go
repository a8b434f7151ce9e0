package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
)

const (
	StrategyFixed    = "fixed"
	StrategySemantic = "semantic"
)

type IngestionConfig struct {
	ChunkSize     int    `env:"CHUNK_SIZE" envDefault:"500"`
	ChunkOverlap  int    `env:"CHUNK_OVERLAP" envDefault:"50"`
	Strategy      string `env:"CHUNKING_STRATEGY" envDefault:"fixed"`
	MaxFileSizeMB int    `env:"MAX_FILE_SIZE_MB" envDefault:"10"`
}

func NewIngestionConfig(ctx context.Context) *IngestionConfig {
	c := &IngestionConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Ingestion config")
	}
	if err := c.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid Ingestion config")
	}
	return c
}

func DefaultIngestionConfig() *IngestionConfig {
	return &IngestionConfig{
		ChunkSize:     500,
		ChunkOverlap:  50,
		Strategy:      StrategyFixed,
		MaxFileSizeMB: 10,
	}
}

func (c *IngestionConfig) Validate() error {
	if err := ValidateStrategy(c.Strategy); err != nil {
		return err
	}
	if err := ValidateChunking(c.ChunkSize, c.ChunkOverlap); err != nil {
		return err
	}
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB)
	}
	return nil
}

// MaxFileSize is the upload limit in bytes.
func (c *IngestionConfig) MaxFileSize() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

func ValidateStrategy(strategy string) error {
	switch strategy {
	case StrategyFixed, StrategySemantic:
		return nil
	}
	return fmt.Errorf("%w: %q", core.ErrUnknownStrategy, strategy)
}

// ValidateChunking enforces the bounds accepted by the upload API.
func ValidateChunking(size, overlap int) error {
	switch {
	case size < 100 || size > 2000:
		return fmt.Errorf("chunk size must be within [100, 2000], got %d", size)
	case overlap < 0 || overlap > 500:
		return fmt.Errorf("chunk overlap must be within [0, 500], got %d", overlap)
	case overlap >= size:
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}
	return nil
}
