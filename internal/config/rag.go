package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/ragdesk/pkg/log"
)

// RAGConfig holds the tuning knobs of the response pipeline.
type RAGConfig struct {
	TopK                int     `env:"RETRIEVAL_TOP_K" envDefault:"5"`
	SimilarityThreshold float32 `env:"SIMILARITY_THRESHOLD" envDefault:"0.7"`
	MaxContextLength    int     `env:"MAX_CONTEXT_LENGTH" envDefault:"3000"`

	// HistoryWindow is the number of past messages fed back to the model.
	HistoryWindow int     `env:"HISTORY_WINDOW" envDefault:"6"`
	Temperature   float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens     int     `env:"LLM_MAX_TOKENS" envDefault:"1000"`

	RetrievalTimeout  time.Duration `env:"RETRIEVAL_TIMEOUT" envDefault:"10s"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"120s"`
	HistoryTimeout    time.Duration `env:"HISTORY_TIMEOUT" envDefault:"5s"`

	SerializeSessions bool `env:"SERIALIZE_SESSIONS" envDefault:"true"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg, err := ParseRAGConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}

func ParseRAGConfig() (*RAGConfig, error) {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultRAGConfig returns the values used when no environment is set.
func DefaultRAGConfig() *RAGConfig {
	return &RAGConfig{
		TopK:                5,
		SimilarityThreshold: 0.7,
		MaxContextLength:    3000,
		HistoryWindow:       6,
		Temperature:         0.7,
		MaxTokens:           1000,
		RetrievalTimeout:    10 * time.Second,
		GenerationTimeout:   120 * time.Second,
		HistoryTimeout:      5 * time.Second,
		SerializeSessions:   true,
	}
}

func (c *RAGConfig) Validate() error {
	switch {
	case c.TopK <= 0:
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	case c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1:
		return fmt.Errorf("SIMILARITY_THRESHOLD must be within [-1, 1], got %v", c.SimilarityThreshold)
	case c.MaxContextLength < 0:
		return fmt.Errorf("MAX_CONTEXT_LENGTH must not be negative, got %d", c.MaxContextLength)
	case c.HistoryWindow < 0:
		return fmt.Errorf("HISTORY_WINDOW must not be negative, got %d", c.HistoryWindow)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("LLM_TEMPERATURE must be within [0, 2], got %v", c.Temperature)
	case c.MaxTokens <= 0:
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	return nil
}
