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
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"openai"`
	Model    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"OLLAMA_API_KEY"`

	CustomBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`

	RequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"120s"`
}

var _ core.ProviderConfig = (*LLMConfig)(nil)

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	if err := c.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid LLM config")
	}
	return c
}

func (c *LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter, ProviderOllama:
	case ProviderCustom:
		if c.CustomBaseURL == "" {
			return fmt.Errorf("CUSTOM_OPENAI_BASE_URL is required for the custom provider")
		}
	default:
		return fmt.Errorf("%w: %q", core.ErrUnsupportedProvider, c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL must not be empty")
	}
	return nil
}

func (c *LLMConfig) GetProvider() string { return c.Provider }

func (c *LLMConfig) GetModel() string { return c.Model }

// GetAPIKey returns the key of the selected provider.
func (c *LLMConfig) GetAPIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	case ProviderOllama:
		return c.OllamaAPIKey
	case ProviderCustom:
		return c.CustomAPIKey
	}
	return ""
}

// GetBaseURL is empty for hosted providers with a fixed endpoint.
func (c *LLMConfig) GetBaseURL() string {
	switch c.Provider {
	case ProviderOllama:
		return c.OllamaBaseURL
	case ProviderCustom:
		return c.CustomBaseURL
	}
	return ""
}
