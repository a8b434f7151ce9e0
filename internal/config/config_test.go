package config

import (
	"testing"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRAGConfig_Defaults(t *testing.T) {
	cfg, err := ParseRAGConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultRAGConfig(), cfg)
}

func TestParseRAGConfig_Env(t *testing.T) {
	t.Setenv("RETRIEVAL_TOP_K", "8")
	t.Setenv("SIMILARITY_THRESHOLD", "0.5")
	t.Setenv("GENERATION_TIMEOUT", "30s")

	cfg, err := ParseRAGConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.TopK)
	assert.Equal(t, float32(0.5), cfg.SimilarityThreshold)
	assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
}

func TestRAGConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RAGConfig)
	}{
		{"zero top k", func(c *RAGConfig) { c.TopK = 0 }},
		{"threshold above one", func(c *RAGConfig) { c.SimilarityThreshold = 1.5 }},
		{"negative budget", func(c *RAGConfig) { c.MaxContextLength = -1 }},
		{"negative window", func(c *RAGConfig) { c.HistoryWindow = -2 }},
		{"hot temperature", func(c *RAGConfig) { c.Temperature = 3 }},
		{"no tokens", func(c *RAGConfig) { c.MaxTokens = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRAGConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestIngestionConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultIngestionConfig().Validate())

	cfg := DefaultIngestionConfig()
	cfg.Strategy = "paragraph"
	assert.ErrorIs(t, cfg.Validate(), core.ErrUnknownStrategy)

	assert.Error(t, ValidateChunking(50, 10))
	assert.Error(t, ValidateChunking(500, 600))
	assert.Error(t, ValidateChunking(200, 200))
	assert.NoError(t, ValidateChunking(200, 0))

	assert.Equal(t, int64(10*1024*1024), DefaultIngestionConfig().MaxFileSize())
}

func TestLLMConfig(t *testing.T) {
	cfg := &LLMConfig{
		Provider:      ProviderOllama,
		Model:         "llama3",
		OllamaBaseURL: "http://ollama:11434",
		OllamaAPIKey:  "k",
		OpenAIAPIKey:  "sk",
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "k", cfg.GetAPIKey())
	assert.Equal(t, "http://ollama:11434", cfg.GetBaseURL())

	cfg.Provider = ProviderOpenAI
	assert.Equal(t, "sk", cfg.GetAPIKey())
	assert.Empty(t, cfg.GetBaseURL())

	cfg.Provider = ProviderCustom
	assert.Error(t, cfg.Validate())

	cfg.Provider = "bard"
	assert.ErrorIs(t, cfg.Validate(), core.ErrUnsupportedProvider)
}

func TestStorageConfig_Validate(t *testing.T) {
	cfg := &StorageConfig{VectorDBType: VectorDBQdrant, QdrantURL: "http://q", QdrantCollection: "c", SessionTTL: time.Hour}
	assert.NoError(t, cfg.Validate())

	cfg.VectorDBType = "pinecone"
	assert.ErrorIs(t, cfg.Validate(), core.ErrUnsupportedProvider)

	cfg.VectorDBType = VectorDBSQLite
	cfg.SessionTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestTelegramConfig_IsAllowed(t *testing.T) {
	open := &TelegramConfig{}
	assert.True(t, open.IsAllowed(42))

	restricted := &TelegramConfig{AllowedUsers: []int64{1, 2}}
	assert.True(t, restricted.IsAllowed(2))
	assert.False(t, restricted.IsAllowed(3))
}

func TestParseDefaults_IgnoresEnvironment(t *testing.T) {
	t.Setenv("RETRIEVAL_TOP_K", "42")

	d, err := ParseDefaults()
	require.NoError(t, err)
	assert.Equal(t, 5, d.RAG.TopK)
	assert.Equal(t, time.Hour, d.Storage.SessionTTL)
	assert.Equal(t, StrategyFixed, d.Ingestion.Strategy)
}
