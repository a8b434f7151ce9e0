package config

import "github.com/caarlos0/env/v11"

// Defaults groups every section with its zero-environment values. It is the
// template written by `ragdesk init`.
type Defaults struct {
	App       AppConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Storage   StorageConfig
	Ingestion IngestionConfig
	RAG       RAGConfig
}

// ParseDefaults fills every section from envDefault tags only, ignoring the
// current environment.
func ParseDefaults() (*Defaults, error) {
	d := &Defaults{}
	// A non-empty map keeps env from falling back to os.Environ.
	opts := env.Options{Environment: map[string]string{"RAGDESK_INIT": "1"}}
	for _, target := range []any{&d.App, &d.LLM, &d.Embedding, &d.Storage, &d.Ingestion, &d.RAG} {
		if err := env.ParseWithOptions(target, opts); err != nil {
			return nil, err
		}
	}
	return d, nil
}
