package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sandevgo/ragdesk/internal/core"
)

// ollamaContextLength is reported for every local model; /api/tags does not
// expose the real value.
const ollamaContextLength = 32768

// Ollama talks to a local Ollama daemon through its OpenAI compatible
// completion endpoint and its native tag listing.
type Ollama struct {
	*OpenAICompatible
}

func NewOllama(baseURL, apiKey, model string) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    strings.TrimRight(baseURL, "/"),
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}

type ollamaTags struct {
	Models []struct {
		Name    string `json:"name"`
		Details struct {
			Family string `json:"family"`
		} `json:"details"`
	} `json:"models"`
}

// Models lists pulled models that can chat. Embedding models share the tag
// list, so anything named or built as an embedder is left out.
func (o *Ollama) Models(ctx context.Context) ([]core.Model, error) {
	var tags ollamaTags
	if err := o.getJSON(ctx, "/api/tags", &tags); err != nil {
		return nil, err
	}

	models := make([]core.Model, 0, len(tags.Models))
	for _, m := range tags.Models {
		if isOllamaEmbedder(m.Name, m.Details.Family) {
			continue
		}
		models = append(models, core.Model{
			ID:            m.Name,
			Name:          m.Name,
			ContextLength: ollamaContextLength,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// Ping checks that the daemon answers; used by the health command.
func (o *Ollama) Ping(ctx context.Context) error {
	var v struct {
		Version string `json:"version"`
	}
	return o.getJSON(ctx, "/api/version", &v)
}

func (o *Ollama) getJSON(ctx context.Context, path string, out any) error {
	resp, err := o.doRequest(ctx, http.MethodGet, path, nil, o.headers())
	if err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ollama %s: %w", path, err)
	}
	return nil
}

func isOllamaEmbedder(name, family string) bool {
	return strings.Contains(name, "embed") || strings.HasSuffix(family, "bert")
}
