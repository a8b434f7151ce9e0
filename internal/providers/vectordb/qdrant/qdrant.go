// Package qdrant is a REST client for a Qdrant collection using cosine
// distance.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/sandevgo/ragdesk/pkg/retry"
)

const defaultTimeout = 15 * time.Second

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

type Index struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
	retrier    *retry.Retrier
}

var _ core.VectorIndex = (*Index)(nil)

// statusError carries a non-2xx Qdrant response.
type statusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant %s %s failed: http %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func NewIndex(cfg Config) *Index {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	rc := retry.NewDefaultConfig()
	rc.MaxRetries = 3
	rc.RetryIf = transient
	return &Index{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     &http.Client{Timeout: timeout},
		retrier:    retry.NewRetrier(rc),
	}
}

// Init creates the collection when it does not exist yet.
func (x *Index) Init(ctx context.Context) error {
	if x.dimension <= 0 {
		return errors.New("qdrant: invalid dimension")
	}

	err := x.do(ctx, http.MethodGet, x.collectionPath(), nil, nil)
	if err == nil {
		return nil
	}
	var se *statusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		return err
	}

	log.FromCtx(ctx).Info().Str("collection", x.collection).Int("dimension", x.dimension).Msg("creating qdrant collection")
	body := map[string]any{
		"vectors": map[string]any{
			"size":     x.dimension,
			"distance": "Cosine",
		},
	}
	if err := x.do(ctx, http.MethodPut, x.collectionPath(), body, nil); err != nil {
		return err
	}

	// Payload index so deletes and filters by document stay cheap.
	index := map[string]any{"field_name": core.MetaDocumentID, "field_schema": "keyword"}
	return x.do(ctx, http.MethodPut, x.collectionPath()+"/index?wait=true", index, nil)
}

func (x *Index) Upsert(ctx context.Context, vectors [][]float32, ids []string, metadata []core.Metadata) error {
	if len(vectors) != len(ids) || len(ids) != len(metadata) {
		return fmt.Errorf("upsert: %d vectors, %d ids, %d metadata", len(vectors), len(ids), len(metadata))
	}
	if len(ids) == 0 {
		return nil
	}

	points := make([]map[string]any, len(ids))
	for i := range ids {
		if x.dimension > 0 && len(vectors[i]) != x.dimension {
			return fmt.Errorf("%w: vector %s has %d, collection has %d", core.ErrDimensionMismatch, ids[i], len(vectors[i]), x.dimension)
		}
		points[i] = map[string]any{
			"id":      ids[i],
			"vector":  vectors[i],
			"payload": metadata[i],
		}
	}

	body := map[string]any{"points": points}
	return x.retrier.Do(ctx, func() error {
		return x.do(ctx, http.MethodPut, x.collectionPath()+"/points?wait=true", body, nil)
	})
}

func (x *Index) Search(ctx context.Context, vector []float32, topK int, filter core.Metadata) ([]core.SearchHit, error) {
	if topK <= 0 {
		return nil, nil
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if f := buildFilter(filter); f != nil {
		req["filter"] = f
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := x.do(ctx, http.MethodPost, x.collectionPath()+"/points/search", req, &resp); err != nil {
		return nil, err
	}

	hits := make([]core.SearchHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, core.SearchHit{
			ID:       fmt.Sprint(r.ID),
			Score:    r.Score,
			Metadata: core.Metadata(r.Payload),
		})
	}
	return hits, nil
}

func (x *Index) DeleteByDocument(ctx context.Context, documentID string) error {
	body := map[string]any{
		"filter": buildFilter(core.Metadata{core.MetaDocumentID: documentID}),
	}
	return x.retrier.Do(ctx, func() error {
		return x.do(ctx, http.MethodPost, x.collectionPath()+"/points/delete?wait=true", body, nil)
	})
}

func (x *Index) Ping(ctx context.Context) error {
	return x.do(ctx, http.MethodGet, x.collectionPath(), nil, nil)
}

func (x *Index) collectionPath() string {
	return "/collections/" + x.collection
}

func (x *Index) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, x.url+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if x.apiKey != "" {
		req.Header.Set("api-key", x.apiKey)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode qdrant response: %w", err)
		}
	}
	return nil
}

func buildFilter(filter core.Metadata) map[string]any {
	if len(filter) == 0 {
		return nil
	}
	must := make([]map[string]any, 0, len(filter))
	for k, v := range filter {
		must = append(must, map[string]any{
			"key":   k,
			"match": map[string]any{"value": v},
		})
	}
	return map[string]any{"must": must}
}

// transient retries network failures and server-side errors.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return true
}
