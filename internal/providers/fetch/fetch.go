// Package fetch downloads remote documents for ingestion.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sandevgo/ragdesk/internal/core"
)

type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

func New(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// IsURL reports whether s looks like something Fetch can download.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads rawURL and returns a filename whose extension matches the
// served content type, so the extractor can dispatch on it.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, []byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("failed to fetch url: http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", nil, fmt.Errorf("%w: %s is larger than %d bytes", core.ErrFileTooLarge, rawURL, f.maxBytes)
	}

	return filename(u, resp.Header.Get("Content-Type")), body, nil
}

func filename(u *url.URL, contentType string) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = u.Hostname()
	}

	var ext string
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		ext = ".html"
	case "application/pdf":
		ext = ".pdf"
	case "text/markdown":
		ext = ".md"
	case "text/plain":
		ext = ".txt"
	}

	if ext == "" || strings.EqualFold(path.Ext(name), ext) {
		return name
	}
	if ext == ".html" && strings.EqualFold(path.Ext(name), ".htm") {
		return name
	}
	return name + ext
}
