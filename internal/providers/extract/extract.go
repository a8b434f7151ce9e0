// Package extract turns uploaded files into plain text.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/pkg/conv"
	"github.com/sandevgo/ragdesk/pkg/log"
	"golang.org/x/text/encoding/charmap"
)

// Extractor dispatches on the file extension.
type Extractor struct{}

var _ core.TextExtractor = (*Extractor)(nil)

func New() *Extractor {
	return &Extractor{}
}

// Supported lists the accepted extensions, lowercase with the leading dot.
func Supported() []string {
	return []string{".pdf", ".txt", ".md", ".html", ".htm"}
}

// FileType returns the lowercase extension without the dot.
func FileType(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func (e *Extractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch FileType(filename) {
	case "pdf":
		text, err = extractPDF(content)
	case "txt":
		text = decodeText(ctx, content)
	case "md":
		text, err = conv.MarkdownToText([]byte(decodeText(ctx, content)))
	case "html", "htm":
		text, err = conv.HTMLToText(content)
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFileType, filepath.Ext(filename))
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text extracted from %s", core.ErrEmptyDocument, filename)
	}
	return text, nil
}

// decodeText reads UTF-8 and falls back to Latin-1 for legacy files.
func decodeText(ctx context.Context, content []byte) string {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if utf8.Valid(content) {
		return string(content)
	}

	log.FromCtx(ctx).Debug().Msg("text is not valid UTF-8, decoding as Latin-1")
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(decoded)
}

func extractPDF(content []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(pageText)
		}
	}
	return sb.String(), nil
}
