package conv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown/html"
	"github.com/inbucket/html2text"
)

var textOptions = html2text.Options{
	OmitLinks: true,
	TextOnly:  true,
}

// HTMLToText strips markup and returns readable plain text.
func HTMLToText(page []byte) (string, error) {
	text, err := html2text.FromReader(bytes.NewReader(page), textOptions)
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// MarkdownToText renders markdown to HTML and flattens it back to text, so
// emphasis markers and link syntax do not leak into embeddings.
func MarkdownToText(md []byte) (string, error) {
	return HTMLToText(renderHTML(md, html.CommonFlags, nil))
}
