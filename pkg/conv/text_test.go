package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	got, err := HTMLToText([]byte(`<html><body><script>var x=1;</script><p>Office hours are <b>9 to 5</b>.</p></body></html>`))
	require.NoError(t, err)

	assert.Contains(t, got, "Office hours are")
	assert.Contains(t, got, "9 to 5")
	assert.NotContains(t, got, "<b>")
	assert.NotContains(t, got, "var x")
}

func TestMarkdownToText(t *testing.T) {
	got, err := MarkdownToText([]byte("# Policy\n\nRemote work is **allowed** on [Fridays](https://example.com)."))
	require.NoError(t, err)

	assert.Contains(t, got, "allowed")
	assert.Contains(t, got, "Fridays")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "https://example.com")
}
