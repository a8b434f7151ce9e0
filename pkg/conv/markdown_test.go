package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelegramHTML_Inline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Office hours are 9 to 5", "Office hours are 9 to 5\n"},
		{"bold", "**bold**", "<strong>bold</strong>\n"},
		{"italic", "*italic*", "<em>italic</em>\n"},
		{"strikethrough", "~~gone~~", "<del>gone</del>\n"},
		{"inline code", "`RAG_TOP_K`", "<code>RAG_TOP_K</code>\n"},
		{"raw underline kept", "<u>underline</u>", "<u>underline</u>\n"},
		{"link", "[careers](https://example.com/jobs)", "<a href=\"https://example.com/jobs\">careers</a>\n"},
		{"script dropped", "<script>alert('xss')</script>", "\n"},
		{
			"source citation",
			"Remote work is allowed on **Fridays** (see `handbook.pdf`).",
			"Remote work is allowed on <strong>Fridays</strong> (see <code>handbook.pdf</code>).\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TelegramHTML([]byte(tt.input)))
		})
	}
}

func TestTelegramHTML_Blocks(t *testing.T) {
	t.Run("code block keeps language class", func(t *testing.T) {
		got := TelegramHTML([]byte("```go\nfunc main() {}\n```"))
		assert.Equal(t, "<pre><code class=\"language-go\">func main() {}\n</code></pre>\n", got)
	})

	t.Run("blockquote", func(t *testing.T) {
		assert.Equal(t, "<blockquote>\nquote\n</blockquote>\n", TelegramHTML([]byte("> quote")))
	})

	t.Run("heading becomes bold", func(t *testing.T) {
		got := TelegramHTML([]byte("# Sources"))
		assert.Contains(t, got, "<b>Sources</b>")
		assert.NotContains(t, got, "<h1")
	})

	t.Run("bullet list", func(t *testing.T) {
		got := TelegramHTML([]byte("- faq.txt\n- policy.pdf\n"))
		assert.Contains(t, got, "• faq.txt\n")
		assert.Contains(t, got, "• policy.pdf\n")
		assert.NotContains(t, got, "<li>")
		assert.NotContains(t, got, "<ul>")
	})

	t.Run("ordered list keeps numbers", func(t *testing.T) {
		got := TelegramHTML([]byte("1. pick a slot\n2. confirm\n"))
		assert.Contains(t, got, "1. pick a slot\n")
		assert.Contains(t, got, "2. confirm\n")
		assert.NotContains(t, got, "<ol>")
	})
}

func TestTelegramHTML_UnsafeLinks(t *testing.T) {
	got := TelegramHTML([]byte("[click](javascript:alert(1))"))
	assert.NotContains(t, got, "javascript")
	assert.Contains(t, got, "click")
}
