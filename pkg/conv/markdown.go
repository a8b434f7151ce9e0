package conv

import (
	"io"
	"regexp"
	"strconv"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions     = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	telegramPolicy = newTelegramPolicy()
)

// newTelegramPolicy keeps the tags listed at
// https://core.telegram.org/bots/api#html-style and drops the rest, keeping
// their text.
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#-]+$`)).OnElements("code")
	return p
}

func renderHTML(md []byte, flags html.Flags, hook html.RenderNodeFunc) []byte {
	p := parser.NewWithExtensions(extensions)
	r := html.NewRenderer(html.RendererOptions{Flags: flags, RenderNodeHook: hook})
	return markdown.Render(p.Parse(md), r)
}

// TelegramHTML renders an LLM answer into the HTML subset Telegram accepts.
// Telegram has no headings or lists, so headings become bold lines and list
// items get a plain text marker.
func TelegramHTML(md []byte) string {
	unsafeHTML := renderHTML(md, html.CommonFlags|html.HrefTargetBlank, telegramNodeHook)
	return string(telegramPolicy.SanitizeBytes(unsafeHTML))
}

func telegramNodeHook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			_, _ = io.WriteString(w, "<b>")
		} else {
			_, _ = io.WriteString(w, "</b>\n")
		}
		return ast.GoToNext, true
	case *ast.ListItem:
		if entering {
			_, _ = io.WriteString(w, listMarker(n))
		} else {
			_, _ = io.WriteString(w, "\n")
		}
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}

func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent.(*ast.List)
	if !ok || list.ListFlags&ast.ListTypeOrdered == 0 {
		return "• "
	}
	n := list.Start
	if n == 0 {
		n = 1
	}
	for _, sibling := range list.Children {
		if sibling == ast.Node(item) {
			break
		}
		n++
	}
	return strconv.Itoa(n) + ". "
}
