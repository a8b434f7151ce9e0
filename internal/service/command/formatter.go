package command

import (
	"fmt"
	"strings"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/service/rag"
)

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("⚙️️ **%s**\n\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

func (f *ResponseFormatter) Error(operation string, err error) string {
	return fmt.Sprintf("❌ **/%s failed**\n\n**Issue**: %s\n", operation, err.Error())
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**:\n```%s```\n", command)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	var sb strings.Builder
	sb.WriteString("**Examples**:\n")
	for _, ex := range examples {
		sb.WriteString(fmt.Sprintf("`%s`\n", ex))
	}
	return sb.String()
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("› %s\n", item))
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Section(emoji, title, content string) string {
	return fmt.Sprintf("%s **%s**\n%s\n", emoji, title, content)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}

// Reply renders an answer followed by the documents it was grounded in.
func (f *ResponseFormatter) Reply(reply *rag.Reply) string {
	if len(reply.Sources) == 0 {
		return reply.Answer
	}
	items := make([]string, 0, len(reply.Sources))
	for _, s := range reply.Sources {
		items = append(items, fmt.Sprintf("%s #%d (%.2f)", s.Filename, s.ChunkIndex, s.Score))
	}
	return f.Combine(reply.Answer, f.Section("📎", "Sources", f.List(items)))
}

// Messages renders a session log, one entry per message.
func (f *ResponseFormatter) Messages(msgs []core.Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(fmt.Sprintf("**%s** `%s`\n%s\n\n", m.Role, m.Timestamp.Format("2006-01-02 15:04"), m.Content))
	}
	return strings.TrimSpace(sb.String())
}
