package rag

import (
	"fmt"
	"strings"

	"github.com/sandevgo/ragdesk/internal/core"
)

// Mode tells which system instruction a turn was answered with.
type Mode string

const (
	ModeConversational Mode = "conversational"
	ModeGrounded       Mode = "grounded"
	ModeUngrounded     Mode = "ungrounded"
)

const groundedPrompt = `You are a helpful AI assistant. Use the following context from documents to answer the user's question. If the context doesn't contain relevant information, say so and provide a helpful response based on your general knowledge.

Context from documents:
%s

Guidelines:
- Answer based on the context when possible
- Be concise and accurate
- If booking an interview, guide the user through the process
- Be conversational and friendly`

const ungroundedPrompt = `You are a helpful AI assistant. The knowledge base doesn't contain information relevant to this query. Provide a helpful response based on your general knowledge, or guide the user to ask questions related to the available documents.`

const conversationalPrompt = `You are a helpful AI assistant. Answer the user's questions in a friendly and informative manner.`

const historyPrefix = "Previous conversation:\n"

func systemPrompt(mode Mode, contextText string) string {
	switch mode {
	case ModeGrounded:
		return fmt.Sprintf(groundedPrompt, contextText)
	case ModeUngrounded:
		return ungroundedPrompt
	default:
		return conversationalPrompt
	}
}

// formatHistory renders messages as "Role: content" blocks.
func formatHistory(msgs []core.Message) string {
	if len(msgs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, fmt.Sprintf("%s: %s", roleLabel(m.Role), m.Content))
	}
	return strings.Join(parts, "\n\n")
}

func roleLabel(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func buildInstructions(mode Mode, contextText, history, query string) []core.Message {
	messages := make([]core.Message, 0, 3)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: systemPrompt(mode, contextText)})
	if history != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: historyPrefix + history})
	}
	messages = append(messages, core.Message{Role: core.RoleUser, Content: query})
	return messages
}
