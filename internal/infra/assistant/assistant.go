// Package assistant provides AI provider adapters for the chat widget.
// It includes Claude (Anthropic) and OpenAI implementations wrapped with
// circuit breaker and retry logic, plus a canned no-op provider for
// development without API keys.
package assistant

import (
	"fmt"
	"strings"

	"newsbridge/internal/domain/entity"
)

// systemPrompt frames every conversation sent to a provider.
const systemPrompt = "You are a helpful AI assistant for NewsBridge, an intelligent news analysis platform. " +
	"You can help users understand news articles, provide context about current events, " +
	"and answer questions about the platform. Be concise, informative, and friendly."

// maxMessageChars caps the user message to keep the request well under
// provider token limits, matching the cap applied to history.
const maxMessageChars = 10000

// buildPrompt flattens the conversation into a single prompt: the system
// framing, each prior turn prefixed by its speaker, then the new message
// with an open assistant turn for the model to complete.
func buildPrompt(history []entity.ChatMessage, message string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	for _, msg := range history {
		if msg.Role == entity.RoleUser {
			fmt.Fprintf(&b, "User: %s\n", msg.Content)
		} else {
			fmt.Fprintf(&b, "Assistant: %s\n", msg.Content)
		}
	}
	fmt.Fprintf(&b, "User: %s\n", truncate(message, maxMessageChars))
	b.WriteString("Assistant: ")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
