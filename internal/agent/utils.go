package agent

import (
	"strings"

	"codeberg.org/finpilot/server/internal/llm"
)

// keeps the tail of the history the client sent
const maxHistoryTurns = 10

const chatFallback = "I apologize, but I encountered an error while processing your request. Please try again or rephrase your question."

// converts client history plus the new message into provider messages
func buildMessages(history []Message, userMessage string) []llm.Message {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	messages := make([]llm.Message, 0, len(history)+1)

	for _, msg := range history {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role != "user" && role != "assistant" {
			continue
		}

		if strings.TrimSpace(msg.Content) == "" {
			continue
		}

		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	messages = append(messages, llm.Message{Role: "user", Content: userMessage})

	return messages
}

// collapses paragraph breaks into single newlines and trims
func formatReply(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\n\n", "\n"))
}
