package agent

import (
	"context"

	agentcore "codeberg.org/finpilot/server/internal/agent"
)

type Chatter interface {
	Chat(ctx context.Context, req agentcore.ChatRequest) (*agentcore.ChatResponse, error)
}

// request payload for a chat turn; history is the transcript the client wants considered
type ChatRequest struct {
	Message             string    `json:"message" binding:"required,max=4000"`
	ConversationHistory []Message `json:"conversation_history"`
}

// conversation message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
