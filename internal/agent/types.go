package agent

import (
	"context"

	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/retriever"
)

// interface for per-category record search
type Retriever interface {
	SearchAllCategories(ctx context.Context, query, ownerID string) retriever.Results
}

// interface for completion calls that report failure as an outcome
type Completer interface {
	Complete(ctx context.Context, feature string, req llm.TextGenerationRequest) llm.Outcome
	Model() string
}

// answers finance questions grounded on the caller's records
type Agent struct {
	retriever Retriever
	completer Completer
}

// contains all inputs for a chat turn
type ChatRequest struct {
	OwnerID             string
	Message             string
	ConversationHistory []Message
}

// contains the reply and retrieval metadata
type ChatResponse struct {
	Reply         string         `json:"reply"`
	Fallback      bool           `json:"fallback"`
	FailureReason string         `json:"failure_reason,omitempty"`
	Retrieved     map[string]int `json:"retrieved"`
	Model         string         `json:"model"`
	InputTokens   int            `json:"input_tokens"`
	OutputTokens  int            `json:"output_tokens"`
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}
