package agent

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/logger"
)

func New(ret Retriever, completer Completer) *Agent {
	return &Agent{
		retriever: ret,
		completer: completer,
	}
}

// answers one chat turn; completion failures yield the apology reply, never an error
func (a *Agent) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	results := a.retriever.SearchAllCategories(ctx, message, req.OwnerID)
	systemPrompt := BuildSystemPrompt(results, req.OwnerID)

	retrieved := make(map[string]int, len(results))
	for category, matches := range results {
		retrieved[string(category)] = len(matches)
	}

	outcome := a.completer.Complete(ctx, "chat", llm.TextGenerationRequest{
		SystemPrompt: systemPrompt,
		Messages:     buildMessages(req.ConversationHistory, message),
	})

	response := &ChatResponse{
		Retrieved:    retrieved,
		Model:        a.completer.Model(),
		InputTokens:  outcome.Usage.InputTokens,
		OutputTokens: outcome.Usage.OutputTokens,
	}

	if !outcome.OK() {
		logger.FromContext(ctx).Warn("chat completion failed, using fallback reply",
			"owner_id", req.OwnerID,
			"reason", string(outcome.Reason),
			"error", outcome.Err,
		)

		response.Reply = chatFallback
		response.Fallback = true
		response.FailureReason = string(outcome.Reason)

		return response, nil
	}

	response.Reply = formatReply(outcome.Text)

	return response, nil
}
