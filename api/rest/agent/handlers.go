package agent

import (
	"net/http"
	"strings"

	agentcore "codeberg.org/finpilot/server/internal/agent"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ChatHandler godoc
// @Summary Chat with the finance assistant
// @Description Answers a question grounded on the caller's records; completion failures return an apology with fallback=true
// @Tags agent
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat turn"
// @Success 200 {object} agentcore.ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/chat [post]
// @Security BearerAuth
func ChatHandler(chatter Chatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			errors.BadRequest(c, "message is required", nil)
			return
		}

		history := make([]agentcore.Message, 0, len(req.ConversationHistory))
		for _, msg := range req.ConversationHistory {
			if msg.Content != "" {
				history = append(history, agentcore.Message{Role: msg.Role, Content: msg.Content})
			}
		}

		resp, err := chatter.Chat(c.Request.Context(), agentcore.ChatRequest{
			OwnerID:             userID,
			Message:             req.Message,
			ConversationHistory: history,
		})
		if err != nil {
			errors.InternalError(c, "failed to answer", err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
