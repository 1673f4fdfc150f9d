package recommendations

import (
	"net/http"

	"codeberg.org/finpilot/server/internal/advisor"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// RecommendHandler godoc
// @Summary Recommend investment strategies
// @Description Searches strategies for the query, ranks them by allocation priority and profile fit, and attaches an analysis per strategy
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Investor profile"
// @Success 200 {object} advisor.RecommendResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/recommendations [post]
// @Security BearerAuth
func RecommendHandler(recommender Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req RecommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		resp, err := recommender.Recommend(c.Request.Context(), advisor.RecommendRequest{
			OwnerID:         userID,
			Query:           req.Query,
			RiskProfile:     req.RiskProfile,
			TimeHorizon:     req.TimeHorizon,
			AssetPriorities: req.AssetPriorities,
		})
		if err != nil {
			errors.InternalError(c, "failed to build recommendations", err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// OptionsHandler godoc
// @Summary Recommendation form options
// @Tags recommendations
// @Produce json
// @Success 200 {object} OptionsResponse
// @Router /api/v1/recommendations/options [get]
// @Security BearerAuth
func OptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		RiskProfiles:    advisor.RiskProfiles,
		TimeHorizons:    advisor.TimeHorizons,
		AssetPriorities: advisor.DefaultAssetOrder,
	})
}
