package analytics

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/finpilot/server/internal/analytics"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// SummaryHandler godoc
// @Summary Dashboard summary
// @Description Spending by category, spend per currency, asset distribution, return vs risk and country distribution
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.Summary
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/analytics/summary [get]
// @Security BearerAuth
func SummaryHandler(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		summary, err := service.Summary(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to build summary", err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// PerformanceHandler godoc
// @Summary Historical performance
// @Description Yearly returns per asset, or averaged per asset type
// @Tags analytics
// @Produce json
// @Param by query string false "Series grouping" Enums(asset, type)
// @Success 200 {object} PerformanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/analytics/performance [get]
// @Security BearerAuth
func PerformanceHandler(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		view := analytics.View(c.DefaultQuery("by", string(analytics.ViewAsset)))

		points, err := service.Performance(c.Request.Context(), userID, view)
		if stderrors.Is(err, analytics.ErrUnknownView) {
			errors.BadRequest(c, "by must be asset or type", nil)
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to load performance", err)
			return
		}

		c.JSON(http.StatusOK, PerformanceResponse{View: string(view), Points: points})
	}
}

// InsightsHandler godoc
// @Summary AI insights
// @Description Commentary on one dashboard section; completion failures return a fixed line with fallback=true
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body InsightRequest true "Insight kind"
// @Success 200 {object} analytics.Insight
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/analytics/insights [post]
// @Security BearerAuth
func InsightsHandler(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req InsightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		insight, err := service.Insights(c.Request.Context(), analytics.InsightRequest{
			OwnerID: userID,
			Kind:    analytics.InsightKind(req.Kind),
			View:    analytics.View(req.View),
		})
		if stderrors.Is(err, analytics.ErrUnknownInsight) || stderrors.Is(err, analytics.ErrUnknownView) {
			errors.BadRequest(c, err.Error(), nil)
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to generate insight", err)
			return
		}

		c.JSON(http.StatusOK, insight)
	}
}
