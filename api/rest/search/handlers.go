package search

import (
	"net/http"
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"codeberg.org/finpilot/server/internal/metrics"
	"codeberg.org/finpilot/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, searcher Searcher) {
	router.GET("/search", SearchHandler(searcher))
}

// SearchHandler godoc
// @Summary Search records
// @Description Keyword search over the caller's transactions and assets and the shared strategies
// @Tags search
// @Produce json
// @Param q query string true "Query"
// @Param category query string false "Restrict to one category" Enums(transactions, financial_assets, investment_strategies)
// @Success 200 {object} SearchResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/search [get]
// @Security BearerAuth
func SearchHandler(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			errors.BadRequest(c, "query parameter q is required", nil)
			return
		}

		ctx := c.Request.Context()

		var results retriever.Results
		if name := c.Query("category"); name != "" {
			category, err := records.ParseCategory(name)
			if err != nil {
				errors.BadRequest(c, "unknown category", err)
				return
			}
			results = retriever.Results{category: searcher.Search(ctx, category, query, userID, 0)}
		} else {
			results = searcher.SearchAllCategories(ctx, query, userID)
		}

		resp := SearchResponse{
			Query:   query,
			Results: make(map[string][]retriever.Match, len(results)),
			Total:   results.Count(),
		}

		for category, matches := range results {
			resp.Results[string(category)] = matches
			metrics.SearchMatchesTotal.WithLabelValues(string(category)).Add(float64(len(matches)))
		}

		c.JSON(http.StatusOK, resp)
	}
}
