package analytics

import (
	"github.com/gin-gonic/gin"
)

// router is expected to carry the auth middleware; limit guards the completion call
func RegisterRoutes(router *gin.RouterGroup, service Service, limit gin.HandlerFunc) {
	analyticsGroup := router.Group("/analytics")
	{
		analyticsGroup.GET("/summary", SummaryHandler(service))
		analyticsGroup.GET("/performance", PerformanceHandler(service))
		analyticsGroup.POST("/insights", limit, InsightsHandler(service))
	}
}
