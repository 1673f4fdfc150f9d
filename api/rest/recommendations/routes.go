package recommendations

import (
	"github.com/gin-gonic/gin"
)

// router is expected to carry the auth middleware; limit guards the completion calls
func RegisterRoutes(router *gin.RouterGroup, recommender Recommender, limit gin.HandlerFunc) {
	router.GET("/recommendations/options", OptionsHandler)
	router.POST("/recommendations", limit, RecommendHandler(recommender))
}
