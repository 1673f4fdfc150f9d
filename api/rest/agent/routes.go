package agent

import (
	"github.com/gin-gonic/gin"
)

// router is expected to carry the auth middleware; limit guards the completion call
func RegisterRoutes(router *gin.RouterGroup, chatter Chatter, limit gin.HandlerFunc) {
	router.POST("/chat", limit, ChatHandler(chatter))
}
