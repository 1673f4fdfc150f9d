package auth

import (
	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// limit guards the credential endpoints
func RegisterRoutes(router *gin.RouterGroup, userRepo users.Repository, issuer *auth.TokenIssuer, revoker auth.Revoker, limit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", limit, RegisterHandler(userRepo, issuer))
		authGroup.POST("/login", limit, LoginHandler(userRepo, issuer))
		authGroup.GET("/me", auth.AuthMiddleware(issuer, revoker), GetCurrentUserHandler(userRepo))
		authGroup.POST("/logout", auth.AuthMiddleware(issuer, revoker), LogoutHandler(revoker))
	}
}
