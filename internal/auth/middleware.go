package auth

import (
	"strings"

	"codeberg.org/finpilot/server/internal/errors"
	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// validates JWT tokens and adds user info to context
func AuthMiddleware(issuer *TokenIssuer, revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := issuer.Validate(parts[1])
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			return
		}

		if revoker != nil && claims.ID != "" {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// an unreachable revocation store must not lock everyone out
				logger.Warn("token revocation check failed", "error", err)
			}
			if revoked {
				errors.Unauthorized(c, "token has been revoked")
				return
			}
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextEmail, claims.Email)
		c.Set(contextClaims, claims)

		scoped := logger.FromContext(c.Request.Context()).With("user_id", claims.UserID)
		ctx := logger.WithContext(c.Request.Context(), scoped)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

// returns the validated claims of the request's token
func GetClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(contextClaims)
	if !exists {
		return nil, false
	}

	claims, ok := v.(*Claims)
	return claims, ok
}
