package auth

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// RegisterHandler godoc
// @Summary Register
// @Description Create an account and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/register [post]
func RegisterHandler(userRepo users.Repository, issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.Register(c.Request.Context(), req.Email, req.Password)
		if stderrors.Is(err, users.ErrUserExists) {
			errors.Conflict(c, "user already exists")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to register user", err)
			return
		}

		token, err := issuer.Generate(user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		logger.Info("user registered", "email", user.Email)

		c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
	}
}

// LoginHandler godoc
// @Summary Log in
// @Description Verify credentials and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(userRepo users.Repository, issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.Authenticate(c.Request.Context(), req.Email, req.Password)
		if stderrors.Is(err, users.ErrInvalidCredentials) {
			errors.Unauthorized(c, "invalid email or password")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to authenticate", err)
			return
		}

		token, err := issuer.Generate(user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get the authenticated account
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(userRepo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		user, err := userRepo.FindByEmail(c.Request.Context(), userID)
		if stderrors.Is(err, users.ErrNotFound) {
			errors.NotFound(c, "user")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to load user", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// LogoutHandler godoc
// @Summary Log out
// @Description Revoke the token used for this request
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/logout [post]
// @Security BearerAuth
func LogoutHandler(revoker auth.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.GetClaims(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		if claims.ID != "" && claims.ExpiresAt != nil {
			if err := revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				errors.InternalError(c, "failed to log out", err)
				return
			}
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
	}
}
