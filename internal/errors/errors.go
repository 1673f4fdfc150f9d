package errors

import (
	"net/http"
	"strings"

	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Handlers answer failures through the helpers below: each writes the standard
// body and aborts the chain, so middleware needs no extra c.Abort().
// Internal packages return wrapped errors (fmt.Errorf("...: %w", err)) and leave
// logging to the handler. Completion failures never reach these helpers; they come
// back as llm.Outcome and the caller serves its fallback text.

// standard error codes
const (
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeBadRequest         = "bad_request"
	CodeConflict           = "conflict"
	CodeTooManyRequests    = "too_many_requests"
	CodeServiceUnavailable = "service_unavailable"
)

func respond(c *gin.Context, status int, code, message, fallback, details string) {
	if message == "" {
		message = fallback
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}

func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, CodeUnauthorized, message, "authentication required", "")
}

func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, CodeForbidden, message, "permission denied", "")
}

// resource names the missing thing, e.g. "transaction"
func NotFound(c *gin.Context, resource string) {
	message := ""
	if resource != "" {
		message = resource + " not found"
	}

	respond(c, http.StatusNotFound, CodeNotFound, message, "resource not found", "")
}

func BadRequest(c *gin.Context, message string, err error) {
	respond(c, http.StatusBadRequest, CodeBadRequest, message, "invalid request", sanitizeError(err))
}

// binding and validator failures from ShouldBind*
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	if err != nil && (strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation")) {
		message = "request validation failed"
	}

	respond(c, http.StatusBadRequest, CodeValidationError, message, "", sanitizeError(err))
}

// logs the full error with request context; the body only carries the sanitized form
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"category", Category(err),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	respond(c, http.StatusInternalServerError, CodeServerError, message, "", sanitizeError(err))
}

func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, CodeConflict, message, "resource conflict", "")
}

func TooManyRequests(c *gin.Context, message string) {
	respond(c, http.StatusTooManyRequests, CodeTooManyRequests, message, "too many requests", "")
}

// a dependency (store, limiter backend) is not available
func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, CodeServiceUnavailable, message, "service temporarily unavailable", "")
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	return classifyError(err).sanitized
}

// returns the classification category of an error, used as a log attribute
func Category(err error) string {
	return classifyError(err).category
}
