package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, statErr := os.Stat("/definitely/not/here.json")
	var syntaxTarget map[string]any
	jsonErr := json.Unmarshal([]byte("{broken"), &syntaxTarget)

	tests := []struct {
		name      string
		err       error
		category  string
		sanitized string
	}{
		{"pg error", fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"}), CategoryDatabase, "database operation failed"},
		{"deadline", fmt.Errorf("completion: %w", context.DeadlineExceeded), CategoryTimeout, "request timed out"},
		{"canceled", context.Canceled, CategoryTimeout, "request canceled"},
		{"path error", statErr, CategoryStorage, "storage operation failed"},
		{"json syntax", jsonErr, CategoryStorage, "stored data is unreadable"},
		{"not found text", fmt.Errorf("transaction not found"), CategoryNotFound, "resource not found"},
		{"network text", fmt.Errorf("dial tcp: connection refused"), CategoryNetwork, "connection error occurred"},
		{"provider", fmt.Errorf("anthropic API error (status 500)"), CategoryUpstream, "language model request failed"},
		{"redis", fmt.Errorf("redis: client is closed"), CategoryCache, "cache operation failed"},
		{"lock", fmt.Errorf("failed to lock records document"), CategoryStorage, "storage operation failed"},
		{"unknown", fmt.Errorf("something odd"), CategoryUnknown, "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := classifyError(tt.err)
			assert.Equal(t, tt.category, info.category)
			assert.Equal(t, tt.sanitized, info.sanitized)
		})
	}
}

func TestSanitizeError_Development(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	err := fmt.Errorf("failed to read document: disk on fire")
	assert.Equal(t, err.Error(), sanitizeError(err))
	assert.Empty(t, sanitizeError(nil))
}

func TestResponses(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "") }, http.StatusForbidden, CodeForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "transaction") }, http.StatusNotFound, CodeNotFound},
		{"bad request", func(c *gin.Context) { BadRequest(c, "", nil) }, http.StatusBadRequest, CodeBadRequest},
		{"validation", func(c *gin.Context) { ValidationError(c, fmt.Errorf("binding failed")) }, http.StatusBadRequest, CodeValidationError},
		{"internal", func(c *gin.Context) { InternalError(c, "failed", fmt.Errorf("sql: boom")) }, http.StatusInternalServerError, CodeServerError},
		{"conflict", func(c *gin.Context) { Conflict(c, "") }, http.StatusConflict, CodeConflict},
		{"too many", func(c *gin.Context) { TooManyRequests(c, "") }, http.StatusTooManyRequests, CodeTooManyRequests},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "") }, http.StatusServiceUnavailable, CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)

			tt.call(c)

			assert.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "asset")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "asset not found", resp.Message)
}

func TestResponses_AbortChain(t *testing.T) {
	router := gin.New()
	reached := false

	router.GET("/guarded", func(c *gin.Context) {
		Unauthorized(c, "")
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}
