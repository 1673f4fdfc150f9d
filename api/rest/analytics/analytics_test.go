package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/finpilot/server/internal/analytics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	lastInsight analytics.InsightRequest
}

func (m *mockService) Summary(_ context.Context, _ string) (*analytics.Summary, error) {
	return &analytics.Summary{TotalTransactions: 3}, nil
}

func (m *mockService) Performance(_ context.Context, _ string, view analytics.View) ([]analytics.PerformancePoint, error) {
	if view != analytics.ViewAsset && view != analytics.ViewType {
		return nil, fmt.Errorf("%w: %q", analytics.ErrUnknownView, view)
	}

	return []analytics.PerformancePoint{{Series: "FD", Year: 2023}}, nil
}

func (m *mockService) Insights(_ context.Context, req analytics.InsightRequest) (*analytics.Insight, error) {
	m.lastInsight = req

	return &analytics.Insight{Kind: req.Kind, Lines: []string{"💡 Diversify."}}, nil
}

func newRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	group := router.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", "ann@example.com")
		c.Next()
	})
	RegisterRoutes(group, service, func(c *gin.Context) { c.Next() })

	return router
}

func TestSummaryHandler(t *testing.T) {
	router := newRouter(&mockService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summary analytics.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.TotalTransactions)
}

func TestPerformanceHandler(t *testing.T) {
	router := newRouter(&mockService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/performance?by=type", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp PerformanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "type", resp.View)
	assert.Len(t, resp.Points, 1)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/performance?by=country", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsightsHandler(t *testing.T) {
	service := &mockService{}
	router := newRouter(service)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/insights", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(`{"kind": "performance", "view": "type"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, analytics.InsightPerformance, service.lastInsight.Kind)
	assert.Equal(t, analytics.ViewType, service.lastInsight.View)
	assert.Equal(t, "ann@example.com", service.lastInsight.OwnerID)

	assert.Equal(t, http.StatusBadRequest, post(`{"kind": "weather"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
}
