package analytics

import (
	"context"

	"codeberg.org/finpilot/server/internal/analytics"
)

type Service interface {
	Summary(ctx context.Context, ownerID string) (*analytics.Summary, error)
	Performance(ctx context.Context, ownerID string, view analytics.View) ([]analytics.PerformancePoint, error)
	Insights(ctx context.Context, req analytics.InsightRequest) (*analytics.Insight, error)
}

type InsightRequest struct {
	Kind string `json:"kind" binding:"required,oneof=assets spending performance countries"`
	View string `json:"view" binding:"omitempty,oneof=asset type"`
}

type PerformanceResponse struct {
	View   string                       `json:"view"`
	Points []analytics.PerformancePoint `json:"points"`
}
