package recommendations

import (
	"context"

	"codeberg.org/finpilot/server/internal/advisor"
)

type Recommender interface {
	Recommend(ctx context.Context, req advisor.RecommendRequest) (*advisor.RecommendResponse, error)
}

type RecommendRequest struct {
	Query           string   `json:"query" binding:"max=500"`
	RiskProfile     string   `json:"risk_profile" binding:"required"`
	TimeHorizon     string   `json:"time_horizon" binding:"required"`
	AssetPriorities []string `json:"asset_priorities"`
}

// choices offered by the recommendation form
type OptionsResponse struct {
	RiskProfiles    []string `json:"risk_profiles"`
	TimeHorizons    []string `json:"time_horizons"`
	AssetPriorities []string `json:"asset_priorities"`
}
