package advisor

import (
	"context"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/retriever"
)

// default priority order offered to callers, highest first
var DefaultAssetOrder = []string{"FD", "mutual_funds", "bonds", "equity", "gold", "NPS", "PPF", "ELSS", "SIP"}

var (
	RiskProfiles = []string{"Conservative", "Moderate", "Aggressive"}
	TimeHorizons = []string{"Short-term (< 1 year)", "Medium-term (1-5 years)", "Long-term (> 5 years)"}
)

const (
	priorityWeight = 0.7
	profileWeight  = 0.3
	matchFull      = 1.0
	matchPartial   = 0.5
)

// searches a single category
type Searcher interface {
	Search(ctx context.Context, category records.Category, query, ownerID string, k int) []retriever.Match
}

type Completer interface {
	Complete(ctx context.Context, feature string, req llm.TextGenerationRequest) llm.Outcome
}

// ranks strategies and writes per-strategy commentary
type Advisor struct {
	searcher  Searcher
	completer Completer
}

// a strategy with its scores
type Ranked struct {
	Record        records.Record
	PriorityScore float64
	RiskMatch     float64
	HorizonMatch  float64
	ProfileMatch  float64
	Total         float64
}

type RecommendRequest struct {
	OwnerID         string
	Query           string
	RiskProfile     string
	TimeHorizon     string
	AssetPriorities []string // highest priority first; empty uses DefaultAssetOrder
}

// one recommendation card
type Recommendation struct {
	StrategyID   string  `json:"strategy_id"`
	Name         string  `json:"name"`
	RiskProfile  string  `json:"risk_profile"`
	TimeHorizon  string  `json:"time_horizon"`
	TargetReturn string  `json:"target_return"`
	Score        float64 `json:"score"`
	MatchPercent int     `json:"match_percent"`
	Priority     string  `json:"priority"`
	Allocation   string  `json:"allocation"`
	Analysis     string  `json:"analysis"`
	Fallback     bool    `json:"fallback"`
}

type RecommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
}
