package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/logger"
)

const noStrategiesMessage = "No investment strategies found. Try a different search term."

func New(searcher Searcher, completer Completer) *Advisor {
	return &Advisor{
		searcher:  searcher,
		completer: completer,
	}
}

// searches strategies for the query, ranks them and attaches commentary per strategy
func (a *Advisor) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	matches := a.searcher.Search(ctx, records.CategoryStrategies, req.Query, req.OwnerID, 0)
	if len(matches) == 0 {
		return &RecommendResponse{
			Recommendations: []Recommendation{},
			Message:         noStrategiesMessage,
		}, nil
	}

	candidates := make([]records.Record, len(matches))
	for i, m := range matches {
		candidates[i] = m.Record
	}

	ranked := Rank(candidates, PriorityMap(req.AssetPriorities), req.RiskProfile, req.TimeHorizon)
	recommendations := make([]Recommendation, len(ranked))

	// analyses run concurrently; each has its own timeout inside the completer
	var wg sync.WaitGroup
	for i, r := range ranked {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recommendations[i] = a.buildRecommendation(ctx, req, r)
		}()
	}
	wg.Wait()

	return &RecommendResponse{Recommendations: recommendations}, nil
}

func (a *Advisor) buildRecommendation(ctx context.Context, req RecommendRequest, r Ranked) Recommendation {
	rec := r.Record

	name := stringOr(rec, "name", "Unnamed Strategy")
	risk := stringOr(rec, "risk_profile", "Not specified")
	horizon := stringOr(rec, "time_horizon", "Not specified")

	target, ok := rec.NumberText("target_annual_return")
	if !ok {
		target = "0"
	}

	matchPercent := int(r.ProfileMatch * 100)

	outcome := a.completer.Complete(ctx, "recommendations", llm.TextGenerationRequest{
		Messages: []llm.Message{{Role: "user", Content: buildAnalysisPrompt(req, rec)}},
	})

	analysis := strings.TrimSpace(outcome.Text)
	if !outcome.OK() {
		logger.FromContext(ctx).Warn("strategy analysis failed, using fallback",
			"strategy_id", rec.ID(records.CategoryStrategies),
			"reason", string(outcome.Reason),
			"error", outcome.Err,
		)
		analysis = fallbackAnalysis(req.RiskProfile, req.TimeHorizon, target)
	}

	return Recommendation{
		StrategyID:   rec.ID(records.CategoryStrategies),
		Name:         name,
		RiskProfile:  risk,
		TimeHorizon:  horizon,
		TargetReturn: target,
		Score:        r.Total,
		MatchPercent: matchPercent,
		Priority:     priorityLabel(matchPercent),
		Allocation:   describeAllocation(rec),
		Analysis:     analysis,
		Fallback:     !outcome.OK(),
	}
}

func stringOr(rec records.Record, key, fallback string) string {
	if s, ok := rec.String(key); ok && s != "" {
		return s
	}

	return fallback
}
