package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/logger"
	"github.com/shopspring/decimal"
)

const (
	noAssetsMessage      = "No assets found to generate recommendations."
	noTransactionMessage = "No transaction data found to generate recommendations."
	noHistoryMessage     = "No historical performance data available to generate insights."
	noCountryMessage     = "No country distribution data available to generate insights."

	recommendationsFallback = "Unable to generate AI recommendations at this time."
	emptyRecommendations    = "Unable to generate specific recommendations at this time."
	performanceFallback     = "Unable to generate AI insight at this time."
	countryFallback         = "Unable to generate country insight at this time."
)

const (
	portfolioPersona   = "You are a professional financial advisor providing personalized recommendations based on user data."
	performancePersona = "You are a professional financial advisor providing personalized insights based on historical performance data."
	countryPersona     = "You are a professional financial advisor providing personalized insights based on geographical investment distribution."
)

// a prepared insight call, or a fixed message when there is nothing to analyze
type insightPlan struct {
	system   string
	prompt   string
	empty    string
	fallback string
	multi    bool
}

// generates AI commentary on one part of the dashboard; failures produce a fixed line
func (s *Service) Insights(ctx context.Context, req InsightRequest) (*Insight, error) {
	if req.OwnerID == "" {
		return nil, records.ErrInvalidOwner
	}

	plan, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	if plan.empty != "" {
		return &Insight{Kind: req.Kind, Lines: []string{plan.empty}}, nil
	}

	outcome := s.completer.Complete(ctx, "insights", llm.TextGenerationRequest{
		SystemPrompt: plan.system,
		Messages:     []llm.Message{{Role: "user", Content: plan.prompt}},
	})

	if !outcome.OK() {
		logger.FromContext(ctx).Warn("insight generation failed, using fallback",
			"kind", string(req.Kind),
			"reason", string(outcome.Reason),
			"error", outcome.Err,
		)
		return &Insight{Kind: req.Kind, Lines: []string{plan.fallback}, Fallback: true}, nil
	}

	if !plan.multi {
		line := strings.ReplaceAll(strings.TrimSpace(outcome.Text), "\n", " ")
		return &Insight{Kind: req.Kind, Lines: []string{line}}, nil
	}

	lines := splitLines(outcome.Text)
	if len(lines) == 0 {
		lines = []string{emptyRecommendations}
	}

	return &Insight{Kind: req.Kind, Lines: lines}, nil
}

func (s *Service) plan(ctx context.Context, req InsightRequest) (insightPlan, error) {
	switch req.Kind {
	case InsightAssets:
		assets := s.loader.LoadFiltered(ctx, records.CategoryAssets, req.OwnerID)
		if len(assets) == 0 {
			return insightPlan{empty: noAssetsMessage}, nil
		}
		return insightPlan{
			system:   portfolioPersona,
			prompt:   assetsPrompt(assets),
			fallback: recommendationsFallback,
			multi:    true,
		}, nil

	case InsightSpending:
		txs := s.loader.LoadFiltered(ctx, records.CategoryTransactions, req.OwnerID)
		if len(txs) == 0 {
			return insightPlan{empty: noTransactionMessage}, nil
		}
		return insightPlan{
			system:   portfolioPersona,
			prompt:   spendingPrompt(txs),
			fallback: recommendationsFallback,
			multi:    true,
		}, nil

	case InsightPerformance:
		view := req.View
		if view == "" {
			view = ViewAsset
		}
		if view != ViewAsset && view != ViewType {
			return insightPlan{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
		}

		assets := s.loader.LoadFiltered(ctx, records.CategoryAssets, req.OwnerID)
		points := HistoricalPerformance(assets, view)
		if len(points) == 0 {
			return insightPlan{empty: noHistoryMessage}, nil
		}
		return insightPlan{
			system:   performancePersona,
			prompt:   performancePrompt(assets, points, view),
			fallback: performanceFallback,
		}, nil

	case InsightCountries:
		assets := s.loader.LoadFiltered(ctx, records.CategoryAssets, req.OwnerID)
		countries := CountryBreakdown(assets)
		if len(countries) == 0 {
			return insightPlan{empty: noCountryMessage}, nil
		}
		return insightPlan{
			system:   countryPersona,
			prompt:   countryPrompt(assets, countries),
			fallback: countryFallback,
		}, nil
	}

	return insightPlan{}, fmt.Errorf("%w: %q", ErrUnknownInsight, req.Kind)
}

func assetsPrompt(assets []records.Record) string {
	types := make([]string, 0, len(assets))
	risks := make([]decimal.Decimal, 0, len(assets))
	returns := make([]decimal.Decimal, 0, len(assets))
	countries := make([]string, 0, len(assets))

	for _, a := range assets {
		t, _ := a.String("type")
		risk, _ := a.Number("risk_rating")
		ret, _ := a.Number("expected_return")
		country, _ := a.String("country")
		if country == "" {
			country = unknownLabel
		}

		types = append(types, t)
		risks = append(risks, risk)
		returns = append(returns, ret)
		countries = append(countries, country)
	}

	data := encodeContext(map[string]any{
		"assets":             assets,
		"asset_distribution": AssetDistribution(assets),
		"total_assets":       len(assets),
		"asset_types":        types,
		"risk_ratings":       risks,
		"expected_returns":   returns,
		"countries":          countries,
	})

	var builder strings.Builder

	builder.WriteString("As a financial advisor, analyze the following asset portfolio data and provide 2-3 specific, actionable recommendations.\n")
	builder.WriteString("Focus on portfolio optimization and risk management based on the user's current assets.\n\n")
	builder.WriteString("Portfolio Data:\n")
	builder.WriteString(data)
	builder.WriteString("\n\nProvide recommendations that:\n")
	builder.WriteString("1. Are specific to the user's current asset mix and geographical distribution\n")
	builder.WriteString("2. Suggest concrete actions to improve portfolio balance\n")
	builder.WriteString("3. Consider the risk-return profile of existing assets\n")
	builder.WriteString("4. Are practical and implementable\n\n")
	builder.WriteString("Format each recommendation with an appropriate emoji and keep it under 2 sentences.")

	return builder.String()
}

func spendingPrompt(txs []records.Record) string {
	byCategory := SpendingByCategory(txs)

	categories := make([]string, 0, len(byCategory))
	counts := make(map[string]int, len(byCategory))
	for _, c := range byCategory {
		categories = append(categories, c.Category)
		counts[c.Category] = c.Count
	}

	byCurrency := SpendByCurrency(txs)
	currencies := make([]string, 0, len(byCurrency))
	for _, c := range byCurrency {
		currencies = append(currencies, c.Currency)
	}

	data := encodeContext(map[string]any{
		"transactions":        txs,
		"spending_categories": counts,
		"total_transactions":  len(txs),
		"categories":          categories,
		"spend_by_currency":   byCurrency,
		"currencies":          currencies,
	})

	var builder strings.Builder

	builder.WriteString("As a financial advisor, analyze the following spending data and provide 2-3 specific, actionable recommendations.\n")
	builder.WriteString("Focus on spending patterns and potential areas for optimization.\n\n")
	builder.WriteString("Spending Data:\n")
	builder.WriteString(data)
	builder.WriteString("\n\nProvide recommendations that:\n")
	builder.WriteString("1. Are specific to the user's current spending patterns and categories\n")
	builder.WriteString("2. Suggest concrete actions to optimize spending\n")
	builder.WriteString("3. Consider the frequency and distribution of spending across categories\n")
	builder.WriteString("4. Take into account the currency distribution\n")
	builder.WriteString("5. Are practical and implementable\n\n")
	builder.WriteString("Format each recommendation with an appropriate emoji and keep it under 2 sentences.")

	return builder.String()
}

func performancePrompt(assets []records.Record, points []PerformancePoint, view View) string {
	viewName := "individual assets"
	if view == ViewType {
		viewName = "average by asset type"
	}

	years := make(map[int]struct{})
	series := make(map[string]struct{})
	yearSums := make(map[int][]decimal.Decimal)
	for _, p := range points {
		years[p.Year] = struct{}{}
		series[p.Series] = struct{}{}
		yearSums[p.Year] = append(yearSums[p.Year], p.Return)
	}

	yearList := make([]int, 0, len(years))
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Ints(yearList)

	seriesList := make([]string, 0, len(series))
	for s := range series {
		seriesList = append(seriesList, s)
	}
	sort.Strings(seriesList)

	avgReturns := make(map[string]decimal.Decimal, len(yearSums))
	for y, values := range yearSums {
		avgReturns[fmt.Sprint(y)] = mean(decimal.Sum(decimal.Zero, values...), len(values))
	}

	data := encodeContext(map[string]any{
		"view_type":        viewName,
		"performance_data": points,
		"assets":           assets,
		"years":            yearList,
		"assets_list":      seriesList,
		"avg_returns":      avgReturns,
	})

	var builder strings.Builder

	builder.WriteString("As a financial advisor, analyze the following historical performance data and provide a brief, actionable insight.\n")
	builder.WriteString(fmt.Sprintf("Focus on identifying trends, risks, or opportunities based on the %s view.\n\n", viewName))
	builder.WriteString("Performance Data:\n")
	builder.WriteString(data)
	builder.WriteString("\n\nProvide a single, concise insight that:\n")
	builder.WriteString("1. Highlights the most important trend or observation from the actual data\n")
	builder.WriteString("2. Suggests a specific action or consideration based on the performance patterns\n")
	builder.WriteString("3. Is relevant to the current view (individual assets or asset types)\n")
	builder.WriteString("4. References specific numbers or trends from the data\n\n")
	builder.WriteString("Format the insight with an appropriate emoji and keep it under 2 sentences.")

	return builder.String()
}

func countryPrompt(assets []records.Record, countries []CountryDistribution) string {
	names := make([]string, 0, len(countries))
	counts := make(map[string]int, len(countries))
	avgReturns := make(map[string]decimal.Decimal, len(countries))
	for _, c := range countries {
		names = append(names, c.Country)
		counts[c.Country] = c.Count
		avgReturns[c.Country] = c.AvgReturn
	}

	data := encodeContext(map[string]any{
		"country_distribution": countries,
		"assets":               assets,
		"total_assets":         len(assets),
		"countries":            names,
		"asset_counts":         counts,
		"avg_returns":          avgReturns,
	})

	var builder strings.Builder

	builder.WriteString("As a financial advisor, analyze the following country-wise asset distribution by count and provide a brief, actionable insight.\n")
	builder.WriteString("Focus on identifying opportunities, risks, or diversification needs based on the geographical distribution.\n\n")
	builder.WriteString("Country Distribution Data:\n")
	builder.WriteString(data)
	builder.WriteString("\n\nProvide a single, concise insight that:\n")
	builder.WriteString("1. Highlights the most important observation about the geographical distribution by asset count\n")
	builder.WriteString("2. Suggests a specific action or consideration regarding country allocation\n")
	builder.WriteString("3. References specific numbers or percentages from the data (e.g., 'X% of assets are in Country Y')\n")
	builder.WriteString("4. Considers the balance between domestic (India) and international investments\n\n")
	builder.WriteString("Format the insight with an appropriate emoji and keep it under 2 sentences.")

	return builder.String()
}

func encodeContext(v map[string]any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}

	return string(data)
}

func splitLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
