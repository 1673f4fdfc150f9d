package advisor

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
)

// asks for a short fit analysis of one strategy against the caller's profile
func buildAnalysisPrompt(req RecommendRequest, strategy records.Record) string {
	details, err := json.MarshalIndent(strategy, "", "  ")
	if err != nil {
		details = []byte("{}")
	}

	var builder strings.Builder

	builder.WriteString("Analyze this investment strategy for a user with the following preferences:\n")
	builder.WriteString(fmt.Sprintf("User Risk Profile: %s\n", req.RiskProfile))
	builder.WriteString(fmt.Sprintf("User Time Horizon: %s\n", req.TimeHorizon))
	builder.WriteString(fmt.Sprintf("User Goals: %s\n", req.Query))
	builder.WriteString("Strategy Details:\n")
	builder.Write(details)
	builder.WriteString("\nProvide a brief analysis focusing on:\n")
	builder.WriteString("1. How well this strategy matches the user's profile\n")
	builder.WriteString("2. Key benefits and potential risks\n")
	builder.WriteString("3. Specific considerations for this user\n")
	builder.WriteString("Keep the response concise and actionable.")

	return builder.String()
}

// deterministic commentary used when the completion fails
func fallbackAnalysis(riskProfile, timeHorizon, targetReturn string) string {
	return fmt.Sprintf("This strategy appears suitable for %s risk investors with a %s time horizon. "+
		"Key benefits include potential returns of %s%% and a diversified allocation across multiple asset classes. "+
		"Consider your specific financial goals and risk tolerance when evaluating this strategy.",
		strings.ToLower(riskProfile), strings.ToLower(timeHorizon), targetReturn)
}

// "k: v%" pairs joined by commas, keys sorted
func describeAllocation(strategy records.Record) string {
	allocation, ok := strategy.Map("allocation_blueprint")
	if !ok || len(allocation) == 0 {
		return ""
	}

	assets := make([]string, 0, len(allocation))
	for asset := range allocation {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	parts := make([]string, 0, len(assets))
	for _, asset := range assets {
		value, ok := records.Record(allocation).NumberText(asset)
		if !ok {
			value = fmt.Sprint(allocation[asset])
		}
		parts = append(parts, fmt.Sprintf("%s: %s%%", asset, value))
	}

	return strings.Join(parts, ", ")
}
