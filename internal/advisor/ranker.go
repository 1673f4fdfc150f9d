package advisor

import (
	"sort"
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
)

// builds asset -> rank (1 = highest) from an ordered list; later duplicates are ignored
func PriorityMap(order []string) map[string]int {
	if len(order) == 0 {
		order = DefaultAssetOrder
	}

	priorities := make(map[string]int, len(order))
	for _, asset := range order {
		asset = strings.TrimSpace(asset)
		if asset == "" {
			continue
		}
		if _, seen := priorities[asset]; seen {
			continue
		}
		priorities[asset] = len(priorities) + 1
	}

	return priorities
}

// orders strategies by 0.7*priority + 0.3*profile, descending; ties keep input order
func Rank(strategies []records.Record, priorities map[string]int, riskProfile, timeHorizon string) []Ranked {
	ranked := make([]Ranked, 0, len(strategies))

	for _, strategy := range strategies {
		priority := priorityScore(strategy, priorities)
		risk := riskMatch(strategy, riskProfile)
		horizon := horizonMatch(strategy, timeHorizon)
		profile := (risk + horizon) / 2

		ranked = append(ranked, Ranked{
			Record:        strategy,
			PriorityScore: priority,
			RiskMatch:     risk,
			HorizonMatch:  horizon,
			ProfileMatch:  profile,
			Total:         priority*priorityWeight + profile*profileWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	return ranked
}

// sum of pct/100 * (n - rank + 1) over prioritized allocation entries; non-numeric entries count as zero
func priorityScore(strategy records.Record, priorities map[string]int) float64 {
	allocation, ok := strategy.Map("allocation_blueprint")
	if !ok {
		return 0
	}

	n := len(priorities)

	// sorted keys keep float summation order stable
	assets := make([]string, 0, len(allocation))
	for asset := range allocation {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	score := 0.0
	for _, asset := range assets {
		rank, ok := priorities[asset]
		if !ok {
			continue
		}

		pct, ok := records.Record(allocation).Number(asset)
		if !ok {
			continue
		}

		weight := float64(n - rank + 1)
		score += pct.InexactFloat64() / 100 * weight
	}

	return score
}

func riskMatch(strategy records.Record, selection string) float64 {
	field, _ := strategy.String("risk_profile")
	return substringMatch(field, strings.TrimSpace(selection))
}

// only the first word of the selection is compared ("Long-term (> 5 years)" -> "long-term")
func horizonMatch(strategy records.Record, selection string) float64 {
	field, _ := strategy.String("time_horizon")

	words := strings.Fields(selection)
	if len(words) == 0 {
		return matchFull
	}

	return substringMatch(field, words[0])
}

func substringMatch(field, selection string) float64 {
	if strings.Contains(strings.ToLower(field), strings.ToLower(selection)) {
		return matchFull
	}

	return matchPartial
}

// high above 80% profile match, medium above 50%, otherwise low
func priorityLabel(matchPercent int) string {
	switch {
	case matchPercent > 80:
		return "high"
	case matchPercent > 50:
		return "medium"
	default:
		return "low"
	}
}
