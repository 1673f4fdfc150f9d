package analytics

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
	"github.com/shopspring/decimal"
)

const unknownLabel = "Unknown"

func New(loader Loader, completer Completer) *Service {
	return &Service{
		loader:    loader,
		completer: completer,
	}
}

// builds every dashboard aggregate for the caller
func (s *Service) Summary(ctx context.Context, ownerID string) (*Summary, error) {
	if ownerID == "" {
		return nil, records.ErrInvalidOwner
	}

	txs := s.loader.LoadFiltered(ctx, records.CategoryTransactions, ownerID)
	assets := s.loader.LoadFiltered(ctx, records.CategoryAssets, ownerID)

	countries := CountryBreakdown(assets)

	return &Summary{
		TotalTransactions:   len(txs),
		TotalAssets:         len(assets),
		Countries:           len(countries),
		SpendingByCategory:  SpendingByCategory(txs),
		SpendByCurrency:     SpendByCurrency(txs),
		AssetDistribution:   AssetDistribution(assets),
		ReturnRisk:          ReturnRiskPoints(assets),
		CountryDistribution: countries,
	}, nil
}

// historical returns of the caller's assets, per asset or averaged per type and year
func (s *Service) Performance(ctx context.Context, ownerID string, view View) ([]PerformancePoint, error) {
	if ownerID == "" {
		return nil, records.ErrInvalidOwner
	}

	if view != ViewAsset && view != ViewType {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	return HistoricalPerformance(s.loader.LoadFiltered(ctx, records.CategoryAssets, ownerID), view), nil
}

// "credit_card" -> "CREDIT CARD"
func FormatLabel(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "_", " "))
}

// transaction counts per formatted category, most frequent first
func SpendingByCategory(txs []records.Record) []CategoryCount {
	counts := make(map[string]int)
	for _, tx := range txs {
		category, ok := tx.String("category")
		if !ok {
			continue
		}
		counts[FormatLabel(category)]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, CategoryCount{Category: category, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})

	return out
}

// amounts summed per currency; amounts are never mixed across currencies
func SpendByCurrency(txs []records.Record) []CurrencyTotal {
	totals := make(map[string]*CurrencyTotal)
	for _, tx := range txs {
		amount, ok := tx.Number("amount")
		if !ok {
			continue
		}

		currency, _ := tx.String("currency")
		if currency == "" {
			currency = unknownLabel
		}

		t, ok := totals[currency]
		if !ok {
			t = &CurrencyTotal{Currency: currency, Total: decimal.Zero}
			totals[currency] = t
		}
		t.Count++
		t.Total = t.Total.Add(amount)
	}

	out := make([]CurrencyTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })

	return out
}

// asset count and mean expected return per formatted type
func AssetDistribution(assets []records.Record) []TypeDistribution {
	type acc struct {
		count int
		sum   decimal.Decimal
	}

	groups := make(map[string]*acc)
	for _, a := range assets {
		assetType, ok := a.String("type")
		if !ok {
			continue
		}

		label := FormatLabel(assetType)
		g, ok := groups[label]
		if !ok {
			g = &acc{sum: decimal.Zero}
			groups[label] = g
		}

		ret, _ := a.Number("expected_return")
		g.count++
		g.sum = g.sum.Add(ret)
	}

	out := make([]TypeDistribution, 0, len(groups))
	for label, g := range groups {
		out = append(out, TypeDistribution{
			Type:      label,
			Count:     g.count,
			AvgReturn: mean(g.sum, g.count),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return out
}

// expected return against risk rating, one point per named asset
func ReturnRiskPoints(assets []records.Record) []ReturnRisk {
	out := make([]ReturnRisk, 0, len(assets))
	for _, a := range assets {
		name, ok := a.String("name")
		if !ok {
			continue
		}

		ret, _ := a.Number("expected_return")
		risk, _ := a.Number("risk_rating")

		out = append(out, ReturnRisk{Name: name, Return: ret, Risk: risk})
	}

	return out
}

// asset count, mean expected return and total minimum investment per country
func CountryBreakdown(assets []records.Record) []CountryDistribution {
	type acc struct {
		count int
		ret   decimal.Decimal
		value decimal.Decimal
	}

	groups := make(map[string]*acc)
	for _, a := range assets {
		country, _ := a.String("country")
		if country == "" {
			country = unknownLabel
		}

		g, ok := groups[country]
		if !ok {
			g = &acc{ret: decimal.Zero, value: decimal.Zero}
			groups[country] = g
		}

		ret, _ := a.Number("expected_return")
		value, _ := a.Number("minimum_investment_amount")

		g.count++
		g.ret = g.ret.Add(ret)
		g.value = g.value.Add(value)
	}

	out := make([]CountryDistribution, 0, len(groups))
	for country, g := range groups {
		out = append(out, CountryDistribution{
			Country:    country,
			Count:      g.count,
			AvgReturn:  mean(g.ret, g.count),
			TotalValue: g.value,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Country < out[j].Country
	})

	return out
}

// flattens financial_details.historical_performance; entries that do not parse are dropped
func HistoricalPerformance(assets []records.Record, view View) []PerformancePoint {
	type key struct {
		series string
		year   int
	}
	type acc struct {
		count int
		sum   decimal.Decimal
	}

	groups := make(map[key]*acc)
	order := make([]key, 0)

	for _, a := range assets {
		details, ok := a.Map("financial_details")
		if !ok {
			continue
		}
		history, ok := details["historical_performance"].(map[string]any)
		if !ok {
			continue
		}

		var series string
		if view == ViewType {
			assetType, _ := a.String("type")
			series = FormatLabel(assetType)
		} else {
			series, _ = a.String("name")
		}

		for yearText, raw := range history {
			year, err := strconv.Atoi(strings.TrimSpace(yearText))
			if err != nil {
				continue
			}

			ret, ok := parsePercent(raw)
			if !ok {
				continue
			}

			k := key{series: series, year: year}
			g, ok := groups[k]
			if !ok {
				g = &acc{sum: decimal.Zero}
				groups[k] = g
				order = append(order, k)
			}

			// per-asset view keeps one entry per asset and year; same-named assets are averaged
			g.count++
			g.sum = g.sum.Add(ret)
		}
	}

	out := make([]PerformancePoint, 0, len(order))
	for _, k := range order {
		g := groups[k]
		out = append(out, PerformancePoint{
			Series: k.series,
			Year:   k.year,
			Return: mean(g.sum, g.count),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Series != out[j].Series {
			return out[i].Series < out[j].Series
		}
		return out[i].Year < out[j].Year
	})

	return out
}

// accepts "12.5%", "12.5" and plain numbers
func parsePercent(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		rec := records.Record{"v": v}
		return rec.Number("v")
	}
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}

	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}
