package analytics

import (
	"context"
	"errors"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/llm"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownView    = errors.New("unknown performance view")
	ErrUnknownInsight = errors.New("unknown insight kind")
)

type Loader interface {
	LoadFiltered(ctx context.Context, c records.Category, ownerID string) []records.Record
}

type Completer interface {
	Complete(ctx context.Context, feature string, req llm.TextGenerationRequest) llm.Outcome
}

// dashboard aggregates over the caller's transactions and assets
type Service struct {
	loader    Loader
	completer Completer
}

type View string

const (
	ViewAsset View = "asset"
	ViewType  View = "type"
)

type InsightKind string

const (
	InsightAssets      InsightKind = "assets"
	InsightSpending    InsightKind = "spending"
	InsightPerformance InsightKind = "performance"
	InsightCountries   InsightKind = "countries"
)

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

type TypeDistribution struct {
	Type      string          `json:"type"`
	Count     int             `json:"count"`
	AvgReturn decimal.Decimal `json:"avg_return"`
}

type ReturnRisk struct {
	Name   string          `json:"name"`
	Return decimal.Decimal `json:"return"`
	Risk   decimal.Decimal `json:"risk"`
}

type CountryDistribution struct {
	Country    string          `json:"country"`
	Count      int             `json:"count"`
	AvgReturn  decimal.Decimal `json:"avg_return"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// one year of returns for a series (an asset name or a formatted asset type)
type PerformancePoint struct {
	Series string          `json:"series"`
	Year   int             `json:"year"`
	Return decimal.Decimal `json:"return"`
}

type Summary struct {
	TotalTransactions   int                   `json:"total_transactions"`
	TotalAssets         int                   `json:"total_assets"`
	Countries           int                   `json:"countries"`
	SpendingByCategory  []CategoryCount       `json:"spending_by_category"`
	SpendByCurrency     []CurrencyTotal       `json:"spend_by_currency"`
	AssetDistribution   []TypeDistribution    `json:"asset_distribution"`
	ReturnRisk          []ReturnRisk          `json:"return_risk"`
	CountryDistribution []CountryDistribution `json:"country_distribution"`
}

type InsightRequest struct {
	OwnerID string
	Kind    InsightKind
	View    View // performance insights only
}

type Insight struct {
	Kind     InsightKind `json:"kind"`
	Lines    []string    `json:"lines"`
	Fallback bool        `json:"fallback"`
}
