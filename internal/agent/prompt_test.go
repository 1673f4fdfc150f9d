package agent

import (
	"encoding/json"
	"strings"
	"testing"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/retriever"
	"github.com/stretchr/testify/assert"
)

const owner = "a@example.com"

func emptyResults() retriever.Results {
	results := retriever.Results{}
	for _, c := range records.Categories {
		results[c] = []retriever.Match{}
	}

	return results
}

func sampleTransaction() records.Record {
	return records.Record{
		"transaction_id": "t1",
		"owner_id":       owner,
		"timestamp":      "2024-05-01T08:30:00",
		"amount":         json.Number("1520.75"),
		"currency":       "INR",
		"merchant_name":  "BigBasket",
		"category":       "groceries",
	}
}

func sampleAsset() records.Record {
	return records.Record{
		"asset_id":        "a1",
		"owner_id":        owner,
		"name":            "Nifty Index Fund",
		"type":            "mutual_fund",
		"risk_rating":     json.Number("3"),
		"expected_return": json.Number("12.4"),
		"tenure":          "5 years",
	}
}

func sampleStrategy() records.Record {
	return records.Record{
		"strategy_id":          "s1",
		"name":                 "Wealth Builder",
		"risk_profile":         "Aggressive",
		"time_horizon":         "Long-term",
		"target_annual_return": json.Number("15"),
		"allocation_blueprint": map[string]any{"equity": json.Number("40"), "bonds": json.Number("20")},
	}
}

func TestBuildSystemPrompt_EmptyResults(t *testing.T) {
	prompt := BuildSystemPrompt(emptyResults(), owner)

	assert.Contains(t, prompt, "Current User ID: "+owner)
	for _, c := range records.Categories {
		assert.Contains(t, prompt, "📊 "+strings.ToUpper(string(c))+":\n"+noResults)
	}
	assert.Equal(t, 3, strings.Count(prompt, noResults))
	assert.True(t, strings.HasSuffix(prompt, "always provide context for your recommendations."))
}

func TestBuildSystemPrompt_MissingCategoryKey(t *testing.T) {
	prompt := BuildSystemPrompt(retriever.Results{}, owner)

	assert.Equal(t, 3, strings.Count(prompt, "📊 "))
	assert.Equal(t, 3, strings.Count(prompt, noResults))
}

func TestBuildSystemPrompt_Projections(t *testing.T) {
	results := emptyResults()
	results[records.CategoryTransactions] = []retriever.Match{{Record: sampleTransaction(), Score: 0.25}}
	results[records.CategoryAssets] = []retriever.Match{{Record: sampleAsset(), Score: 0.5}}
	results[records.CategoryStrategies] = []retriever.Match{{Record: sampleStrategy(), Score: 0.5}}

	prompt := BuildSystemPrompt(results, owner)

	assert.Contains(t, prompt, "1. Date: 2024-05-01, Amount: 1520.75 INR, Merchant: BigBasket, Category: groceries\n")
	assert.Contains(t, prompt, "1. Name: Nifty Index Fund, Type: mutual_fund, Risk Rating: 3, Expected Return: 12.4%, Tenure: 5 years\n")
	assert.Contains(t, prompt, `1. Name: Wealth Builder, Risk Profile: Aggressive, Time Horizon: Long-term, Target Return: 15%, Allocation: {"bonds":20,"equity":40}`)
	assert.NotContains(t, prompt, noResults)

	// fixed category order
	txIdx := strings.Index(prompt, "📊 TRANSACTIONS")
	assetIdx := strings.Index(prompt, "📊 FINANCIAL_ASSETS")
	strategyIdx := strings.Index(prompt, "📊 INVESTMENT_STRATEGIES")
	assert.Less(t, txIdx, assetIdx)
	assert.Less(t, assetIdx, strategyIdx)
}

func TestBuildSystemPrompt_SkipsMalformedAndForeign(t *testing.T) {
	malformed := sampleTransaction()
	delete(malformed, "merchant_name")

	foreign := sampleTransaction()
	foreign["owner_id"] = "intruder@example.com"
	foreign["merchant_name"] = "SecretShop"

	second := sampleTransaction()
	second["merchant_name"] = "DMart"

	results := emptyResults()
	results[records.CategoryTransactions] = []retriever.Match{
		{Record: malformed, Score: 0.25},
		{Record: foreign, Score: 0.25},
		{Record: second, Score: 0.33},
	}

	prompt := BuildSystemPrompt(results, owner)

	assert.NotContains(t, prompt, "SecretShop")
	assert.Contains(t, prompt, "1. Date: 2024-05-01, Amount: 1520.75 INR, Merchant: DMart")
}

func TestBuildSystemPrompt_AllSkippedShowsNoResults(t *testing.T) {
	broken := sampleAsset()
	delete(broken, "tenure")

	results := emptyResults()
	results[records.CategoryAssets] = []retriever.Match{{Record: broken, Score: 0.5}}

	prompt := BuildSystemPrompt(results, owner)
	assert.Contains(t, prompt, "📊 FINANCIAL_ASSETS:\n"+noResults)
}
