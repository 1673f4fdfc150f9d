package scoring

import (
	"encoding/json"
	"testing"

	"codeberg.org/finpilot/server/finpilot/records"
	"github.com/stretchr/testify/assert"
)

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"grocery", "spend", "june"}, Terms("  Grocery spend\tJUNE grocery "))
	assert.Empty(t, Terms(""))
	assert.Empty(t, Terms("   "))
}

func TestRawScore_GroceriesExample(t *testing.T) {
	rec := records.Record{
		"category":      "groceries",
		"merchant_name": "BigBasket",
		"keywords":      []any{"transaction", "finance", "payment"},
	}

	raw := RawScore(Terms("groceries"), rec)
	assert.Equal(t, 2, raw)
	assert.InDelta(t, 1.0/3.0, Normalize(raw), 1e-9)
}

func TestRawScore_KeywordPass(t *testing.T) {
	rec := records.Record{"keywords": []any{"Mutual_Fund", "equity"}}

	assert.Equal(t, 3, RawScore([]string{"equity"}, rec))
	assert.Equal(t, 2, RawScore([]string{"fund"}, rec))
	// keyword pass is a ceiling, not a sum
	assert.Equal(t, 3, RawScore([]string{"equity", "fund", "mutual_fund"}, rec))
	assert.Equal(t, 0, RawScore([]string{"bond"}, rec))
}

func TestRawScore_FieldPassSumsPerTerm(t *testing.T) {
	rec := records.Record{
		"merchant_name": "Amazon",
		"description":   "amazon prime renewal",
		"location":      map[string]any{"city": "Amazon Town", "country": "India"},
	}

	// exact merchant (2) + substring description (1) + nested substring city (1)
	assert.Equal(t, 4, RawScore([]string{"amazon"}, rec))

	// max over terms, not summed across terms
	assert.Equal(t, 4, RawScore([]string{"amazon", "india"}, rec))
	assert.Equal(t, 2, RawScore([]string{"india"}, rec))
}

func TestRawScore_IgnoresNonStrings(t *testing.T) {
	rec := records.Record{
		"amount": json.Number("250"),
		"tags":   []any{"rent"},
		"flag":   true,
		"deep":     map[string]any{"inner": map[string]any{"city": "rent"}},
	}

	assert.Equal(t, 0, RawScore([]string{"250"}, rec))
	assert.Equal(t, 0, RawScore([]string{"rent"}, rec))
}

func TestRawScore_EmptyTerms(t *testing.T) {
	rec := records.Record{"name": "anything", "keywords": []any{"anything"}}
	assert.Equal(t, 0, RawScore(nil, rec))
}

func TestExactKeywordOutranksFieldSubstring(t *testing.T) {
	keyword := records.Record{"keywords": []any{"gold"}}
	substring := records.Record{"name": "Goldman Fund"}

	kw := RawScore([]string{"gold"}, keyword)
	sub := RawScore([]string{"gold"}, substring)

	assert.GreaterOrEqual(t, kw, 3)
	assert.LessOrEqual(t, sub, 2)
	assert.Less(t, Normalize(kw), Normalize(sub))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 1.0, Normalize(0))
	assert.Equal(t, 0.25, Normalize(3))
}
