package retriever

import (
	"context"
	"fmt"
	"testing"

	"codeberg.org/finpilot/server/finpilot/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLoader struct {
	data map[records.Category][]records.Record
}

func (m *mockLoader) LoadFiltered(_ context.Context, c records.Category, ownerID string) []records.Record {
	return records.FilterByOwner(c, m.data[c], ownerID)
}

// returns every record regardless of owner, to prove the client filters too
type leakyLoader struct {
	data map[records.Category][]records.Record
}

func (l *leakyLoader) LoadFiltered(_ context.Context, c records.Category, _ string) []records.Record {
	return l.data[c]
}

const owner = "a@example.com"

func fixtures() map[records.Category][]records.Record {
	return map[records.Category][]records.Record{
		records.CategoryTransactions: {
			{"transaction_id": "t1", "owner_id": owner, "category": "groceries", "merchant_name": "BigBasket", "keywords": []any{"transaction", "finance", "payment"}},
			{"transaction_id": "t2", "owner_id": owner, "category": "dining", "merchant_name": "Grocery Cafe"},
			{"transaction_id": "t3", "owner_id": "b@example.com", "category": "groceries", "merchant_name": "DMart"},
		},
		records.CategoryAssets: {
			{"asset_id": "a1", "owner_id": owner, "name": "Gold ETF", "type": "ETF", "keywords": []any{"gold"}},
			{"asset_id": "a2", "owner_id": owner, "name": "Goldman Bond", "type": "bond"},
		},
		records.CategoryStrategies: {
			{"strategy_id": "s1", "name": "Balanced Growth", "risk_profile": "Moderate"},
		},
	}
}

func TestSearchAllCategories_NoMatches(t *testing.T) {
	client := NewClientWithConfig(&mockLoader{data: fixtures()}, &RetrieverConfig{TopK: 5})

	for _, query := range []string{"", "   ", "zzzz"} {
		results := client.SearchAllCategories(context.Background(), query, owner)

		require.Len(t, results, len(records.Categories))
		for _, c := range records.Categories {
			matches, ok := results[c]
			require.True(t, ok, "category %s must be present", c)
			assert.NotNil(t, matches)
			assert.Empty(t, matches)
		}
	}
}

func TestSearchAllCategories_OwnerScoping(t *testing.T) {
	for name, loader := range map[string]RecordLoader{
		"filtering loader": &mockLoader{data: fixtures()},
		"leaky loader":     &leakyLoader{data: fixtures()},
	} {
		t.Run(name, func(t *testing.T) {
			client := NewClientWithConfig(loader, &RetrieverConfig{TopK: 5})
			results := client.SearchAllCategories(context.Background(), "groceries", owner)

			txns := results[records.CategoryTransactions]
			require.Len(t, txns, 1)
			assert.Equal(t, "t1", txns[0].Record.ID(records.CategoryTransactions))
			assert.InDelta(t, 1.0/3.0, txns[0].Score, 1e-9)

			for _, c := range records.Categories {
				if !c.OwnerScoped() {
					continue
				}
				for _, m := range results[c] {
					assert.Equal(t, owner, m.Record.OwnerID())
				}
			}
		})
	}
}

func TestSearchAllCategories_KeywordBeforeSubstring(t *testing.T) {
	client := NewClientWithConfig(&mockLoader{data: fixtures()}, &RetrieverConfig{TopK: 5})

	results := client.SearchAllCategories(context.Background(), "gold", owner)

	assets := results[records.CategoryAssets]
	require.Len(t, assets, 2)
	assert.Equal(t, "a1", assets[0].Record.ID(records.CategoryAssets))
	assert.Equal(t, "a2", assets[1].Record.ID(records.CategoryAssets))
	assert.Less(t, assets[0].Score, assets[1].Score)
}

func TestSearch_TruncatesToK(t *testing.T) {
	var txns []records.Record
	for i := 0; i < 12; i++ {
		txns = append(txns, records.Record{
			"transaction_id": fmt.Sprintf("t%02d", i),
			"owner_id":       owner,
			"merchant_name":  "Amazon",
		})
	}

	loader := &mockLoader{data: map[records.Category][]records.Record{records.CategoryTransactions: txns}}
	client := NewClientWithConfig(loader, &RetrieverConfig{TopK: 5})

	all := client.SearchAllCategories(context.Background(), "amazon", owner)
	require.Len(t, all[records.CategoryTransactions], 5)

	// ties keep document order
	for i, m := range all[records.CategoryTransactions] {
		assert.Equal(t, fmt.Sprintf("t%02d", i), m.Record.ID(records.CategoryTransactions))
	}

	assert.Len(t, client.Search(context.Background(), records.CategoryTransactions, "amazon", owner, 3), 3)
	assert.Len(t, client.Search(context.Background(), records.CategoryTransactions, "amazon", owner, 0), 5)
}

func TestResults_Count(t *testing.T) {
	client := NewClientWithConfig(&mockLoader{data: fixtures()}, &RetrieverConfig{TopK: 5})
	results := client.SearchAllCategories(context.Background(), "gold groceries", owner)

	assert.Equal(t, 3, results.Count())
}

func TestNewClient_TopKFromEnv(t *testing.T) {
	t.Setenv("RETRIEVAL_TOP_K", "2")

	client, err := NewClient(&mockLoader{data: fixtures()})
	require.NoError(t, err)
	assert.Equal(t, 2, client.TopK())

	t.Setenv("RETRIEVAL_TOP_K", "-1")
	_, err = NewClient(&mockLoader{})
	assert.Error(t, err)

	t.Setenv("RETRIEVAL_TOP_K", "")
	client, err = NewClient(&mockLoader{})
	require.NoError(t, err)
	assert.Equal(t, defaultTopK, client.TopK())
}
