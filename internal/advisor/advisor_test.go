package advisor

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	matches []retriever.Match
}

func (m *mockSearcher) Search(_ context.Context, category records.Category, _, _ string, _ int) []retriever.Match {
	if category != records.CategoryStrategies {
		return []retriever.Match{}
	}

	return m.matches
}

type mockCompleter struct {
	mu       sync.Mutex
	prompts  []string
	complete func(prompt string) llm.Outcome
}

func (m *mockCompleter) Complete(_ context.Context, _ string, req llm.TextGenerationRequest) llm.Outcome {
	prompt := req.Messages[0].Content

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	return m.complete(prompt)
}

func matchesFor(recs ...records.Record) []retriever.Match {
	out := make([]retriever.Match, len(recs))
	for i, r := range recs {
		out[i] = retriever.Match{Record: r, Score: 0.25}
	}

	return out
}

func TestRecommend_RanksAndAnalyzes(t *testing.T) {
	growth := strategy("growth", "Aggressive", "Long-term", map[string]any{"equity": json.Number("60"), "FD": json.Number("10")})
	safe := strategy("safe", "Conservative", "Short-term", map[string]any{"FD": json.Number("70"), "bonds": json.Number("30")})

	completer := &mockCompleter{complete: func(prompt string) llm.Outcome {
		if strings.Contains(prompt, `"strategy_id": "growth"`) {
			return llm.Outcome{Text: "  Strong equity tilt suits you. "}
		}
		return llm.Outcome{Reason: llm.ReasonTimeout}
	}}

	adv := New(&mockSearcher{matches: matchesFor(safe, growth)}, completer)

	resp, err := adv.Recommend(context.Background(), RecommendRequest{
		OwnerID:         "a@example.com",
		Query:           "growth",
		RiskProfile:     "Aggressive",
		TimeHorizon:     "Long-term (> 5 years)",
		AssetPriorities: []string{"equity", "FD", "bonds"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)
	assert.Empty(t, resp.Message)

	top := resp.Recommendations[0]
	assert.Equal(t, "growth", top.StrategyID)
	assert.Equal(t, 100, top.MatchPercent)
	assert.Equal(t, "high", top.Priority)
	assert.Equal(t, "FD: 10%, equity: 60%", top.Allocation)
	assert.Equal(t, "Strong equity tilt suits you.", top.Analysis)
	assert.False(t, top.Fallback)

	second := resp.Recommendations[1]
	assert.Equal(t, "safe", second.StrategyID)
	assert.Equal(t, 50, second.MatchPercent)
	assert.Equal(t, "low", second.Priority)
	assert.True(t, second.Fallback)
	assert.Equal(t,
		"This strategy appears suitable for aggressive risk investors with a long-term (> 5 years) time horizon. "+
			"Key benefits include potential returns of 10% and a diversified allocation across multiple asset classes. "+
			"Consider your specific financial goals and risk tolerance when evaluating this strategy.",
		second.Analysis)

	require.Len(t, completer.prompts, 2)
	for _, p := range completer.prompts {
		assert.Contains(t, p, "User Risk Profile: Aggressive")
		assert.Contains(t, p, "User Goals: growth")
	}
}

func TestRecommend_NoStrategies(t *testing.T) {
	adv := New(&mockSearcher{}, &mockCompleter{complete: func(string) llm.Outcome { return llm.Outcome{Text: "x"} }})

	resp, err := adv.Recommend(context.Background(), RecommendRequest{OwnerID: "a@example.com", Query: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Recommendations)
	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, noStrategiesMessage, resp.Message)
}

func TestRecommend_RequiresOwner(t *testing.T) {
	_, err := New(&mockSearcher{}, nil).Recommend(context.Background(), RecommendRequest{Query: "x"})
	assert.Error(t, err)
}

func TestDescribeAllocation(t *testing.T) {
	s := strategy("s", "", "", map[string]any{"gold": json.Number("12.5"), "bonds": 30.0})
	assert.Equal(t, "bonds: 30%, gold: 12.5%", describeAllocation(s))
	assert.Empty(t, describeAllocation(records.Record{}))
}
