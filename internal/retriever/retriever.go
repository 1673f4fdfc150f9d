package retriever

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/scoring"
)

// creates a retriever with top K from the environment
func NewClient(store RecordLoader) (*Client, error) {
	config, err := loadRetrieverConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load retriever config: %w", err)
	}

	return NewClientWithConfig(store, config), nil
}

// creates a retriever with explicit configuration
func NewClientWithConfig(store RecordLoader, config *RetrieverConfig) *Client {
	topK := config.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Client{
		store: store,
		topK:  topK,
	}
}

func (c *Client) TopK() int {
	return c.topK
}

// searches every category for ownerID; categories without matches map to empty slices
func (c *Client) SearchAllCategories(ctx context.Context, query, ownerID string) Results {
	terms := scoring.Terms(query)
	perCategory := make([][]Match, len(records.Categories))

	var wg sync.WaitGroup
	for i, category := range records.Categories {
		wg.Add(1)
		go func() {
			defer wg.Done()
			perCategory[i] = c.searchTerms(ctx, category, terms, ownerID, c.topK)
		}()
	}
	wg.Wait()

	results := make(Results, len(records.Categories))
	for i, category := range records.Categories {
		results[category] = perCategory[i]
	}

	return results
}

// searches one category and keeps the k best matches
func (c *Client) Search(ctx context.Context, category records.Category, query, ownerID string, k int) []Match {
	if k <= 0 {
		k = c.topK
	}

	return c.searchTerms(ctx, category, scoring.Terms(query), ownerID, k)
}

func (c *Client) searchTerms(ctx context.Context, category records.Category, terms []string, ownerID string, k int) []Match {
	matches := []Match{}
	if len(terms) == 0 {
		return matches
	}

	loaded := c.store.LoadFiltered(ctx, category, ownerID)

	for _, rec := range records.FilterByOwner(category, loaded, ownerID) {
		raw := scoring.RawScore(terms, rec)
		if raw == 0 {
			continue
		}

		matches = append(matches, Match{Record: rec, Score: scoring.Normalize(raw)})
	}

	// equal scores keep document order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	return matches
}
