package search

import (
	"context"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/retriever"
)

type Searcher interface {
	SearchAllCategories(ctx context.Context, query, ownerID string) retriever.Results
	Search(ctx context.Context, category records.Category, query, ownerID string, k int) []retriever.Match
}

// matches per category name, lower scores first
type SearchResponse struct {
	Query   string                       `json:"query"`
	Results map[string][]retriever.Match `json:"results"`
	Total   int                          `json:"total"`
}
