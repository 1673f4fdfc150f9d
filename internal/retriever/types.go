package retriever

import (
	"context"

	"codeberg.org/finpilot/server/finpilot/records"
)

// loads owner-scoped records; satisfied by *records.Store
type RecordLoader interface {
	LoadFiltered(ctx context.Context, c records.Category, ownerID string) []records.Record
}

// scores records of every category against a query
type Client struct {
	store RecordLoader
	topK  int
}

type RetrieverConfig struct {
	TopK int
}

// a record with its normalized score; lower scores are better matches
type Match struct {
	Record records.Record `json:"record"`
	Score  float64        `json:"score"`
}

// matches per category; every category key is present
type Results map[records.Category][]Match

// total number of matches across categories
func (r Results) Count() int {
	n := 0
	for _, matches := range r {
		n += len(matches)
	}

	return n
}
