// Package scoring computes keyword and substring relevance of records against a query.
//
// Raw scores are small integers where higher means a better match. The normalized
// score 1/(1+raw) inverts that: lower normalized scores rank first.
package scoring

import (
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
)

const (
	keywordExact   = 3
	keywordPartial = 2
	fieldExact     = 2
	fieldPartial   = 1
)

// splits a query into lowercase whitespace-separated terms, dropping repeats
func Terms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))

	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}

	return terms
}

// returns max(keyword pass, field pass); 0 means the record does not match
func RawScore(terms []string, rec records.Record) int {
	if len(terms) == 0 {
		return 0
	}

	return max(keywordScore(terms, rec), fieldScore(terms, rec))
}

// maps a raw score into (0,1], lower is better
func Normalize(raw int) float64 {
	return 1.0 / (1.0 + float64(raw))
}

// best single keyword hit across all terms
func keywordScore(terms []string, rec records.Record) int {
	best := 0

	for _, keyword := range rec.Keywords() {
		kw := strings.ToLower(keyword)
		for _, term := range terms {
			switch {
			case term == kw:
				return keywordExact
			case strings.Contains(kw, term):
				best = keywordPartial
			}
		}
	}

	return best
}

// per term, sum of hits over string fields and one level of nested mappings; best term wins
func fieldScore(terms []string, rec records.Record) int {
	best := 0

	for _, term := range terms {
		score := 0

		for _, value := range rec {
			switch v := value.(type) {
			case string:
				score += matchValue(term, v)
			case map[string]any:
				for _, nested := range v {
					if s, ok := nested.(string); ok {
						score += matchValue(term, s)
					}
				}
			}
		}

		best = max(best, score)
	}

	return best
}

func matchValue(term, value string) int {
	v := strings.ToLower(value)

	switch {
	case term == v:
		return fieldExact
	case strings.Contains(v, term):
		return fieldPartial
	default:
		return 0
	}
}
