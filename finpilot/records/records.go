package records

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// parses a category name as used in query strings and documents
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == strings.ToLower(strings.TrimSpace(name)) {
			return c, nil
		}
	}

	return "", ErrUnknownCategory
}

// reports whether records of this category belong to a single owner
func (c Category) OwnerScoped() bool {
	return c == CategoryTransactions || c == CategoryAssets
}

// returns the identifier field name for the category
func (c Category) IDField() string {
	switch c {
	case CategoryTransactions:
		return "transaction_id"
	case CategoryAssets:
		return "asset_id"
	case CategoryStrategies:
		return "strategy_id"
	default:
		return "id"
	}
}

// returns the record identifier for its category, empty when absent
func (r Record) ID(c Category) string {
	id, _ := r.String(c.IDField())
	return id
}

// returns owner_id, falling back to the legacy user_id key
func (r Record) OwnerID() string {
	if owner, ok := r.String(FieldOwnerID); ok && owner != "" {
		return owner
	}

	owner, _ := r.String(FieldLegacyOwnerID)
	return owner
}

// returns the string entries of the keywords list; non-string entries are ignored
func (r Record) Keywords() []string {
	raw, ok := r[FieldKeywords].([]any)
	if !ok {
		return nil
	}

	keywords := make([]string, 0, len(raw))
	for _, k := range raw {
		if s, ok := k.(string); ok {
			keywords = append(keywords, s)
		}
	}

	return keywords
}

func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

func (r Record) Map(key string) (map[string]any, bool) {
	m, ok := r[key].(map[string]any)
	return m, ok
}

// returns a numeric field as a decimal; numeric strings are accepted
func (r Record) Number(key string) (decimal.Decimal, bool) {
	v, ok := r[key]
	if !ok {
		return decimal.Zero, false
	}

	return toDecimal(v)
}

// returns a numeric field formatted the way it appears in the document
func (r Record) NumberText(key string) (string, bool) {
	switch v := r[key].(type) {
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// keeps only records whose owner equals ownerID; strategies pass through unchanged
func FilterByOwner(c Category, recs []Record, ownerID string) []Record {
	if !c.OwnerScoped() {
		return recs
	}

	filtered := make([]Record, 0, len(recs))
	for _, r := range recs {
		if owner := r.OwnerID(); owner != "" && owner == ownerID {
			filtered = append(filtered, r)
		}
	}

	return filtered
}
