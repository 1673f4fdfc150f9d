package records

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parses a document, keeping numbers as json.Number
func ParseDocument(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to parse records document: %w", err)
	}

	doc := &Document{extra: make(map[string]json.RawMessage)}

	for key, raw := range top {
		c := Category(key)
		if !isCategory(c) {
			doc.extra[key] = raw
			continue
		}

		recs, err := decodeRecords(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", key, err)
		}

		doc.SetRecords(c, recs)
	}

	return doc, nil
}

func decodeRecords(raw json.RawMessage) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var recs []Record
	if err := dec.Decode(&recs); err != nil {
		return nil, err
	}

	// null arrays and null entries
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}

	return out, nil
}

func isCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// returns the records of a category, never nil
func (d *Document) Records(c Category) []Record {
	var recs []Record

	switch c {
	case CategoryTransactions:
		recs = d.Transactions
	case CategoryAssets:
		recs = d.Assets
	case CategoryStrategies:
		recs = d.Strategies
	}

	if recs == nil {
		return []Record{}
	}

	return recs
}

func (d *Document) SetRecords(c Category, recs []Record) {
	switch c {
	case CategoryTransactions:
		d.Transactions = recs
	case CategoryAssets:
		d.Assets = recs
	case CategoryStrategies:
		d.Strategies = recs
	}
}

// returns a copy holding only what ownerID may see; extra keys are not exported
func (d *Document) OwnedBy(ownerID string) *Document {
	out := &Document{}
	for _, c := range Categories {
		out.SetRecords(c, FilterByOwner(c, d.Records(c), ownerID))
	}

	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	top := make(map[string]any, len(d.extra)+len(Categories))
	for key, raw := range d.extra {
		top[key] = raw
	}

	for _, c := range Categories {
		top[string(c)] = d.Records(c)
	}

	return json.Marshal(top)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDocument(data)
	if err != nil {
		return err
	}

	*d = *parsed
	return nil
}
