package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const defaultRetryDelay = 25 * time.Millisecond

// creates a store over the JSON document at path; the lock lives next to it
func NewStore(path string) *Store {
	return &Store{
		path:       path,
		lockPath:   path + ".lock",
		retryDelay: defaultRetryDelay,
	}
}

func (s *Store) Path() string {
	return s.path
}

// loads every record of a category; absent or unreadable documents give an empty result
func (s *Store) Load(ctx context.Context, c Category) []Record {
	doc, err := s.ReadDocument(ctx)
	if err != nil {
		logger.Warn("records document unavailable, returning no records",
			"path", s.path,
			"category", string(c),
			"error", err,
		)
		return []Record{}
	}

	return doc.Records(c)
}

// loads the records of a category visible to ownerID
func (s *Store) LoadFiltered(ctx context.Context, c Category, ownerID string) []Record {
	return FilterByOwner(c, s.Load(ctx, c), ownerID)
}

// reads the whole document under a shared lock
func (s *Store) ReadDocument(ctx context.Context) (*Document, error) {
	lock := flock.New(s.lockPath)

	locked, err := lock.TryRLockContext(ctx, s.retryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire read lock on %s", s.lockPath)
	}
	defer lock.Unlock() //nolint:errcheck

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records document: %w", err)
	}

	return ParseDocument(data)
}

// returns the caller's slice of the document
func (s *Store) Export(ctx context.Context, ownerID string) (*Document, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}

	doc, err := s.ReadDocument(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return (&Document{}).OwnedBy(ownerID), nil
	}
	if err != nil {
		return nil, err
	}

	return doc.OwnedBy(ownerID), nil
}

// appends a transaction owned by ownerID and returns the stored record
func (s *Store) AddTransaction(ctx context.Context, ownerID string, in NewTransaction) (Record, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}

	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	category := strings.ToLower(strings.TrimSpace(in.Category))
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	rec := Record{
		"transaction_id": uuid.NewString(),
		FieldOwnerID:     ownerID,
		"timestamp":      in.Timestamp.UTC().Format(time.RFC3339),
		"amount":         json.Number(in.Amount.StringFixed(2)),
		"currency":       strings.ToUpper(in.Currency),
		"category":       category,
		"merchant_name":  in.MerchantName,
		"payment_method": in.PaymentMethod,
		"location": map[string]any{
			"city":    in.City,
			"country": in.Country,
		},
		"tags":        toAnySlice(tags),
		FieldKeywords: toAnySlice([]string{"transaction", "finance", "payment", category}),
	}

	err := s.update(ctx, func(doc *Document) error {
		doc.Transactions = append(doc.Records(CategoryTransactions), rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// removes a transaction the caller owns
func (s *Store) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, CategoryTransactions, ownerID, id)
}

// removes a financial asset the caller owns
func (s *Store) DeleteAsset(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, CategoryAssets, ownerID, id)
}

func (s *Store) deleteOwned(ctx context.Context, c Category, ownerID, id string) error {
	if ownerID == "" {
		return ErrInvalidOwner
	}

	return s.update(ctx, func(doc *Document) error {
		recs := doc.Records(c)
		kept := make([]Record, 0, len(recs))
		found := false

		for _, r := range recs {
			// records of other owners are never touched, even with a matching id
			if r.ID(c) == id && r.OwnerID() == ownerID {
				found = true
				continue
			}
			kept = append(kept, r)
		}

		if !found {
			return ErrNotFound
		}

		doc.SetRecords(c, kept)
		return nil
	})
}

// replaces the whole document, used by the seed command
func (s *Store) Save(ctx context.Context, doc *Document) error {
	return s.update(ctx, func(current *Document) error {
		*current = *doc
		return nil
	})
}

// read-modify-write under an exclusive lock; a missing document starts empty, a corrupt one aborts
func (s *Store) update(ctx context.Context, fn func(doc *Document) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	lock := flock.New(s.lockPath)

	locked, err := lock.TryLockContext(ctx, s.retryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire write lock on %s", s.lockPath)
	}
	defer lock.Unlock() //nolint:errcheck

	doc := &Document{}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read records document: %w", err)
	default:
		if doc, err = ParseDocument(data); err != nil {
			return err
		}
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.writeAtomic(doc)
}

func (s *Store) writeAtomic(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".records-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()        //nolint:errcheck,gosec
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()        //nolint:errcheck,gosec
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to replace records document: %w", err)
	}

	return nil
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}

	return out
}
