package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func smallFlags(dir string) config.SeedFlags {
	flags := config.DefaultSeedFlags()
	flags.DataPath = filepath.Join(dir, "finpilot_db.json")
	flags.UsersPath = filepath.Join(dir, "users.json")
	flags.Users = 3
	flags.TransactionsPerUser = 4
	flags.AssetsPerUser = 2
	flags.Strategies = 5

	return flags
}

func TestGenerate_Counts(t *testing.T) {
	dataset, err := Generate(smallFlags(t.TempDir()), fixedNow)
	require.NoError(t, err)

	doc := dataset.Document
	assert.Len(t, dataset.Emails, 3)
	assert.Len(t, doc.Records(records.CategoryTransactions), 12)
	assert.Len(t, doc.Records(records.CategoryAssets), 6)
	assert.Len(t, doc.Records(records.CategoryStrategies), 5)

	for _, email := range dataset.Emails {
		assert.Len(t, records.FilterByOwner(records.CategoryTransactions, doc.Records(records.CategoryTransactions), email), 4)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	flags := smallFlags(t.TempDir())

	a, err := Generate(flags, fixedNow)
	require.NoError(t, err)
	b, err := Generate(flags, fixedNow)
	require.NoError(t, err)

	first, err := json.Marshal(a.Document)
	require.NoError(t, err)
	second, err := json.Marshal(b.Document)
	require.NoError(t, err)

	assert.Equal(t, a.Emails, b.Emails)
	assert.JSONEq(t, string(first), string(second))

	flags.Seed++
	c, err := Generate(flags, fixedNow)
	require.NoError(t, err)
	third, err := json.Marshal(c.Document)
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(third))
}

func TestGenerate_RecordShapes(t *testing.T) {
	dataset, err := Generate(smallFlags(t.TempDir()), fixedNow)
	require.NoError(t, err)

	for _, rec := range dataset.Document.Records(records.CategoryTransactions) {
		tx, err := records.AsTransaction(rec)
		require.NoError(t, err)
		assert.NotEmpty(t, tx.MerchantName)

		amount, ok := rec.Number("amount")
		require.True(t, ok)
		assert.True(t, amount.IsPositive())
	}

	for _, rec := range dataset.Document.Records(records.CategoryAssets) {
		_, err := records.AsAsset(rec)
		require.NoError(t, err)

		details, ok := rec.Map("financial_details")
		require.True(t, ok)
		history, ok := details["historical_performance"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, history, fixedNow.Year()-firstPerfYear)
		assert.Contains(t, history, strconv.Itoa(firstPerfYear))
	}

	for _, rec := range dataset.Document.Records(records.CategoryStrategies) {
		_, err := records.AsStrategy(rec)
		require.NoError(t, err)

		blueprint, ok := rec.Map("allocation_blueprint")
		require.True(t, ok)
		assert.Len(t, blueprint, len(blueprintKeys))
	}
}

func TestGenerate_NegativeCounts(t *testing.T) {
	flags := smallFlags(t.TempDir())
	flags.Users = -1

	_, err := Generate(flags, fixedNow)
	assert.Error(t, err)
}

func TestSeed_WritesStoreAndUsers(t *testing.T) {
	ctx := context.Background()
	flags := smallFlags(t.TempDir())
	flags.Users = 1

	require.NoError(t, Seed(ctx, flags, fixedNow))

	store := records.NewStore(flags.DataPath)
	assert.Len(t, store.Load(ctx, records.CategoryTransactions), 4)
	assert.Len(t, store.Load(ctx, records.CategoryStrategies), 5)

	dataset, err := Generate(flags, fixedNow)
	require.NoError(t, err)

	_, err = users.NewFileRepository(flags.UsersPath).Authenticate(ctx, dataset.Emails[0], flags.DefaultPassword)
	assert.NoError(t, err)

	// running again keeps existing users
	require.NoError(t, Seed(ctx, flags, fixedNow))
}
