package main

import (
	"context"
	stderrors "errors"
	"os"
	"time"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/config"
	"codeberg.org/finpilot/server/internal/logger"
)

func main() {
	flags, err := config.ParseSeedFlags(os.Args[1:])
	if err != nil {
		logger.Fatal("failed to parse flags", "error", err)
	}

	ctx := context.Background()

	if err := Seed(ctx, flags, time.Now()); err != nil {
		logger.Fatal("failed to seed data", "error", err)
	}
}

// writes a generated dataset and registers its users with the shared password
func Seed(ctx context.Context, flags config.SeedFlags, now time.Time) error {
	dataset, err := Generate(flags, now)
	if err != nil {
		return err
	}

	store := records.NewStore(flags.DataPath)
	if err := store.Save(ctx, dataset.Document); err != nil {
		return err
	}

	repo := users.NewFileRepository(flags.UsersPath)

	registered := 0
	for _, email := range dataset.Emails {
		_, err := repo.Register(ctx, email, flags.DefaultPassword)
		if stderrors.Is(err, users.ErrUserExists) {
			logger.Warn("user already exists, keeping existing password", "email", email)
			continue
		}
		if err != nil {
			return err
		}
		registered++
	}

	logger.Info("seed complete",
		"data_path", flags.DataPath,
		"users", registered,
		"transactions", len(dataset.Document.Records(records.CategoryTransactions)),
		"financial_assets", len(dataset.Document.Records(records.CategoryAssets)),
		"investment_strategies", len(dataset.Document.Records(records.CategoryStrategies)),
	)

	return nil
}
