package config

import (
	"flag"
)

// returns default flags for the seed command
func DefaultSeedFlags() SeedFlags {
	return SeedFlags{
		DataPath:            DefaultDataPath,
		UsersPath:           DefaultUsersPath,
		Users:               5,
		TransactionsPerUser: 40,
		AssetsPerUser:       8,
		Strategies:          12,
		Seed:                42,
		DefaultPassword:     "password123",
	}
}

// parses CLI flags for the seed command
func ParseSeedFlags(args []string) (SeedFlags, error) {
	def := DefaultSeedFlags()

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	dataPath := fs.String("data", def.DataPath, "path of the records document to write")
	usersPath := fs.String("users-file", def.UsersPath, "path of the users file to write")
	users := fs.Int("users", def.Users, "number of users to generate")
	txns := fs.Int("transactions", def.TransactionsPerUser, "transactions per user")
	assets := fs.Int("assets", def.AssetsPerUser, "financial assets per user")
	strategies := fs.Int("strategies", def.Strategies, "number of investment strategies")
	seed := fs.Int64("seed", def.Seed, "random seed for reproducible data")
	password := fs.String("password", def.DefaultPassword, "password assigned to every generated user")

	if err := fs.Parse(args); err != nil {
		return SeedFlags{}, err
	}

	return SeedFlags{
		DataPath:            *dataPath,
		UsersPath:           *usersPath,
		Users:               *users,
		TransactionsPerUser: *txns,
		AssetsPerUser:       *assets,
		Strategies:          *strategies,
		Seed:                *seed,
		DefaultPassword:     *password,
	}, nil
}
