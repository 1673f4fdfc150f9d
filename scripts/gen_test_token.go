package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"log"

	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/config"
)

func main() {
	email := flag.String("email", "test@finpilot.dev", "account to issue the token for")
	password := flag.String("password", "password123", "password used when the account has to be created")
	flag.Parse()

	// load configuration (JWT_SECRET, USERS_PATH, ...)
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	repo := users.NewFileRepository(cfg.UsersPath)

	// create or find test user
	user, err := repo.FindByEmail(ctx, *email)
	if stderrors.Is(err, users.ErrNotFound) {
		user, err = repo.Register(ctx, *email, *password)
		if err != nil {
			log.Fatalf("Failed to create test user: %v", err)
		}
		fmt.Printf("✅ Created test user: %s\n", user.Email)
	} else if err != nil {
		log.Fatalf("Failed to look up test user: %v", err)
	} else {
		fmt.Printf("✅ Using existing test user: %s\n", user.Email)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, 0)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	// generate JWT token
	token, err := issuer.Generate(user.Email)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\n🔑 Test JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
