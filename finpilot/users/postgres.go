package users

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/finpilot/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// credentials kept in the users table
type PostgresRepository struct {
	db   *pgxpool.Pool
	cost int
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, cost: bcrypt.DefaultCost}
}

func (r *PostgresRepository) Register(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)

	hash, err := hashPassword(password, r.cost)
	if err != nil {
		return nil, err
	}

	var user User

	err = r.db.QueryRow(ctx, queryInsertUser, email, hash).Scan(&user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)

	var user User
	var stored string

	err := r.db.QueryRow(ctx, queryFindCredentials, email).Scan(&user.Email, &stored, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	valid, legacy := verifyPassword(stored, password)
	if !valid {
		return nil, ErrInvalidCredentials
	}

	// rows imported from the old users file may still hold plaintext
	if legacy {
		hash, err := hashPassword(password, r.cost)
		if err == nil {
			_, err = r.db.Exec(ctx, queryUpgradeHash, hash, email, stored)
		}
		if err != nil {
			logger.Warn("failed to upgrade legacy password entry", "email", email, "error", err)
		}
	}

	return &user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByEmail, NormalizeEmail(email)).Scan(&user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
