package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

// an account; the email is the caller identity used as record owner
type User struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// credential storage behind registration and login
type Repository interface {
	Register(ctx context.Context, email, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
