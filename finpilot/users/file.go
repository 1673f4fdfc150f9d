package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gofrs/flock"
	"golang.org/x/crypto/bcrypt"
)

const lockRetryDelay = 25 * time.Millisecond

// credentials kept in a JSON object of email to password hash
type FileRepository struct {
	path     string
	lockPath string
	cost     int
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path:     path,
		lockPath: path + ".lock",
		cost:     bcrypt.DefaultCost,
	}
}

func (r *FileRepository) Register(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)

	hash, err := hashPassword(password, r.cost)
	if err != nil {
		return nil, err
	}

	err = r.update(ctx, func(creds map[string]string) error {
		if _, exists := creds[email]; exists {
			return ErrUserExists
		}

		creds[email] = hash
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &User{Email: email}, nil
}

// verifies a password; plaintext entries from older files are re-hashed on first successful login
func (r *FileRepository) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)

	creds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	stored, ok := creds[email]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	valid, legacy := verifyPassword(stored, password)
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if legacy {
		if err := r.rehash(ctx, email, stored, password); err != nil {
			logger.Warn("failed to upgrade legacy password entry", "email", email, "error", err)
		}
	}

	return &User{Email: email}, nil
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)

	creds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := creds[email]; !ok {
		return nil, ErrNotFound
	}

	return &User{Email: email}, nil
}

// the entry is only replaced if nobody changed it since it was verified
func (r *FileRepository) rehash(ctx context.Context, email, previous, password string) error {
	hash, err := hashPassword(password, r.cost)
	if err != nil {
		return err
	}

	return r.update(ctx, func(creds map[string]string) error {
		if creds[email] == previous {
			creds[email] = hash
		}
		return nil
	})
}

func (r *FileRepository) read(ctx context.Context) (map[string]string, error) {
	if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}

	lock := flock.New(r.lockPath)

	locked, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire read lock on %s", r.lockPath)
	}
	defer lock.Unlock() //nolint:errcheck

	return r.load()
}

func (r *FileRepository) update(ctx context.Context, fn func(creds map[string]string) error) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o750); err != nil {
		return fmt.Errorf("failed to create users directory: %w", err)
	}

	lock := flock.New(r.lockPath)

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire write lock on %s", r.lockPath)
	}
	defer lock.Unlock() //nolint:errcheck

	creds, err := r.load()
	if err != nil {
		return err
	}

	if err := fn(creds); err != nil {
		return err
	}

	return r.write(creds)
}

// a missing file is an empty user list
func (r *FileRepository) load() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	creds := make(map[string]string)
	if len(data) == 0 {
		return creds, nil
	}

	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	return creds, nil
}

func (r *FileRepository) write(creds map[string]string) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".users-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()        //nolint:errcheck,gosec
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName) //nolint:errcheck,gosec
		return fmt.Errorf("failed to replace users file: %w", err)
	}

	return nil
}
