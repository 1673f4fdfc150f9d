package users

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// lower-cased, trimmed email used as the storage key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

func isHashed(stored string) bool {
	if len(stored) != 60 {
		return false
	}

	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// checks a password against a stored value; legacy reports a plaintext entry that should be re-hashed
func verifyPassword(stored, password string) (ok, legacy bool) {
	if isHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1, true
}
