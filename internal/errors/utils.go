package errors

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryCache      = "cache"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryStorage    = "storage"
	CategoryUpstream   = "upstream"
	CategoryUnknown    = "unknown"
)

// one classification rule; the first match wins
type rule struct {
	category   string
	production string
	match      func(err error, msg string) bool
}

func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}

	return false
}

// typed checks first, message matching for everything else
var rules = []rule{
	{CategoryDatabase, "database operation failed", func(err error, _ string) bool { return as[*pgconn.PgError](err) }},
	{CategoryNotFound, "resource not found", func(err error, _ string) bool { return errors.Is(err, pgx.ErrNoRows) }},
	{CategoryStorage, "storage operation failed", func(err error, _ string) bool { return as[*fs.PathError](err) }},
	{CategoryStorage, "stored data is unreadable", func(err error, _ string) bool { return as[*json.SyntaxError](err) }},
	{CategoryTimeout, "request timed out", func(err error, _ string) bool { return errors.Is(err, context.DeadlineExceeded) }},
	{CategoryTimeout, "request canceled", func(err error, _ string) bool { return errors.Is(err, context.Canceled) }},

	{CategoryTimeout, "request timed out", func(_ error, msg string) bool { return containsAny(msg, "timeout", "deadline") }},
	{CategoryNotFound, "resource not found", func(_ error, msg string) bool { return containsAny(msg, "not found", "no rows") }},
	{CategoryUpstream, "language model request failed", func(_ error, msg string) bool {
		return containsAny(msg, "language model", "anthropic", "openai")
	}},
	{CategoryCache, "cache operation failed", func(_ error, msg string) bool { return containsAny(msg, "redis") }},
	{CategoryDatabase, "database operation failed", func(_ error, msg string) bool {
		return containsAny(msg, "database", "sql", "postgres", "pgx")
	}},
	{CategoryStorage, "storage operation failed", func(_ error, msg string) bool { return containsAny(msg, "lock", "document") }},
	{CategoryNetwork, "connection error occurred", func(_ error, msg string) bool {
		return containsAny(msg, "connection", "network", "dial")
	}},
	{CategoryValidation, "validation failed", func(_ error, msg string) bool {
		return containsAny(msg, "validation", "binding", "invalid", "required")
	}},
	{CategoryAuth, "permission denied", func(_ error, msg string) bool {
		return containsAny(msg, "unauthorized", "forbidden", "permission", "auth", "token")
	}},
}

// analyzes an error and returns its category and sanitized message
func classifyError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, ""}
	}

	isProduction := os.Getenv("ENVIRONMENT") == "production"
	msg := strings.ToLower(err.Error())

	for _, r := range rules {
		if r.match(err, msg) {
			return ErrorInfo{category: r.category, sanitized: ternary(isProduction, r.production, err.Error())}
		}
	}

	return ErrorInfo{
		category:  CategoryUnknown,
		sanitized: ternary(isProduction, "an error occurred", err.Error()),
	}
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
