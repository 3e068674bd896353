// Package handlers implements the HTTP resource controllers.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes a structured error message with the given status code.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// isDuplicateKeyError checks if a PostgreSQL error is a unique constraint
// violation. The unique index is the authoritative guard; handler-level
// pre-checks only produce friendlier messages.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// isNotFoundError checks for a query that matched no rows.
func isNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// nilIfEmpty returns nil for empty strings (for nullable DB columns).
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
