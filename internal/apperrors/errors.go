// Package apperrors defines the error taxonomy shared by the stores, the
// session layer, and the HTTP handlers. Handlers map these onto status codes;
// everything else just wraps them.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("validation error")

	// ErrAuth covers bad credentials and missing or expired sessions.
	ErrAuth = errors.New("not authorized")

	// ErrNotFound covers rows that are absent or not owned by the caller.
	// Ownership failures deliberately look identical to missing rows.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers unique-constraint violations (duplicate username).
	ErrConflict = errors.New("already exists")

	// ErrStore covers connectivity and query failures.
	ErrStore = errors.New("store error")
)

// HTTPStatus maps a taxonomy error to its response status code. Anything
// unrecognized is treated as a store failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
