package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"snnd/internal/menu"
	"snnd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.Is(err, menu.ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, menu.ErrOptionHidden),
		errors.Is(err, menu.ErrOptionDisabled),
		errors.Is(err, menu.ErrRunDisabled):
		return http.StatusConflict
	case errors.As(err, &he):
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
