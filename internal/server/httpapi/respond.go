package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chemhub/chemforum/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps a domain error to its HTTP status. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing fields")
	case errors.Is(err, common.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "invalid category")
	case errors.Is(err, common.ErrInvalidItemType):
		writeError(w, http.StatusBadRequest, "invalid item type")
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
