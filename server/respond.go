package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mixtapeorg/libmixtape-go/account"
	"github.com/mixtapeorg/libmixtape-go/jukebox"
	"github.com/mixtapeorg/libmixtape-go/registry"
	"github.com/mixtapeorg/libmixtape-go/social"
	"github.com/mixtapeorg/libmixtape-go/treasury"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a core error to an HTTP status, surfacing the error
// text verbatim so callers can distinguish the failure kinds.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrUnauthorized),
		errors.Is(err, treasury.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, jukebox.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, social.ErrAlreadyLiked),
		errors.Is(err, social.ErrNotLiked),
		errors.Is(err, registry.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, account.ErrDerivation):
		return http.StatusInternalServerError
	default:
		// Validation failures: invalid addresses, empty or oversized
		// comments, out-of-range fee rates, zero play prices.
		return http.StatusBadRequest
	}
}
