package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ferreirogomes/quinhao/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy to HTTP statuses: validation to 400,
// authorization to 403, unknown IDs to 404, state conflicts to 409, and
// consistency-fatal failures to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidShareCount),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrInvalidCount):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotOwner),
		errors.Is(err, models.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrUnknownAsset),
		errors.Is(err, models.ErrUnknownLedger),
		errors.Is(err, models.ErrUnknownCollection):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyFractionalized),
		errors.Is(err, models.ErrDuplicateAsset),
		errors.Is(err, models.ErrNoSeller),
		errors.Is(err, models.ErrInsufficientShares),
		errors.Is(err, models.ErrIncorrectPayment):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
