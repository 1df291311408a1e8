package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error kind strings exposed to front ends. One per domain error category.
const (
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindInvalid      = "invalid"
	KindInsufficient = "insufficient"
	KindInternal     = "internal"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError maps a service error to an HTTP status and a safe message.
// Validation failures echo their message (built from user input); storage and
// unknown faults are reduced to their kind so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCharacterNotFound),
		errors.Is(err, domain.ErrNoActiveCharacter),
		errors.Is(err, domain.ErrInvalidIndex):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: KindNotFound})
	case errors.Is(err, domain.ErrAlreadyExists):
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Kind: KindConflict})
	case errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrInvalidResource):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientStock):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: KindInsufficient})
	case errors.Is(err, domain.ErrPersistence):
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: domain.ErrMsgPersistence, Kind: KindInternal})
	default:
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: KindInternal})
	}
}
