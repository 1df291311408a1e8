package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/registry"
)

// AdjustInventoryRequest is the body for POST /inventory/adjust.
type AdjustInventoryRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=add remove"`
	Resource string `json:"resource" validate:"required,max=64"`
	Amount   int    `json:"amount" validate:"required"`
}

// HandleGetInventory returns the active character's inventory.
// @Summary Get active character inventory
// @Tags inventory
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} registry.InventoryView
// @Failure 404 {object} ErrorResponse
// @Router /inventory [get]
func HandleGetInventory(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id is required", Kind: KindInvalid})
			return
		}

		view, err := svc.Inventory(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleAdjustInventory adds or removes resources on the active character.
// @Summary Adjust active character inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AdjustInventoryRequest true "Adjustment"
// @Success 200 {object} registry.AdjustResult
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /inventory/adjust [post]
func HandleAdjustInventory(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdjustInventoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode adjust inventory request", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Adjust inventory validation failed", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		result, err := svc.AdjustInventory(r.Context(), req.UserID, req.Action, req.Resource, req.Amount)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
