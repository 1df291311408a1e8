package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/transfer"
)

// TransferRequest is the body for the deposit and take endpoints.
type TransferRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Resource string `json:"resource" validate:"required,max=64"`
	Amount   int    `json:"amount" validate:"required"`
}

// PoolResponse is the shared Farfinder pool contents.
type PoolResponse struct {
	Pool domain.Inventory `json:"pool"`
}

// HandleDeposit moves resources from the active character into the pool.
// @Summary Deposit resources into the shared pool
// @Tags transfer
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Resource and amount"
// @Success 200 {object} domain.Transfer
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /transfer/deposit [post]
func HandleDeposit(svc transfer.Service) http.HandlerFunc {
	return handleTransfer(svc.Deposit, "deposit")
}

// HandleTake moves resources from the pool to the active character.
// @Summary Take resources from the shared pool
// @Tags transfer
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Resource and amount"
// @Success 200 {object} domain.Transfer
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /transfer/take [post]
func HandleTake(svc transfer.Service) http.HandlerFunc {
	return handleTransfer(svc.Take, "take")
}

func handleTransfer(op func(ctx context.Context, userID, kind string, amount int) (*domain.Transfer, error), name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode transfer request", "direction", name, "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Transfer validation failed", "direction", name, "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		result, err := op(r.Context(), req.UserID, req.Resource, req.Amount)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetPool returns the shared Farfinder pool.
// @Summary Get the shared pool contents
// @Tags transfer
// @Produce json
// @Success 200 {object} PoolResponse
// @Router /farfinder [get]
func HandleGetPool(svc transfer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := svc.Pool(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, PoolResponse{Pool: pool})
	}
}
