package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/shop"
)

// BuyRequest is the body for POST /shop/buy.
type BuyRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Index    int    `json:"index" validate:"required,min=1"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// ShopListResponse is the catalog in display order.
type ShopListResponse struct {
	Items []domain.ShopItem `json:"items"`
}

// HandleShopList returns the shop catalog.
// @Summary List shop items
// @Tags shop
// @Produce json
// @Success 200 {object} ShopListResponse
// @Router /shop [get]
func HandleShopList(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, ShopListResponse{Items: items})
	}
}

// HandleShopBuy purchases an item for the active character.
// @Summary Buy a shop item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Item index and quantity"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /shop/buy [post]
func HandleShopBuy(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode shop buy request", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Shop buy validation failed", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		receipt, err := svc.Purchase(r.Context(), req.UserID, req.Index, req.Quantity)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}
