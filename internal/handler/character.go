package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/registry"
)

// RegisterCharacterRequest is the body for POST /character/register.
type RegisterCharacterRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=64"`
	Class       string `json:"class" validate:"required,max=64"`
	Species     string `json:"species" validate:"required,max=64"`
	Background  string `json:"background" validate:"required,max=64"`
	Description string `json:"description" validate:"max=512"`
}

// SwitchCharacterRequest is the body for POST /character/switch.
type SwitchCharacterRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required,max=64"`
}

// SetAttributeRequest is the body for POST /character/attribute.
type SetAttributeRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Field  string `json:"field" validate:"required"`
	Value  string `json:"value" validate:"max=512"`
}

// SetStatusRequest is the body for POST /character/status.
type SetStatusRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// SwitchCharacterResponse confirms the new active character.
type SwitchCharacterResponse struct {
	Active string `json:"active"`
}

// HandleRegisterCharacter creates a new character for a user.
// @Summary Register a character
// @Tags character
// @Accept json
// @Produce json
// @Param request body RegisterCharacterRequest true "Character attributes"
// @Success 201 {object} registry.CharacterProfile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /character/register [post]
func HandleRegisterCharacter(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterCharacterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register character request", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Register character validation failed", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		profile, err := svc.Register(r.Context(), req.UserID, req.Name, registry.Registration{
			Class:       req.Class,
			Species:     req.Species,
			Background:  req.Background,
			Description: req.Description,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, profile)
	}
}

// HandleSwitchCharacter changes which character is active for a user.
// @Summary Switch active character
// @Tags character
// @Accept json
// @Produce json
// @Param request body SwitchCharacterRequest true "Character to activate"
// @Success 200 {object} SwitchCharacterResponse
// @Failure 404 {object} ErrorResponse
// @Router /character/switch [post]
func HandleSwitchCharacter(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SwitchCharacterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode switch character request", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Switch character validation failed", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		if err := svc.SetActive(r.Context(), req.UserID, req.Name); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SwitchCharacterResponse{Active: req.Name})
	}
}

// HandleCharacterProfile returns the active character's full profile.
// @Summary Get active character profile
// @Tags character
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} registry.CharacterProfile
// @Failure 404 {object} ErrorResponse
// @Router /character/profile [get]
func HandleCharacterProfile(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id is required", Kind: KindInvalid})
			return
		}

		profile, err := svc.Profile(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleCharacterList returns the user's characters, active one called out.
// @Summary List a user's characters
// @Tags character
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} registry.CharacterList
// @Router /character/list [get]
func HandleCharacterList(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id is required", Kind: KindInvalid})
			return
		}

		list, err := svc.List(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// HandleSetAttribute updates one attribute on the active character.
// @Summary Set a character attribute
// @Tags character
// @Accept json
// @Produce json
// @Param request body SetAttributeRequest true "Attribute and value"
// @Success 200 {object} registry.CharacterProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /character/attribute [post]
func HandleSetAttribute(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetAttributeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode set attribute request", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Set attribute validation failed", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		profile, err := svc.SetAttribute(r.Context(), req.UserID, req.Field, req.Value)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleSetStatus transitions the active character's status.
// @Summary Set character status
// @Tags character
// @Accept json
// @Produce json
// @Param request body SetStatusRequest true "Target status"
// @Success 200 {object} registry.StatusResult
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /character/status [post]
func HandleSetStatus(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode set status request", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalid})
			return
		}
		if err := validateRequest(req); err != nil {
			log.Warn("Set status validation failed", "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalid})
			return
		}

		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			respondError(w, err)
			return
		}

		result, err := svc.SetStatus(r.Context(), req.UserID, status)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
