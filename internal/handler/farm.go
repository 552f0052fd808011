package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/farm"
	"github.com/agrocampo/api/internal/logger"
)

// CreateFarmRequest represents the request to register a new farm
type CreateFarmRequest struct {
	Nome        string  `json:"nome" validate:"required,max=120"`
	Localizacao string  `json:"localizacao" validate:"required,max=255"`
	AreaTotal   float64 `json:"area_total" validate:"gte=0"`
	UnidadeArea string  `json:"unidade_area" validate:"max=20"`
}

// UpdateFarmRequest carries the mutable farm fields, all optional
type UpdateFarmRequest struct {
	Nome        *string  `json:"nome,omitempty" validate:"omitempty,max=120"`
	Localizacao *string  `json:"localizacao,omitempty" validate:"omitempty,max=255"`
	AreaTotal   *float64 `json:"area_total,omitempty" validate:"omitempty,gte=0"`
	UnidadeArea *string  `json:"unidade_area,omitempty" validate:"omitempty,max=20"`
}

// FarmHandler handles lavoura HTTP requests
type FarmHandler struct {
	farmSvc farm.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmSvc farm.Service) *FarmHandler {
	return &FarmHandler{farmSvc: farmSvc}
}

// HandleList returns the authenticated user's farms
func (h *FarmHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	farms, err := h.farmSvc.List(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list farms", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgListFarmsFailed)
		return
	}

	respondJSON(w, http.StatusOK, farms)
}

// HandleGet returns a single farm
func (h *FarmHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	result, err := h.farmSvc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleCreate registers a new farm
func (h *FarmHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req CreateFarmRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create farm"); err != nil {
		return
	}

	newFarm := &domain.Farm{
		Nome:        req.Nome,
		Localizacao: req.Localizacao,
		AreaTotal:   req.AreaTotal,
		UnidadeArea: req.UnidadeArea,
	}
	if err := h.farmSvc.Create(r.Context(), userID, newFarm); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newFarm)
}

// HandleUpdate applies a partial update to a farm
func (h *FarmHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req UpdateFarmRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update farm"); err != nil {
		return
	}

	update := domain.FarmUpdate{
		Nome:        req.Nome,
		Localizacao: req.Localizacao,
		AreaTotal:   req.AreaTotal,
		UnidadeArea: req.UnidadeArea,
	}
	result, err := h.farmSvc.Update(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDelete removes a farm and its plots
func (h *FarmHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	if err := h.farmSvc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFarmDeletedSuccess})
}
