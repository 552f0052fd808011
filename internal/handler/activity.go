package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrocampo/api/internal/activity"
	"github.com/agrocampo/api/internal/domain"
)

// CreateActivityRequest represents the request to schedule an activity
type CreateActivityRequest struct {
	TalhaoID       string    `json:"talhao_id" validate:"max=64"`
	Tipo           string    `json:"tipo" validate:"required,max=120"`
	Descricao      string    `json:"descricao" validate:"max=2000"`
	Status         string    `json:"status" validate:"max=50"`
	DataProgramada time.Time `json:"data_programada" validate:"required"`
}

// UpdateActivityRequest rewrites an activity's mutable fields
type UpdateActivityRequest struct {
	TalhaoID       string    `json:"talhao_id" validate:"max=64"`
	Tipo           string    `json:"tipo" validate:"required,max=120"`
	Descricao      string    `json:"descricao" validate:"max=2000"`
	Status         string    `json:"status" validate:"max=50"`
	DataProgramada time.Time `json:"data_programada" validate:"required"`
}

// ActivityHandler handles atividade HTTP requests
type ActivityHandler struct {
	activitySvc activity.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activitySvc activity.Service) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// HandleList returns the user's activities, or the flagged example
// dataset when the list cannot be loaded
func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	result, err := h.activitySvc.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGet returns a single activity
func (h *ActivityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	result, err := h.activitySvc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleCreate schedules a new activity
func (h *ActivityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req CreateActivityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create activity"); err != nil {
		return
	}

	newActivity := &domain.Activity{
		TalhaoID:       req.TalhaoID,
		Tipo:           req.Tipo,
		Descricao:      req.Descricao,
		Status:         domain.ActivityStatus(req.Status),
		DataProgramada: req.DataProgramada,
	}
	if err := h.activitySvc.Create(r.Context(), userID, newActivity); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newActivity)
}

// HandleUpdate rewrites an activity
func (h *ActivityHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req UpdateActivityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update activity"); err != nil {
		return
	}

	updated := &domain.Activity{
		ID:             chi.URLParam(r, "id"),
		TalhaoID:       req.TalhaoID,
		Tipo:           req.Tipo,
		Descricao:      req.Descricao,
		Status:         domain.ActivityStatus(req.Status),
		DataProgramada: req.DataProgramada,
	}
	if err := h.activitySvc.Update(r.Context(), userID, updated); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// HandleComplete transitions an activity to its terminal state
func (h *ActivityHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	result, err := h.activitySvc.Complete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDelete removes an activity
func (h *ActivityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	if err := h.activitySvc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgActivityDeletedSuccess})
}
