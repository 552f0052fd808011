package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/plot"
)

// CreatePlotRequest represents the request to register a new plot
type CreatePlotRequest struct {
	LavouraID        string     `json:"lavoura_id" validate:"required"`
	Nome             string     `json:"nome" validate:"required,max=120"`
	Cultura          string     `json:"cultura" validate:"required,max=120"`
	FaseCrescimento  string     `json:"fase_crescimento" validate:"max=120"`
	Status           string     `json:"status" validate:"max=50"`
	Area             float64    `json:"area" validate:"gte=0"`
	DataPlantio      *time.Time `json:"data_plantio,omitempty"`
	PrevisaoColheita *time.Time `json:"previsao_colheita,omitempty"`
}

// UpdatePlotRequest carries the mutable plot fields, all optional
type UpdatePlotRequest struct {
	Nome             *string    `json:"nome,omitempty" validate:"omitempty,max=120"`
	Cultura          *string    `json:"cultura,omitempty" validate:"omitempty,max=120"`
	FaseCrescimento  *string    `json:"fase_crescimento,omitempty" validate:"omitempty,max=120"`
	Status           *string    `json:"status,omitempty" validate:"omitempty,max=50"`
	Area             *float64   `json:"area,omitempty" validate:"omitempty,gte=0"`
	DataPlantio      *time.Time `json:"data_plantio,omitempty"`
	PrevisaoColheita *time.Time `json:"previsao_colheita,omitempty"`
}

// PlotHandler handles talhão HTTP requests
type PlotHandler struct {
	plotSvc plot.Service
}

// NewPlotHandler creates a new plot handler
func NewPlotHandler(plotSvc plot.Service) *PlotHandler {
	return &PlotHandler{plotSvc: plotSvc}
}

// HandleList returns plots, filtered by lavoura_id when present
func (h *PlotHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var (
		plots []domain.Plot
		err   error
	)
	if farmID := GetOptionalQueryParam(r, "lavoura_id", ""); farmID != "" {
		plots, err = h.plotSvc.ListByFarm(r.Context(), userID, farmID)
	} else {
		plots, err = h.plotSvc.ListByUser(r.Context(), userID)
	}
	if err != nil {
		if status, msg := mapServiceErrorToUserMessage(err); status != http.StatusInternalServerError {
			respondError(w, status, msg)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to list plots", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgListPlotsFailed)
		return
	}

	respondJSON(w, http.StatusOK, plots)
}

// HandleGet returns a single plot
func (h *PlotHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	result, err := h.plotSvc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleCreate registers a new plot under a farm
func (h *PlotHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req CreatePlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create plot"); err != nil {
		return
	}

	newPlot := &domain.Plot{
		LavouraID:        req.LavouraID,
		Nome:             req.Nome,
		Cultura:          req.Cultura,
		FaseCrescimento:  req.FaseCrescimento,
		Status:           req.Status,
		Area:             req.Area,
		DataPlantio:      req.DataPlantio,
		PrevisaoColheita: req.PrevisaoColheita,
	}
	if err := h.plotSvc.Create(r.Context(), userID, newPlot); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newPlot)
}

// HandleUpdate applies a partial update to a plot
func (h *PlotHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req UpdatePlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update plot"); err != nil {
		return
	}

	update := domain.PlotUpdate{
		Nome:             req.Nome,
		Cultura:          req.Cultura,
		FaseCrescimento:  req.FaseCrescimento,
		Status:           req.Status,
		Area:             req.Area,
		DataPlantio:      req.DataPlantio,
		PrevisaoColheita: req.PrevisaoColheita,
	}
	result, err := h.plotSvc.Update(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDelete removes a plot
func (h *PlotHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	if err := h.plotSvc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlotDeletedSuccess})
}
