package handler

import (
	"net/http"

	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/weather"
)

// WeatherHandler handles weather HTTP requests
type WeatherHandler struct {
	weatherSvc weather.Service
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherSvc weather.Service) *WeatherHandler {
	return &WeatherHandler{weatherSvc: weatherSvc}
}

// HandleGet returns the UI-ready weather payload for a coordinate pair
func (h *WeatherHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lat, ok := GetFloatQueryParam(r, w, "lat")
	if !ok {
		return
	}
	lon, ok := GetFloatQueryParam(r, w, "lon")
	if !ok {
		return
	}

	view, err := h.weatherSvc.View(r.Context(), lat, lon)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get weather", "lat", lat, "lon", lon, "error", err)
		respondError(w, http.StatusBadGateway, ErrMsgWeatherFailed)
		return
	}

	respondJSON(w, http.StatusOK, view)
}
