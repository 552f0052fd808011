package handler

import (
	"net/http"

	"github.com/agrocampo/api/internal/dashboard"
	"github.com/agrocampo/api/internal/logger"
)

// DashboardHandler handles home screen overview requests
type DashboardHandler struct {
	dashboardSvc dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// HandleOverview returns the combined farms and plots payload for the
// home screen. Either source failing fails the whole request.
func (h *DashboardHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	overview, err := h.dashboardSvc.Overview(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build dashboard overview", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgDashboardFailed)
		return
	}

	respondJSON(w, http.StatusOK, overview)
}
