package handler

import (
	"net/http"

	"github.com/agrocampo/api/internal/geo"
)

// ResolveLocationRequest asks the server to reverse geocode a device fix,
// or reports a device-side acquisition failure instead.
type ResolveLocationRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Failure   string   `json:"failure,omitempty" validate:"omitempty,oneof=permission_denied unsupported"`
}

// SetLocationRequest stores a manual city/state override
type SetLocationRequest struct {
	City  string `json:"city" validate:"required,max=120"`
	State string `json:"state" validate:"required,max=64"`
}

// LocationHandler handles per-user location HTTP requests
type LocationHandler struct {
	resolver *geo.Resolver
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(resolver *geo.Resolver) *LocationHandler {
	return &LocationHandler{resolver: resolver}
}

// HandleGet returns the stored location snapshot, 404 when none exists
func (h *LocationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	loc, found := h.resolver.Current(userID)
	if !found {
		respondError(w, http.StatusNotFound, "No location stored")
		return
	}

	respondJSON(w, http.StatusOK, loc)
}

// HandleResolve resolves coordinates into a stored snapshot, or records
// a device-side failure. All outcomes respond 200 with a status field:
// the client renders failure states, it does not handle transport errors.
func (h *LocationHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req ResolveLocationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve location"); err != nil {
		return
	}

	if req.Failure != "" {
		respondJSON(w, http.StatusOK, h.resolver.ReportFailure(req.Failure))
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error: ErrMsgInvalidRequestSummary,
			Fields: map[string]string{
				"latitude":  "This field is required",
				"longitude": "This field is required",
			},
		})
		return
	}

	resolution := h.resolver.Resolve(r.Context(), userID, *req.Latitude, *req.Longitude)
	respondJSON(w, http.StatusOK, resolution)
}

// HandleSetManual stores a manual location override
func (h *LocationHandler) HandleSetManual(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req SetLocationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set manual location"); err != nil {
		return
	}

	loc := h.resolver.SetManual(userID, req.City, req.State)
	respondJSON(w, http.StatusOK, loc)
}

// HandleClear removes the stored location
func (h *LocationHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	h.resolver.Clear(userID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLocationCleared})
}
