package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/agrocampo/api/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// bufferPool recycles encode buffers across responses. Most payloads
// are small listing/activity JSON, so 512 bytes covers the common case.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgFarmNotFoundError     = "Farm not found"
	ErrMsgPlotNotFoundError     = "Plot not found"
	ErrMsgActivityNotFoundError = "Activity not found"
	ErrMsgListingNotFoundError  = "Listing not found"

	ErrMsgAlreadyCompletedError  = "Activity is already completed"
	ErrMsgFarmRequiredError      = "Plot must belong to an existing farm"
	ErrMsgNoListingsMatchedError = "No listings matched the search query"
	ErrMsgNotOwnerError          = "You do not have access to this resource"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
	ErrMsgUploadFailedError      = "Image upload failed. Please try again."
	ErrMsgAnalysisFailedError    = "Image analysis failed. Please try again."
	ErrMsgEmptyModelError        = "The model returned an empty response. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrFarmNotFound):
		return http.StatusNotFound, ErrMsgFarmNotFoundError
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, ErrMsgPlotNotFoundError
	case errors.Is(err, domain.ErrActivityNotFound):
		return http.StatusNotFound, ErrMsgActivityNotFoundError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrNoListingsMatched):
		return http.StatusNotFound, ErrMsgNoListingsMatchedError
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return http.StatusConflict, ErrMsgAlreadyCompletedError
	case errors.Is(err, domain.ErrFarmRequired):
		return http.StatusBadRequest, ErrMsgFarmRequiredError
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, ErrMsgUploadFailedError
	case errors.Is(err, domain.ErrAnalysisFailed):
		return http.StatusBadGateway, ErrMsgAnalysisFailedError
	case errors.Is(err, domain.ErrEmptyResponse):
		return http.StatusBadGateway, ErrMsgEmptyModelError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}
