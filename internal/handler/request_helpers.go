package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agrocampo/api/internal/logger"
)

// HeaderUserID carries the authenticated user identity established by
// the API gateway in front of this service.
const HeaderUserID = "X-User-ID"

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// returns appropriate errors. If this function returns an error, the HTTP
// response has already been written and the handler should return.
//
// Example usage:
//
//	var req CreateFarmRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Create farm"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// UserIDFromRequest extracts the authenticated user ID from the request.
// If the header is missing, it writes an error response and returns false.
func UserIDFromRequest(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		logger.FromContext(r.Context()).Warn("Missing user identity header")
		respondError(w, http.StatusUnauthorized, ErrMsgMissingUserHeader)
		return "", false
	}
	return userID, true
}

// GetQueryParam retrieves and validates a required query parameter.
// If ok is false, the HTTP response has already been written and the
// handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetFloatQueryParam retrieves a required float query parameter, used
// for coordinate pairs. If ok is false, the response has been written.
func GetFloatQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (float64, bool) {
	raw, ok := GetQueryParam(r, w, paramName)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Invalid %s query parameter", paramName), "value", raw)
		http.Error(w, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName), http.StatusBadRequest)
		return 0, false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter, returning
// defaultValue when missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
