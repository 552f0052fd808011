package handler

import (
	"net/http"
	"strings"

	"github.com/agrocampo/api/internal/analysis"
	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
)

const maxAnalysisUploadBytes = 10 << 20 // 10MB

// AnalyzeRequest is the JSON form of an analysis request, carrying the
// image as base64. Multipart requests carry the same fields as form values.
type AnalyzeRequest struct {
	ImageBase64    string `json:"image_base64" validate:"required"`
	ImageName      string `json:"image_name" validate:"max=255"`
	Culture        string `json:"culture" validate:"required,max=120"`
	Symptoms       string `json:"symptoms" validate:"required,max=2000"`
	AffectedArea   string `json:"affected_area" validate:"max=255"`
	TimeFrame      string `json:"time_frame" validate:"max=255"`
	RecentProducts string `json:"recent_products" validate:"max=2000"`
	WeatherChanges string `json:"weather_changes" validate:"max=2000"`
	Location       string `json:"location" validate:"max=255"`
}

// AnalysisHandler handles plant diagnosis HTTP requests
type AnalysisHandler struct {
	analysisSvc analysis.Service
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// HandleAnalyze runs the upload-then-diagnose pipeline. The image
// arrives either as a multipart file field named "image" or as a base64
// string in a JSON body.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserIDFromRequest(r, w); !ok {
		return
	}

	var (
		upload analysis.Upload
		input  domain.AnalysisInput
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxAnalysisUploadBytes); err != nil {
			logger.FromContext(r.Context()).Warn("Failed to parse multipart form", "error", err)
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: map[string]string{"image": "This field is required"},
			})
			return
		}
		defer file.Close()

		upload = analysis.Upload{Name: header.Filename, Reader: file}
		input = domain.AnalysisInput{
			Culture:        r.FormValue("culture"),
			Symptoms:       r.FormValue("symptoms"),
			AffectedArea:   r.FormValue("affected_area"),
			TimeFrame:      r.FormValue("time_frame"),
			RecentProducts: r.FormValue("recent_products"),
			WeatherChanges: r.FormValue("weather_changes"),
			Location:       r.FormValue("location"),
		}
		if input.Culture == "" || input.Symptoms == "" {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error: ErrMsgInvalidRequestSummary,
				Fields: map[string]string{
					"culture":  "This field is required",
					"symptoms": "This field is required",
				},
			})
			return
		}
	} else {
		var req AnalyzeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Analyze image"); err != nil {
			return
		}
		upload = analysis.Upload{Name: req.ImageName, Base64: req.ImageBase64}
		input = domain.AnalysisInput{
			Culture:        req.Culture,
			Symptoms:       req.Symptoms,
			AffectedArea:   req.AffectedArea,
			TimeFrame:      req.TimeFrame,
			RecentProducts: req.RecentProducts,
			WeatherChanges: req.WeatherChanges,
			Location:       req.Location,
		}
	}

	result, err := h.analysisSvc.Analyze(r.Context(), upload, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
