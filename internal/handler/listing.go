package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/listing"
	"github.com/agrocampo/api/internal/logger"
)

// CreateListingRequest represents the request to publish a listing
type CreateListingRequest struct {
	Titulo      string  `json:"titulo" validate:"required,max=200"`
	Descricao   string  `json:"descricao" validate:"max=2000"`
	Preco       float64 `json:"preco" validate:"gte=0"`
	Localizacao string  `json:"localizacao" validate:"max=255"`
	Telefone    string  `json:"telefone" validate:"max=32"`
	ImagemURL   string  `json:"imagem_url" validate:"omitempty,url"`
}

// UpdateListingRequest carries the mutable listing fields, all optional
type UpdateListingRequest struct {
	Titulo      *string  `json:"titulo,omitempty" validate:"omitempty,max=200"`
	Descricao   *string  `json:"descricao,omitempty" validate:"omitempty,max=2000"`
	Preco       *float64 `json:"preco,omitempty" validate:"omitempty,gte=0"`
	Localizacao *string  `json:"localizacao,omitempty" validate:"omitempty,max=255"`
	Telefone    *string  `json:"telefone,omitempty" validate:"omitempty,max=32"`
	ImagemURL   *string  `json:"imagem_url,omitempty" validate:"omitempty,url"`
}

// BulkDeleteRequest removes listings by title substring
type BulkDeleteRequest struct {
	SearchQuery string `json:"searchQuery" validate:"required,max=200"`
}

// WhatsAppLinkResponse carries the contact deep link for a listing
type WhatsAppLinkResponse struct {
	Link string `json:"link"`
}

// ListingHandler handles marketplace HTTP requests
type ListingHandler struct {
	listingSvc listing.Service
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingSvc listing.Service) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

// HandleList returns all active listings
func (h *ListingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingSvc.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list listings", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgListListingsFailed)
		return
	}

	respondJSON(w, http.StatusOK, listings)
}

// HandleGet returns a single listing
func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.listingSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleCreate publishes a new listing
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
		return
	}

	newListing := &domain.Listing{
		Titulo:      req.Titulo,
		Descricao:   req.Descricao,
		Preco:       req.Preco,
		Localizacao: req.Localizacao,
		Telefone:    req.Telefone,
		ImagemURL:   req.ImagemURL,
	}
	if err := h.listingSvc.Create(r.Context(), userID, newListing); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newListing)
}

// HandleUpdate applies a partial update to a listing
func (h *ListingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update listing"); err != nil {
		return
	}

	update := domain.ListingUpdate{
		Titulo:      req.Titulo,
		Descricao:   req.Descricao,
		Preco:       req.Preco,
		Localizacao: req.Localizacao,
		Telefone:    req.Telefone,
		ImagemURL:   req.ImagemURL,
	}
	result, err := h.listingSvc.Update(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDelete removes a single listing
func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromRequest(r, w)
	if !ok {
		return
	}

	if err := h.listingSvc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgListingDeletedSuccess})
}

// HandleBulkDelete removes every listing matching the title query.
// Zero matches responds 404; a missing query responds 400.
func (h *ListingHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bulk delete listings"); err != nil {
		return
	}

	result, err := h.listingSvc.BulkDelete(r.Context(), req.SearchQuery)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleWhatsAppLink returns the contact deep link for a listing
func (h *ListingHandler) HandleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.listingSvc.WhatsAppLink(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, WhatsAppLinkResponse{Link: link})
}
