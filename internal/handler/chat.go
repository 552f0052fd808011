package handler

import (
	"errors"
	"net/http"

	"github.com/agrocampo/api/internal/assistant"
	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
)

// ChatRequest carries the producer's question for the assistant
type ChatRequest struct {
	UserMessage string `json:"userMessage" validate:"required,max=4000"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatFallbackResponse is returned when the model is unreachable: an
// error state plus a canned reply the client can render directly.
type ChatFallbackResponse struct {
	Error    string `json:"error"`
	Fallback bool   `json:"fallback"`
	Response string `json:"response"`
}

// ChatHandler handles assistant HTTP requests
type ChatHandler struct {
	assistantSvc assistant.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistantSvc assistant.Service) *ChatHandler {
	return &ChatHandler{assistantSvc: assistantSvc}
}

// HandleChat forwards the question to the assistant. Upstream failures
// respond 500 with fallback=true and a canned message.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserIDFromRequest(r, w); !ok {
		return
	}

	var req ChatRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Chat"); err != nil {
		return
	}

	reply, err := h.assistantSvc.Chat(r.Context(), req.UserMessage)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondServiceError(w, err)
			return
		}

		logger.FromContext(r.Context()).Error("Assistant unavailable", "error", err)
		respondJSON(w, http.StatusInternalServerError, ChatFallbackResponse{
			Error:    "assistant unavailable",
			Fallback: true,
			Response: assistant.FallbackMessage,
		})
		return
	}

	respondJSON(w, http.StatusOK, ChatResponse{Response: reply})
}
