package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/metrics"
)

// personaPrompt pins the assistant to short, practical agronomy answers.
const personaPrompt = "Você é um agrônomo experiente que ajuda produtores rurais brasileiros. " +
	"Responda sempre em português, de forma prática e direta, em 2 a 4 frases. " +
	"Se a pergunta não for sobre agricultura, redirecione educadamente para temas agrícolas."

// FallbackMessage is returned to the client alongside the error state
// when the model is unreachable.
const FallbackMessage = "Não consegui processar sua pergunta agora. Tente novamente em instantes."

// Service defines the chat assistant business logic
type Service interface {
	Chat(ctx context.Context, userMessage string) (string, error)
}

type service struct {
	client Client
}

// NewService creates a new assistant service
func NewService(client Client) Service {
	return &service{client: client}
}

func (s *service) Chat(ctx context.Context, userMessage string) (string, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	reply, err := s.client.ChatCompletion(ctx, []Message{
		{Role: "system", Content: personaPrompt},
		{Role: "user", Content: userMessage},
	})
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Error("assistant request failed", "error", err)
		return "", err
	}

	metrics.AssistantRequests.WithLabelValues("ok").Inc()
	return reply, nil
}
