package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/agrocampo/api/internal/domain"
)

// Message is a single chat-completions message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts the chat-completions API so services can be tested
// without a live model.
type Client interface {
	ChatCompletion(ctx context.Context, messages []Message) (string, error)
}

type openAIClient struct {
	endpoint string
	key      string
	model    string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

// NewOpenAIClient creates a client for an OpenAI-compatible
// chat-completions endpoint.
func NewOpenAIClient(endpoint, key, model string, client *http.Client) Client {
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &openAIClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    model,
		client:   client,
		circuit:  cb,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("chat completion returned status %d", resp.StatusCode)
		}

		var out chatResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
			return nil, fmt.Errorf("failed to decode chat response: %w", decodeErr)
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}

	out := result.(chatResponse)
	if len(out.Choices) == 0 {
		return "", domain.ErrEmptyResponse
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", domain.ErrEmptyResponse
	}
	return content, nil
}
