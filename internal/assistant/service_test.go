package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
)

type stubClient struct {
	reply    string
	err      error
	messages []Message
}

func (s *stubClient) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

func TestChat(t *testing.T) {
	t.Run("persona precedes the user message", func(t *testing.T) {
		client := &stubClient{reply: "Use cobertura morta para reter umidade."}
		svc := NewService(client)

		reply, err := svc.Chat(context.Background(), "Como proteger o solo na seca?")
		require.NoError(t, err)
		assert.Equal(t, "Use cobertura morta para reter umidade.", reply)

		require.Len(t, client.messages, 2)
		assert.Equal(t, "system", client.messages[0].Role)
		assert.Contains(t, client.messages[0].Content, "2 a 4 frases")
		assert.Equal(t, "user", client.messages[1].Role)
	})

	t.Run("empty message rejected without a model call", func(t *testing.T) {
		client := &stubClient{}
		svc := NewService(client)

		_, err := svc.Chat(context.Background(), "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, client.messages)
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		client := &stubClient{err: errors.New("model down")}
		svc := NewService(client)

		_, err := svc.Chat(context.Background(), "Qual o melhor adubo?")
		require.Error(t, err)
	})
}

func TestOpenAIClient(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"choices": [{"message": {"content": "  Plante no cedo da manhã.  "}}]}`)
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "test-key", "gpt-4o-mini", server.Client())
		reply, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "oi"}})
		require.NoError(t, err)
		assert.Equal(t, "Plante no cedo da manhã.", reply, "reply is trimmed")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices": []}`)
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "test-key", "gpt-4o-mini", server.Client())
		_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "oi"}})
		assert.ErrorIs(t, err, domain.ErrEmptyResponse)
	})

	t.Run("blank content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices": [{"message": {"content": "   "}}]}`)
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "test-key", "gpt-4o-mini", server.Client())
		_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "oi"}})
		assert.ErrorIs(t, err, domain.ErrEmptyResponse)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "test-key", "gpt-4o-mini", server.Client())
		_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "oi"}})
		require.Error(t, err)
	})
}
