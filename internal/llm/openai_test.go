package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2) // system stays inline for OpenAI-compatible APIs

		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Track every expense."}}]
		}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{Provider: "openai", APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "You are a financial advisor."},
		{Role: RoleUser, Content: "How do I budget?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Track every expense.", reply)
}

func TestOpenAICompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "invalid key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{Provider: "together", APIKey: "bad-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), UserMessage("hi"))
	require.Error(t, err)

	var serviceErr *common.ExternalServiceError
	assert.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "together", serviceErr.Service)
}

func TestNewClientFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "anthropic", cfg: Config{Provider: "anthropic", APIKey: "k"}},
		{name: "openai", cfg: Config{Provider: "openai", APIKey: "k"}},
		{name: "together", cfg: Config{Provider: "together", APIKey: "k"}},
		{name: "unknown provider", cfg: Config{Provider: "cohere", APIKey: "k"}, wantErr: true},
		{name: "missing key", cfg: Config{Provider: "anthropic"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
