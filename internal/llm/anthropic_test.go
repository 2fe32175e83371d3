package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropicTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newAnthropicClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client
}

func TestAnthropicClientRequiresAPIKey(t *testing.T) {
	_, err := newAnthropicClient(Config{})
	assert.Error(t, err)
}

func TestAnthropicComplete(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-5-sonnet-20241022", body["model"])
		assert.Equal(t, "you are a matcher", body["system"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": `{"matches": []}`},
			},
		})
	})

	content, err := client.Complete(context.Background(), CompletionRequest{
		System:      "you are a matcher",
		User:        "match these",
		Temperature: 0.2,
		MaxTokens:   3000,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"matches": []}`, content)
}

func TestAnthropicCompleteErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind ErrorKind
	}{
		{"overloaded", http.StatusServiceUnavailable, KindServerError},
		{"rate limited", http.StatusTooManyRequests, KindRateLimited},
		{"bad key", http.StatusUnauthorized, KindAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newAnthropicTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error": {"message": "upstream failure"}}`))
			})

			_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})
			require.Error(t, err)

			var re *ReasoningError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantKind, re.Kind)
			assert.Equal(t, "anthropic", re.Provider)
		})
	}
}

func TestAnthropicCompleteEmptyContent(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
	})

	_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})
	require.Error(t, err)

	var re *ReasoningError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindInvalidResponse, re.Kind)
}

func TestAnthropicCompleteBadEnvelope(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})
	require.Error(t, err)

	var re *ReasoningError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindInvalidResponse, re.Kind)
}
