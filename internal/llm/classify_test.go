package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantKind  ErrorKind
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error": {"type": "rate_limit_error"}}`, KindRateLimited, true},
		{"quota exhausted via 429", http.StatusTooManyRequests, `{"error": {"code": "insufficient_quota"}}`, KindQuotaExhausted, false},
		{"unauthorized", http.StatusUnauthorized, "", KindAuthentication, false},
		{"forbidden", http.StatusForbidden, "", KindAuthentication, false},
		{"payment required", http.StatusPaymentRequired, "", KindQuotaExhausted, false},
		{"request timeout", http.StatusRequestTimeout, "", KindTimeout, true},
		{"internal server error", http.StatusInternalServerError, "", KindServerError, true},
		{"bad gateway", http.StatusBadGateway, "", KindServerError, true},
		{"service unavailable", http.StatusServiceUnavailable, "", KindServerError, true},
		{"bad request", http.StatusBadRequest, "", KindProvider, false},
		{"not found", http.StatusNotFound, "", KindProvider, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStatus("anthropic", tt.status, tt.body)
			require.NotNil(t, err)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.retryable, err.Retryable())
			assert.Equal(t, "anthropic", err.Provider)
		})
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
	}{
		{"network timeout", timeoutError{}, KindTimeout},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"connection refused", errors.New("dial tcp: connection refused"), KindConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyTransport("openai", tt.err)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.True(t, err.Retryable())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, "short", truncateBody("  short  "))

	long := strings.Repeat("x", 600)
	truncated := truncateBody(long)
	assert.Len(t, truncated, 512+3)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain json untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.content))
		})
	}
}
