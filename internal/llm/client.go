package llm

import (
	"context"
	"time"
)

// CompletionRequest is a single reasoning call: a system instruction, the
// rendered user content, and per-call sampling options.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client defines the interface for reasoning-service providers. Complete
// returns the raw response text; parsing and validation happen in the
// gateway. Implementations classify transport and provider failures into
// ReasoningError values.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Config holds provider configuration for the reasoning client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // override for tests
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}
