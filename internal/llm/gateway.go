package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
)

// Per-operation sampling defaults. Matching enumerates the whole catalog and
// needs the larger output budget.
const (
	insightTemperature = 0.3
	insightMaxTokens   = 2000
	matchTemperature   = 0.2
	matchMaxTokens     = 3000
)

// Gateway wraps a provider client with retry, JSON parsing, and schema
// validation. It performs no caching; the orchestrator owns that.
type Gateway struct {
	client    Client
	logger    *slog.Logger
	provider  string
	retryOpts common.RetryOptions
}

// NewGateway creates a gateway over the given provider client.
func NewGateway(client Client, cfg Config, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Gateway{
		client:    client,
		logger:    logger,
		provider:  cfg.Provider,
		retryOpts: retryOpts,
	}
}

// Insight runs the single-creator analysis operation and returns the
// validated payload.
func (g *Gateway) Insight(ctx context.Context, system, user string) (*InsightPayload, error) {
	content, err := g.complete(ctx, CompletionRequest{
		System:      system,
		User:        user,
		Temperature: insightTemperature,
		MaxTokens:   insightMaxTokens,
	}, "insight")
	if err != nil {
		return nil, err
	}

	var payload InsightPayload
	if err := decodeStrictJSON(g.provider, content, &payload); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, newInvalidResponse(g.provider, "insight schema validation failed", err)
	}

	return &payload, nil
}

// Matches runs the matching operation and returns the validated payload.
func (g *Gateway) Matches(ctx context.Context, system, user string) (*MatchPayload, error) {
	content, err := g.complete(ctx, CompletionRequest{
		System:      system,
		User:        user,
		Temperature: matchTemperature,
		MaxTokens:   matchMaxTokens,
	}, "match")
	if err != nil {
		return nil, err
	}

	var payload MatchPayload
	if err := decodeStrictJSON(g.provider, content, &payload); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, newInvalidResponse(g.provider, "match schema validation failed", err)
	}

	return &payload, nil
}

// complete invokes the provider with the transient-failure retry policy.
// Only transport-level reasoning errors are retried; parse and validation
// failures surface from the callers untouched.
func (g *Gateway) complete(ctx context.Context, req CompletionRequest, operation string) (string, error) {
	var content string

	err := common.WithRetry(ctx, func() error {
		g.logger.Debug("reasoning call attempt",
			"operation", operation,
			"provider", g.provider)

		result, err := g.client.Complete(ctx, req)
		if err != nil {
			g.logger.Warn("reasoning call failed",
				"operation", operation,
				"provider", g.provider,
				"error", err)
			return err
		}

		content = result
		return nil
	}, g.retryOpts)
	if err != nil {
		var reasoningErr *ReasoningError
		if !errors.As(err, &reasoningErr) {
			// Anything the classifier never saw surfaces as unknown.
			err = &ReasoningError{Kind: KindUnknown, Provider: g.provider, Err: err}
		}
		return "", err
	}

	return content, nil
}
