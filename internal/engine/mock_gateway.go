package engine

import (
	"context"
	"sync"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/llm"
)

// MockGateway is a test double for the reasoning gateway. Function fields
// override behavior per test; call counts are tracked for idempotence
// assertions.
type MockGateway struct {
	InsightFunc func(ctx context.Context, system, user string) (*llm.InsightPayload, error)
	MatchesFunc func(ctx context.Context, system, user string) (*llm.MatchPayload, error)

	mu           sync.Mutex
	insightCalls int
	matchCalls   int
}

// Insight implements ReasoningGateway.
func (m *MockGateway) Insight(ctx context.Context, system, user string) (*llm.InsightPayload, error) {
	m.mu.Lock()
	m.insightCalls++
	m.mu.Unlock()

	if m.InsightFunc != nil {
		return m.InsightFunc(ctx, system, user)
	}
	return &llm.InsightPayload{Summary: "mock insight", Confidence: 0.9}, nil
}

// Matches implements ReasoningGateway.
func (m *MockGateway) Matches(ctx context.Context, system, user string) (*llm.MatchPayload, error) {
	m.mu.Lock()
	m.matchCalls++
	m.mu.Unlock()

	if m.MatchesFunc != nil {
		return m.MatchesFunc(ctx, system, user)
	}
	return &llm.MatchPayload{}, nil
}

// InsightCalls returns how many insight calls the mock has served.
func (m *MockGateway) InsightCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insightCalls
}

// MatchCalls returns how many matching calls the mock has served.
func (m *MockGateway) MatchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchCalls
}
