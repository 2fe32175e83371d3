// Package engine composes aggregation, prompting, reasoning, caching, and
// fallback scoring into the two public operations: creator analysis and
// creator/product matching.
package engine

import (
	"context"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/llm"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// ReasoningGateway is the engine's view of the validated reasoning service.
type ReasoningGateway interface {
	Insight(ctx context.Context, system, user string) (*llm.InsightPayload, error)
	Matches(ctx context.Context, system, user string) (*llm.MatchPayload, error)
}

// CreatorSales pairs a candidate creator with its sale history for the
// catalog-wide creator-matching direction.
type CreatorSales struct {
	Creator model.Creator
	Sales   []model.SaleRecord
}
