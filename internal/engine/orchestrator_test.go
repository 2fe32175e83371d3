package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cache"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/llm"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func testCreator() model.Creator {
	return model.Creator{
		ID:             "c1",
		Name:           "Mina",
		Platform:       "youtube",
		FollowerCount:  120_000,
		EngagementRate: 4.2,
		Categories:     []string{"Beauty", "Fashion"},
	}
}

func salesFor(creatorID string, n int) []model.SaleRecord {
	sales := make([]model.SaleRecord, 0, n)
	for i := 0; i < n; i++ {
		sales = append(sales, model.SaleRecord{
			ID:          fmt.Sprintf("%s-s%d", creatorID, i),
			CreatorID:   creatorID,
			ProductID:   fmt.Sprintf("p%d", i),
			ProductName: fmt.Sprintf("Product %d", i),
			Category:    "Beauty",
			Date:        time.Date(2024, time.April, i+1, 0, 0, 0, 0, time.UTC),
			Quantity:    2,
			Revenue:     84_000,
		})
	}
	return sales
}

func testCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Serum", Category: "Beauty", Price: 45_000, Seasonality: []string{"summer"}, CommissionRate: 10},
		{ID: "p2", Name: "Jacket", Category: "Fashion", Price: 90_000, Seasonality: []string{"winter"}, CommissionRate: 8},
		{ID: "p3", Name: "Blender", Category: "Home", Price: 30_000, Seasonality: []string{"all"}, CommissionRate: 5},
	}
}

func matchPayload(scores map[string]float64) *llm.MatchPayload {
	payload := &llm.MatchPayload{}
	for id, score := range scores {
		payload.Matches = append(payload.Matches, llm.MatchCandidate{
			ProductID:  id,
			MatchScore: score,
			ScoreBreakdown: model.ScoreBreakdown{
				CategoryFit: score, PriceFit: score, SeasonFit: score, AudienceFit: score,
			},
			PredictedRevenue: llm.PredictedRevenue{Min: 100_000, Max: 200_000, Average: 150_000},
			Reasoning:        "aligned with history",
		})
	}
	return payload
}

func newTestOrchestrator(gateway ReasoningGateway) (*Orchestrator, *cache.ResultCache) {
	c := cache.New(5 * time.Minute)
	return New(gateway, c, nil).WithClock(fixedClock()), c
}

func TestAnalyzeCreatorInsufficientData(t *testing.T) {
	gateway := &MockGateway{}
	o, _ := newTestOrchestrator(gateway)

	// Four records is one short of the analysis floor.
	_, err := o.AnalyzeCreator(context.Background(), testCreator(), salesFor("c1", 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInsufficientData)

	var ide *common.InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 5, ide.Required)
	assert.Equal(t, 4, ide.Actual)

	// The gateway must never be consulted for ineligible creators.
	assert.Equal(t, 0, gateway.InsightCalls())
}

func TestAnalyzeCreatorAtThreshold(t *testing.T) {
	gateway := &MockGateway{}
	o, _ := newTestOrchestrator(gateway)

	insight, err := o.AnalyzeCreator(context.Background(), testCreator(), salesFor("c1", 5))
	require.NoError(t, err)
	assert.Equal(t, "c1", insight.CreatorID)
	assert.Equal(t, "mock insight", insight.Summary)
	assert.Equal(t, fixedClock()(), insight.GeneratedAt)
	assert.Equal(t, 1, gateway.InsightCalls())
}

func TestAnalyzeCreatorCachedWithinTTL(t *testing.T) {
	gateway := &MockGateway{}
	o, _ := newTestOrchestrator(gateway)

	creator := testCreator()
	sales := salesFor("c1", 10)

	first, err := o.AnalyzeCreator(context.Background(), creator, sales)
	require.NoError(t, err)
	second, err := o.AnalyzeCreator(context.Background(), creator, sales)
	require.NoError(t, err)

	// Identical request within the TTL reasons exactly once.
	assert.Equal(t, 1, gateway.InsightCalls())
	assert.Same(t, first, second)
}

func TestAnalyzeCreatorReasoningFailurePropagates(t *testing.T) {
	gateway := &MockGateway{
		InsightFunc: func(context.Context, string, string) (*llm.InsightPayload, error) {
			return nil, &llm.ReasoningError{Kind: llm.KindServerError, Provider: "anthropic"}
		},
	}
	o, _ := newTestOrchestrator(gateway)

	_, err := o.AnalyzeCreator(context.Background(), testCreator(), salesFor("c1", 10))
	require.Error(t, err)

	// Analysis has no heuristic substitute; the failure surfaces.
	var re *llm.ReasoningError
	assert.ErrorAs(t, err, &re)
}

func TestAnalyzeCreatorFailureNotCached(t *testing.T) {
	failing := true
	gateway := &MockGateway{
		InsightFunc: func(context.Context, string, string) (*llm.InsightPayload, error) {
			if failing {
				return nil, errors.New("reasoning down")
			}
			return &llm.InsightPayload{Summary: "recovered", Confidence: 0.7}, nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	_, err := o.AnalyzeCreator(context.Background(), testCreator(), salesFor("c1", 10))
	require.Error(t, err)

	failing = false
	insight, err := o.AnalyzeCreator(context.Background(), testCreator(), salesFor("c1", 10))
	require.NoError(t, err)
	assert.Equal(t, "recovered", insight.Summary)
	assert.Equal(t, 2, gateway.InsightCalls())
}

func TestMatchProductsPreconditions(t *testing.T) {
	gateway := &MockGateway{}
	o, _ := newTestOrchestrator(gateway)

	_, err := o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 4), testCatalog(), 10)
	assert.ErrorIs(t, err, common.ErrInsufficientData)

	_, err = o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), nil, 10)
	assert.ErrorIs(t, err, common.ErrEmptyCatalog)

	assert.Equal(t, 0, gateway.MatchCalls())
}

func TestMatchProductsRankedAndTruncated(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return matchPayload(map[string]float64{"p1": 88, "p2": 45, "p3": 72}), nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	matches, err := o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), testCatalog(), 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "p1", matches[0].Product.ID)
	assert.Equal(t, "p3", matches[1].Product.ID)
	assert.InDelta(t, 0.88, matches[0].Confidence, 0.0001)
	assert.False(t, matches[0].HeuristicFallback)
	assert.InDelta(t, 150_000, matches[0].PredictedRevenue.Expected, 0.001)
}

func TestMatchProductsDropsUnknownIDs(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return matchPayload(map[string]float64{"p1": 88, "ghost": 95}), nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	matches, err := o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), testCatalog(), 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "p1", matches[0].Product.ID)
}

func TestMatchProductsCachedWithinTTL(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return matchPayload(map[string]float64{"p1": 88}), nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	creator := testCreator()
	sales := salesFor("c1", 10)
	catalog := testCatalog()

	_, err := o.MatchProducts(context.Background(), creator, sales, catalog, 10)
	require.NoError(t, err)
	_, err = o.MatchProducts(context.Background(), creator, sales, catalog, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.MatchCalls())

	// A different limit is a different cache entry.
	_, err = o.MatchProducts(context.Background(), creator, sales, catalog, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, gateway.MatchCalls())
}

func TestInvalidateCreatorCacheForcesReasoning(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return matchPayload(map[string]float64{"p1": 88}), nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	creator := testCreator()
	sales := salesFor("c1", 10)
	catalog := testCatalog()

	_, err := o.MatchProducts(context.Background(), creator, sales, catalog, 10)
	require.NoError(t, err)
	_, err = o.AnalyzeCreator(context.Background(), creator, sales)
	require.NoError(t, err)

	o.InvalidateCreatorCache(creator.ID)

	_, err = o.MatchProducts(context.Background(), creator, sales, catalog, 10)
	require.NoError(t, err)
	_, err = o.AnalyzeCreator(context.Background(), creator, sales)
	require.NoError(t, err)

	assert.Equal(t, 2, gateway.MatchCalls())
	assert.Equal(t, 2, gateway.InsightCalls())
}

func TestMatchProductsFallsBackOnReasoningFailure(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return nil, &llm.ReasoningError{Kind: llm.KindServerError, Provider: "anthropic"}
		},
	}
	o, _ := newTestOrchestrator(gateway)

	matches, err := o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), testCatalog(), 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	for _, match := range matches {
		assert.True(t, match.HeuristicFallback)
		assert.GreaterOrEqual(t, match.MatchScore, 0.0)
		assert.LessOrEqual(t, match.MatchScore, 100.0)
		assert.LessOrEqual(t, match.PredictedRevenue.Min, match.PredictedRevenue.Expected)
		assert.LessOrEqual(t, match.PredictedRevenue.Expected, match.PredictedRevenue.Max)
	}

	// Descending order holds on the fallback path too.
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].MatchScore, matches[i].MatchScore)
	}
}

func TestMatchProductsFallbackResultCached(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return nil, errors.New("reasoning down")
		},
	}
	o, _ := newTestOrchestrator(gateway)

	_, err := o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), testCatalog(), 10)
	require.NoError(t, err)
	_, err = o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), testCatalog(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, gateway.MatchCalls())
}

func TestMatchCreatorsSkipsThinHistories(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return nil, errors.New("reasoning down")
		},
	}
	o, _ := newTestOrchestrator(gateway)

	candidates := []CreatorSales{
		{Creator: model.Creator{ID: "c1", Name: "Mina", Categories: []string{"Beauty"}}, Sales: salesFor("c1", 10)},
		{Creator: model.Creator{ID: "c2", Name: "Thin"}, Sales: salesFor("c2", 2)},
		{Creator: model.Creator{ID: "c3", Name: "Thinner"}, Sales: salesFor("c3", 1)},
	}
	product := model.Product{ID: "p1", Name: "Serum", Category: "Beauty", Price: 45_000, Seasonality: []string{"summer"}}

	// Even on the heuristic path the thin-history creators never appear.
	matches, err := o.MatchCreators(context.Background(), product, candidates, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "c1", matches[0].Creator.ID)
	assert.True(t, matches[0].HeuristicFallback)
}

func TestMatchCreatorsAllIneligible(t *testing.T) {
	gateway := &MockGateway{}
	o, _ := newTestOrchestrator(gateway)

	candidates := []CreatorSales{
		{Creator: model.Creator{ID: "c1"}, Sales: salesFor("c1", 2)},
		{Creator: model.Creator{ID: "c2"}, Sales: nil},
	}
	product := model.Product{ID: "p1", Name: "Serum", Category: "Beauty"}

	matches, err := o.MatchCreators(context.Background(), product, candidates, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 0, gateway.MatchCalls())
}

func TestMatchCreatorsEmptyCandidateList(t *testing.T) {
	o, _ := newTestOrchestrator(&MockGateway{})

	_, err := o.MatchCreators(context.Background(), model.Product{ID: "p1"}, nil, 10)
	assert.ErrorIs(t, err, common.ErrEmptyCatalog)
}

func TestMatchCreatorsRanked(t *testing.T) {
	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return &llm.MatchPayload{Matches: []llm.MatchCandidate{
				{ID: "c2", MatchScore: 91, PredictedRevenue: llm.PredictedRevenue{Min: 1, Max: 3, Average: 2}},
				{ID: "c1", MatchScore: 64, PredictedRevenue: llm.PredictedRevenue{Min: 1, Max: 3, Average: 2}},
			}}, nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	candidates := []CreatorSales{
		{Creator: model.Creator{ID: "c1", Name: "Mina"}, Sales: salesFor("c1", 10)},
		{Creator: model.Creator{ID: "c2", Name: "Juno"}, Sales: salesFor("c2", 10)},
	}
	product := model.Product{ID: "p1", Name: "Serum", Category: "Beauty"}

	matches, err := o.MatchCreators(context.Background(), product, candidates, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "c2", matches[0].Creator.ID)
	assert.InDelta(t, 0.91, matches[0].Confidence, 0.0001)
	assert.Equal(t, "c1", matches[1].Creator.ID)
}

func TestDefaultLimitApplied(t *testing.T) {
	payload := &llm.MatchPayload{}
	for i := 0; i < 15; i++ {
		payload.Matches = append(payload.Matches, llm.MatchCandidate{
			ProductID:        fmt.Sprintf("p%d", i),
			MatchScore:       float64(100 - i),
			PredictedRevenue: llm.PredictedRevenue{Min: 1, Max: 3, Average: 2},
		})
	}

	catalog := make([]model.Product, 0, 15)
	for i := 0; i < 15; i++ {
		catalog = append(catalog, model.Product{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Product %d", i), Category: "Beauty", Price: 10_000})
	}

	gateway := &MockGateway{
		MatchesFunc: func(context.Context, string, string) (*llm.MatchPayload, error) {
			return payload, nil
		},
	}
	o, _ := newTestOrchestrator(gateway)

	matches, err := o.MatchProducts(context.Background(), testCreator(), salesFor("c1", 10), catalog, 0)
	require.NoError(t, err)
	assert.Len(t, matches, DefaultLimit)
}
