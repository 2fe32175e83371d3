package fallback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

func juneClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func beautyProfile() model.AggregatedProfile {
	return model.AggregatedProfile{
		CreatorID:         "c1",
		TotalRevenue:      840_000,
		TotalSales:        20,
		TotalQuantity:     40,
		AverageOrderValue: 42_000,
		CategoryBreakdown: []model.CategoryStat{
			{Category: "Beauty", Revenue: 600_000, RevenueShare: 71.43},
			{Category: "Fashion", Revenue: 240_000, RevenueShare: 28.57},
		},
	}
}

func TestEligibility(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name       string
		totalSales int64
		want       bool
	}{
		{"no history", 0, false},
		{"two records", 2, false},
		{"exactly at floor", 3, true},
		{"well above floor", 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.AggregatedProfile{TotalSales: tt.totalSales}
			assert.Equal(t, tt.want, s.Eligible(profile))
		})
	}
}

func TestScoreProductIneligibleCreator(t *testing.T) {
	s := NewScorerAt(juneClock())
	creator := model.Creator{ID: "c1", Name: "Thin History"}
	profile := model.AggregatedProfile{CreatorID: "c1", TotalSales: 2}
	product := model.Product{ID: "p1", Name: "Serum", Category: "Beauty", Price: 40_000}

	_, ok := s.ScoreProduct(creator, profile, product)
	assert.False(t, ok)
}

func TestPriceFitNearAverageOrderValue(t *testing.T) {
	// Price 45,000 against AOV 42,000 is about 7% off, so the price fit
	// must stay above 70.
	s := NewScorerAt(juneClock())
	creator := model.Creator{ID: "c1", Name: "Mina", Categories: []string{"Beauty"}}
	product := model.Product{ID: "p1", Name: "Serum", Category: "Beauty", Price: 45_000}

	match, ok := s.ScoreProduct(creator, beautyProfile(), product)
	require.True(t, ok)
	assert.Greater(t, match.ScoreBreakdown.PriceFit, 70.0)
}

func TestCategoryFitLevels(t *testing.T) {
	creator := model.Creator{ID: "c1", Categories: []string{"Beauty", "Fashion"}}
	profile := beautyProfile()

	tests := []struct {
		name     string
		category string
		want     float64
	}{
		{"top revenue category", "Beauty", categoryFitTop},
		{"declared affinity only", "Fashion", categoryFitAffinity},
		{"unrelated category", "Tech", categoryFitLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := model.Product{Category: tt.category}
			assert.Equal(t, tt.want, categoryFit(creator, profile, product))
		})
	}
}

func TestPriceFitBounds(t *testing.T) {
	profile := beautyProfile()

	// A price more than double the AOV clamps to zero.
	assert.Equal(t, 0.0, priceFit(profile, model.Product{Price: 100_000}))

	// An exact AOV match is perfect.
	assert.InDelta(t, 100, priceFit(profile, model.Product{Price: 42_000}), 0.0001)

	// No order history yields the neutral midpoint.
	empty := model.AggregatedProfile{}
	assert.Equal(t, priceFitNeutral, priceFit(empty, model.Product{Price: 42_000}))
}

func TestSeasonFit(t *testing.T) {
	summer := model.Product{Seasonality: []string{"summer"}}
	winter := model.Product{Seasonality: []string{"winter"}}
	allYear := model.Product{Seasonality: []string{"all"}}

	assert.Equal(t, seasonFitMatch, seasonFit(summer, model.SeasonSummer))
	assert.Equal(t, seasonFitBaseline, seasonFit(winter, model.SeasonSummer))
	assert.Equal(t, seasonFitMatch, seasonFit(allYear, model.SeasonSummer))
}

func TestAudienceFit(t *testing.T) {
	tests := []struct {
		name       string
		engagement float64
		want       float64
	}{
		{"zero engagement stays at floor", 0, 70},
		{"baseline engagement", 3.0, 85},
		{"high engagement clamps at 100", 12.0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := model.Creator{EngagementRate: tt.engagement}
			assert.InDelta(t, tt.want, audienceFit(creator), 0.0001)
		})
	}
}

func TestScoreStaysInRange(t *testing.T) {
	s := NewScorerAt(juneClock())
	profile := beautyProfile()

	products := []model.Product{
		{ID: "p1", Category: "Beauty", Price: 42_000, Seasonality: []string{"summer"}},
		{ID: "p2", Category: "Tech", Price: 500_000, Seasonality: []string{"winter"}},
		{ID: "p3", Category: "Fashion", Price: 1, Seasonality: []string{"all"}},
	}

	for _, product := range products {
		creator := model.Creator{ID: "c1", Categories: []string{"Beauty", "Fashion"}, EngagementRate: 5.5}
		match, ok := s.ScoreProduct(creator, profile, product)
		require.True(t, ok)

		for name, score := range map[string]float64{
			"categoryFit": match.ScoreBreakdown.CategoryFit,
			"priceFit":    match.ScoreBreakdown.PriceFit,
			"seasonFit":   match.ScoreBreakdown.SeasonFit,
			"audienceFit": match.ScoreBreakdown.AudienceFit,
			"overall":     match.MatchScore,
		} {
			assert.GreaterOrEqualf(t, score, 0.0, "%s below range for %s", name, product.ID)
			assert.LessOrEqualf(t, score, 100.0, "%s above range for %s", name, product.ID)
		}

		assert.InDelta(t, match.MatchScore/100, match.Confidence, 0.0001)
		assert.True(t, match.HeuristicFallback)
	}
}

func TestPredictedRevenueOrdering(t *testing.T) {
	s := NewScorerAt(juneClock())
	creator := model.Creator{ID: "c1", Name: "Mina", Categories: []string{"Beauty"}, EngagementRate: 4.0}
	product := model.Product{
		ID: "p1", Name: "Serum", Category: "Beauty",
		Price: 45_000, Seasonality: []string{"summer"}, CommissionRate: 10,
	}

	match, ok := s.ScoreProduct(creator, beautyProfile(), product)
	require.True(t, ok)

	pred := match.PredictedRevenue
	assert.LessOrEqual(t, pred.Min, pred.Expected)
	assert.LessOrEqual(t, pred.Expected, pred.Max)
	assert.GreaterOrEqual(t, pred.PredictedQuantity, int64(1))
	assert.InDelta(t, pred.Expected*product.CommissionRate/100, pred.PredictedCommission, 1.0)
	assert.NotEmpty(t, pred.Basis)
}

func TestScoreCreatorMirrorsScoreProduct(t *testing.T) {
	s := NewScorerAt(juneClock())
	creator := model.Creator{ID: "c1", Name: "Mina", Categories: []string{"Beauty"}, EngagementRate: 4.0}
	product := model.Product{ID: "p1", Name: "Serum", Category: "Beauty", Price: 45_000, Seasonality: []string{"summer"}}
	profile := beautyProfile()

	productMatch, ok := s.ScoreProduct(creator, profile, product)
	require.True(t, ok)
	creatorMatch, ok := s.ScoreCreator(product, creator, profile)
	require.True(t, ok)

	// Both directions share the same breakdown for the same pairing.
	assert.Equal(t, productMatch.ScoreBreakdown, creatorMatch.ScoreBreakdown)
	assert.Equal(t, productMatch.MatchScore, creatorMatch.MatchScore)
	assert.Equal(t, "c1", creatorMatch.Creator.ID)
	assert.True(t, creatorMatch.HeuristicFallback)
}
