// Package fallback computes deterministic match scores when the reasoning
// service is unavailable. The output is structurally identical to the
// reasoning path so callers cannot tell the two apart by shape.
package fallback

import (
	"fmt"
	"math"
	"time"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// MinSaleRecords is the eligibility floor: with fewer records the creator's
// average order value and category signal are too thin to score.
const MinSaleRecords = 3

// Heuristic score levels.
const (
	categoryFitTop      = 85.0
	categoryFitAffinity = 55.0
	categoryFitLow      = 25.0
	seasonFitMatch      = 90.0
	seasonFitBaseline   = 40.0
	audienceFitFloor    = 70.0
	priceFitNeutral     = 50.0

	// engagementBaseline is the platform-wide average engagement rate in
	// percent; audienceFit scales against it.
	engagementBaseline = 3.0
)

// Scorer produces heuristic score breakdowns and revenue predictions.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a Scorer using the wall clock for season matching.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// NewScorerAt creates a Scorer with a fixed clock. Used by tests and by
// callers that score relative to a reference date.
func NewScorerAt(now func() time.Time) *Scorer {
	return &Scorer{now: now}
}

// Eligible reports whether a creator profile has enough sale history for
// heuristic scoring.
func (s *Scorer) Eligible(profile model.AggregatedProfile) bool {
	return profile.TotalSales >= MinSaleRecords
}

// ScoreProduct scores one product for a creator. The second return value is
// false when the creator is ineligible.
func (s *Scorer) ScoreProduct(creator model.Creator, profile model.AggregatedProfile, product model.Product) (model.ProductMatch, bool) {
	if !s.Eligible(profile) {
		return model.ProductMatch{}, false
	}

	breakdown := s.breakdown(creator, profile, product)
	score := breakdown.Overall()

	return model.ProductMatch{
		Product:           product,
		MatchScore:        score,
		ScoreBreakdown:    breakdown,
		PredictedRevenue:  s.predictRevenue(profile, product, score),
		Reasoning:         s.reasoning(creator, product, breakdown),
		Confidence:        score / 100,
		HeuristicFallback: true,
	}, true
}

// ScoreCreator scores one creator for a product; the inverse direction of
// ScoreProduct with the same breakdown semantics.
func (s *Scorer) ScoreCreator(product model.Product, creator model.Creator, profile model.AggregatedProfile) (model.CreatorMatch, bool) {
	if !s.Eligible(profile) {
		return model.CreatorMatch{}, false
	}

	breakdown := s.breakdown(creator, profile, product)
	score := breakdown.Overall()

	return model.CreatorMatch{
		Creator:           creator,
		MatchScore:        score,
		ScoreBreakdown:    breakdown,
		PredictedRevenue:  s.predictRevenue(profile, product, score),
		Reasoning:         s.reasoning(creator, product, breakdown),
		Confidence:        score / 100,
		HeuristicFallback: true,
	}, true
}

func (s *Scorer) breakdown(creator model.Creator, profile model.AggregatedProfile, product model.Product) model.ScoreBreakdown {
	return model.ScoreBreakdown{
		CategoryFit: categoryFit(creator, profile, product),
		PriceFit:    priceFit(profile, product),
		SeasonFit:   seasonFit(product, model.SeasonOf(s.now())),
		AudienceFit: audienceFit(creator),
	}
}

// categoryFit is high when the product sits in the creator's single top
// revenue category, moderate when it is merely a declared affinity.
func categoryFit(creator model.Creator, profile model.AggregatedProfile, product model.Product) float64 {
	if product.Category == profile.TopCategory() {
		return categoryFitTop
	}
	if creator.HasCategory(product.Category) {
		return categoryFitAffinity
	}
	return categoryFitLow
}

// priceFit decreases monotonically with the relative distance between the
// product price and the creator's historical average order value.
func priceFit(profile model.AggregatedProfile, product model.Product) float64 {
	if profile.AverageOrderValue <= 0 {
		return priceFitNeutral
	}

	relative := math.Abs(product.Price-profile.AverageOrderValue) / profile.AverageOrderValue
	fit := 100 - relative*100
	if fit < 0 {
		return 0
	}
	return fit
}

func seasonFit(product model.Product, season model.Season) float64 {
	if product.InSeason(season) {
		return seasonFitMatch
	}
	return seasonFitBaseline
}

// audienceFit scales engagement against the platform baseline with a floor
// of 70 so low-engagement creators are not penalized disproportionately in
// the absence of real audience data.
func audienceFit(creator model.Creator) float64 {
	fit := audienceFitFloor + creator.EngagementRate/engagementBaseline*15
	if fit < audienceFitFloor {
		return audienceFitFloor
	}
	if fit > 100 {
		return 100
	}
	return fit
}

// predictRevenue estimates revenue from the creator's own order history,
// scaled by match quality. Maintains min <= expected <= max.
func (s *Scorer) predictRevenue(profile model.AggregatedProfile, product model.Product, score float64) model.RevenuePrediction {
	avgQuantity := float64(profile.TotalQuantity) / float64(profile.TotalSales)
	if avgQuantity < 1 {
		avgQuantity = 1
	}

	quantity := int64(math.Max(1, math.Round(avgQuantity*score/100)))
	expected := product.Price * float64(quantity)

	return model.RevenuePrediction{
		Min:                 math.Round(expected * 0.7),
		Max:                 math.Round(expected * 1.4),
		Expected:            math.Round(expected),
		PredictedQuantity:   quantity,
		PredictedCommission: math.Round(expected * product.CommissionRate / 100),
		Basis:               "heuristic estimate from historical average order value and match score",
	}
}

func (s *Scorer) reasoning(creator model.Creator, product model.Product, breakdown model.ScoreBreakdown) string {
	return fmt.Sprintf(
		"Heuristic score for %s x %s: category fit %.0f, price fit %.0f, season fit %.0f, audience fit %.0f. Computed from sale history without AI reasoning.",
		creator.Name, product.Name,
		breakdown.CategoryFit, breakdown.PriceFit, breakdown.SeasonFit, breakdown.AudienceFit)
}
