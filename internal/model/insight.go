package model

import "time"

// ScoreBreakdown holds the four sub-scores behind a match score. Every field
// is in [0,100]. The overall score weights them 40/30/20/10.
type ScoreBreakdown struct {
	CategoryFit float64 `json:"categoryFit"`
	PriceFit    float64 `json:"priceFit"`
	SeasonFit   float64 `json:"seasonFit"`
	AudienceFit float64 `json:"audienceFit"`
}

// Weighted sub-score contributions to the overall match score.
const (
	WeightCategory = 0.4
	WeightPrice    = 0.3
	WeightSeason   = 0.2
	WeightAudience = 0.1
)

// Overall returns the 40/30/20/10 weighted match score.
func (s ScoreBreakdown) Overall() float64 {
	return s.CategoryFit*WeightCategory +
		s.PriceFit*WeightPrice +
		s.SeasonFit*WeightSeason +
		s.AudienceFit*WeightAudience
}

// RevenuePrediction estimates the revenue a pairing would generate.
// Invariant: Min <= Expected <= Max.
type RevenuePrediction struct {
	Min                 float64 `json:"min"`
	Max                 float64 `json:"max"`
	Expected            float64 `json:"average"`
	PredictedQuantity   int64   `json:"predictedQuantity,omitempty"`
	PredictedCommission float64 `json:"predictedCommission,omitempty"`
	Basis               string  `json:"basis"`
}

// CategoryShare is a category with its share of total revenue.
type CategoryShare struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

// PriceRange summarizes the price spread of a creator's sold products.
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// SeasonalTrend is one season's sales summary as reported in an insight.
type SeasonalTrend struct {
	Season     string  `json:"season"`
	SalesCount int64   `json:"salesCount"`
	Revenue    float64 `json:"revenue"`
}

// CreatorInsight is the qualitative analysis of one creator's sale history.
// Confidence is in [0,1].
type CreatorInsight struct {
	CreatorID       string          `json:"creatorId"`
	Summary         string          `json:"summary"`
	Strengths       []string        `json:"strengths"`
	TopCategories   []CategoryShare `json:"topCategories"`
	PriceRange      PriceRange      `json:"priceRange"`
	SeasonalTrends  []SeasonalTrend `json:"seasonalTrends"`
	Recommendations []string        `json:"recommendations"`
	Confidence      float64         `json:"confidence"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// ProductMatch recommends one product for a creator.
//
// Confidence is always in [0,1]; for matches it is derived as MatchScore/100
// at the mapping boundary so both the reasoning and fallback paths report the
// same units.
type ProductMatch struct {
	Product           Product           `json:"product"`
	MatchScore        float64           `json:"matchScore"` // 0-100
	ScoreBreakdown    ScoreBreakdown    `json:"scoreBreakdown"`
	PredictedRevenue  RevenuePrediction `json:"predictedRevenue"`
	Reasoning         string            `json:"reasoning"`
	Confidence        float64           `json:"confidence"`
	HeuristicFallback bool              `json:"heuristicFallback"`
}

// CreatorMatch recommends one creator for a product. Same score semantics as
// ProductMatch.
type CreatorMatch struct {
	Creator           Creator           `json:"creator"`
	MatchScore        float64           `json:"matchScore"` // 0-100
	ScoreBreakdown    ScoreBreakdown    `json:"scoreBreakdown"`
	PredictedRevenue  RevenuePrediction `json:"predictedRevenue"`
	Reasoning         string            `json:"reasoning"`
	Confidence        float64           `json:"confidence"`
	HeuristicFallback bool              `json:"heuristicFallback"`
}
