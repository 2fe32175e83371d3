package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// InsightPayload is the validated response shape of the insight operation.
type InsightPayload struct {
	Summary         string                `json:"summary"`
	Strengths       []string              `json:"strengths"`
	TopCategories   []model.CategoryShare `json:"topCategories"`
	PriceRange      model.PriceRange      `json:"priceRange"`
	SeasonalTrends  []model.SeasonalTrend `json:"seasonalTrends"`
	Recommendations []string              `json:"recommendations"`
	Confidence      float64               `json:"confidence"` // 0-1
}

// Validate checks the payload against the insight schema.
func (p *InsightPayload) Validate() error {
	if strings.TrimSpace(p.Summary) == "" {
		return fmt.Errorf("summary is required")
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence %.2f outside [0,1]", p.Confidence)
	}
	if p.PriceRange.Min > p.PriceRange.Max {
		return fmt.Errorf("price range min %.0f exceeds max %.0f", p.PriceRange.Min, p.PriceRange.Max)
	}
	for i, trend := range p.SeasonalTrends {
		if trend.Season == "" {
			return fmt.Errorf("seasonal trend %d missing season", i)
		}
	}
	return nil
}

// PredictedRevenue is the revenue estimate attached to one match candidate.
type PredictedRevenue struct {
	Min                 float64 `json:"min"`
	Max                 float64 `json:"max"`
	Average             float64 `json:"average"`
	PredictedQuantity   int64   `json:"predictedQuantity,omitempty"`
	PredictedCommission float64 `json:"predictedCommission,omitempty"`
}

// MatchCandidate is one scored pairing in a matching response. The candidate
// id arrives as productId in the product direction and as id in the creator
// direction.
type MatchCandidate struct {
	ProductID        string               `json:"productId"`
	ID               string               `json:"id"`
	MatchScore       float64              `json:"matchScore"` // 0-100
	ScoreBreakdown   model.ScoreBreakdown `json:"scoreBreakdown"`
	PredictedRevenue PredictedRevenue     `json:"predictedRevenue"`
	Reasoning        string               `json:"reasoning"`
}

// EntityID returns the candidate identifier regardless of direction.
func (m *MatchCandidate) EntityID() string {
	if m.ProductID != "" {
		return m.ProductID
	}
	return m.ID
}

// MatchPayload is the validated response shape of the matching operation.
// An empty match list is valid: no candidate cleared the score cut.
type MatchPayload struct {
	Matches []MatchCandidate `json:"matches"`
}

// Validate checks the payload against the matching schema.
func (p *MatchPayload) Validate() error {
	for i, match := range p.Matches {
		if match.EntityID() == "" {
			return fmt.Errorf("match %d missing candidate id", i)
		}
		if match.MatchScore < 0 || match.MatchScore > 100 {
			return fmt.Errorf("match %d score %.1f outside [0,100]", i, match.MatchScore)
		}
		for name, score := range map[string]float64{
			"categoryFit": match.ScoreBreakdown.CategoryFit,
			"priceFit":    match.ScoreBreakdown.PriceFit,
			"seasonFit":   match.ScoreBreakdown.SeasonFit,
			"audienceFit": match.ScoreBreakdown.AudienceFit,
		} {
			if score < 0 || score > 100 {
				return fmt.Errorf("match %d %s %.1f outside [0,100]", i, name, score)
			}
		}
		rev := match.PredictedRevenue
		if rev.Min > rev.Average || rev.Average > rev.Max {
			return fmt.Errorf("match %d predicted revenue violates min <= average <= max", i)
		}
	}
	return nil
}

// decodeStrictJSON parses raw model output into the target payload. The
// output must be a JSON object; a null or empty body is rejected before
// unmarshaling so it cannot silently decode into a zero value.
func decodeStrictJSON(provider, content string, target any) error {
	content = cleanMarkdownWrapper(content)
	if content == "" || content == "null" {
		return newInvalidResponse(provider, "empty response content", nil)
	}
	if !strings.HasPrefix(content, "{") {
		return newInvalidResponse(provider, "response is not a JSON object", nil)
	}
	if err := json.Unmarshal([]byte(content), target); err != nil {
		return newInvalidResponse(provider, "response is not valid JSON", err)
	}
	return nil
}
