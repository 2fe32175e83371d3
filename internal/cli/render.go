package cli

import (
	"fmt"
	"strings"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// RenderInsight formats a creator insight for terminal display.
func RenderInsight(creator model.Creator, insight *model.CreatorInsight) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Insight: %s (%s)", creator.Name, creator.Platform)))
	b.WriteString("\n")
	b.WriteString(insight.Summary)
	b.WriteString("\n\n")

	if len(insight.Strengths) > 0 {
		b.WriteString(BoldStyle.Render("Strengths"))
		b.WriteString("\n")
		for _, strength := range insight.Strengths {
			fmt.Fprintf(&b, "  • %s\n", strength)
		}
	}

	if len(insight.TopCategories) > 0 {
		b.WriteString(BoldStyle.Render("Top categories"))
		b.WriteString("\n")
		for _, share := range insight.TopCategories {
			fmt.Fprintf(&b, "  %-12s %5.1f%%\n", share.Category, share.Percentage)
		}
	}

	fmt.Fprintf(&b, "%s min %.0f / avg %.0f / max %.0f KRW\n",
		BoldStyle.Render("Price range:"),
		insight.PriceRange.Min, insight.PriceRange.Average, insight.PriceRange.Max)

	if len(insight.Recommendations) > 0 {
		b.WriteString(BoldStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, rec := range insight.Recommendations {
			fmt.Fprintf(&b, "  • %s\n", rec)
		}
	}

	b.WriteString(SubtleStyle.Render(fmt.Sprintf("confidence %.0f%%, generated %s",
		insight.Confidence*100, insight.GeneratedAt.Format("2006-01-02 15:04"))))

	return b.String()
}

// RenderProductMatches formats a product match list for terminal display.
func RenderProductMatches(creator model.Creator, matches []model.ProductMatch) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Product matches for %s", creator.Name)))
	b.WriteString("\n")

	if len(matches) == 0 {
		b.WriteString(WarningStyle.Render("No products cleared the score threshold."))
		return b.String()
	}

	for i, match := range matches {
		b.WriteString(renderMatchRow(i, match.Product.Name, match.MatchScore,
			match.ScoreBreakdown, match.PredictedRevenue, match.Reasoning, match.HeuristicFallback))
	}
	return b.String()
}

// RenderCreatorMatches formats a creator match list for terminal display.
func RenderCreatorMatches(product model.Product, matches []model.CreatorMatch) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Creator matches for %s", product.Name)))
	b.WriteString("\n")

	if len(matches) == 0 {
		b.WriteString(WarningStyle.Render("No creators with sufficient history matched."))
		return b.String()
	}

	for i, match := range matches {
		b.WriteString(renderMatchRow(i, match.Creator.Name, match.MatchScore,
			match.ScoreBreakdown, match.PredictedRevenue, match.Reasoning, match.HeuristicFallback))
	}
	return b.String()
}

func renderMatchRow(rank int, name string, score float64, breakdown model.ScoreBreakdown, revenue model.RevenuePrediction, reasoning string, heuristic bool) string {
	var b strings.Builder

	header := fmt.Sprintf("%2d. %s  %s", rank+1, BoldStyle.Render(name),
		SuccessStyle.Render(fmt.Sprintf("%.0f", score)))
	if heuristic {
		header += "  " + WarningStyle.Render("(heuristic)")
	}
	b.WriteString(header)
	b.WriteString("\n")

	fmt.Fprintf(&b, "    category %.0f | price %.0f | season %.0f | audience %.0f\n",
		breakdown.CategoryFit, breakdown.PriceFit, breakdown.SeasonFit, breakdown.AudienceFit)
	fmt.Fprintf(&b, "    predicted revenue %.0f KRW (%.0f ~ %.0f)\n",
		revenue.Expected, revenue.Min, revenue.Max)
	b.WriteString(SubtleStyle.Render("    " + reasoning))
	b.WriteString("\n")

	return b.String()
}
