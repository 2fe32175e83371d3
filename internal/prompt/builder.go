// Package prompt renders aggregated creator profiles and catalog data into
// the system/user prompt pairs the reasoning gateway sends. Builders are
// deterministic and never touch the network.
package prompt

import (
	"fmt"
	"strings"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// Pair is one reasoning request: the system instruction carrying role and
// output contract, and the user content carrying the rendered data.
type Pair struct {
	System string
	User   string
}

// MinMatchScore is the score cut the matching prompt instructs the model to
// apply before returning candidates.
const MinMatchScore = 70

// Insight builds the prompt pair for single-creator analysis.
func Insight(creator model.Creator, profile model.AggregatedProfile) Pair {
	system := `You are a creator-commerce analyst for a Korean influencer marketing platform. You analyze a creator's historical sale performance and produce a qualitative insight.

You MUST respond with ONLY a valid JSON object, no markdown fences, no commentary. The object must have exactly this shape:
{"summary": string, "strengths": [string], "topCategories": [{"category": string, "percentage": number}], "priceRange": {"min": number, "max": number, "average": number}, "seasonalTrends": [{"season": string, "salesCount": number, "revenue": number}], "recommendations": [string], "confidence": number between 0 and 1}`

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this creator's sale performance. All amounts are KRW.\n\n")
	writeCreatorHeader(&b, creator)
	writeProfile(&b, profile)
	b.WriteString("\nProvide a summary of what this creator sells well, 2-4 strengths, the top revenue categories with their percentage shares, the realistic price range of their sales, the seasonal trends in the data, and 2-4 actionable recommendations for which product types to promote next.")

	return Pair{System: system, User: b.String()}
}

// MatchProducts builds the prompt pair ranking catalog products for one
// creator. The full catalog is enumerated so the model can only pick known
// ids.
func MatchProducts(creator model.Creator, profile model.AggregatedProfile, catalog []model.Product, season model.Season) Pair {
	system := matchSystemPrompt("productId", "product")

	var b strings.Builder
	fmt.Fprintf(&b, "Rank the candidate products for this creator. All amounts are KRW. The current season is %s.\n\n", season)
	writeCreatorHeader(&b, creator)
	writeProfile(&b, profile)

	b.WriteString("\nCandidate products:\n")
	for _, product := range catalog {
		fmt.Fprintf(&b, "- id: %s | name: %s | category: %s | price: %.0f | seasonality: %s | commission: %.1f%%\n",
			product.ID, product.Name, product.Category, product.Price,
			strings.Join(product.Seasonality, ","), product.CommissionRate)
	}

	return Pair{System: system, User: b.String()}
}

// CandidateCreator pairs a candidate creator with its aggregated profile for
// the creator-matching direction.
type CandidateCreator struct {
	Creator model.Creator
	Profile model.AggregatedProfile
}

// MatchCreators builds the prompt pair ranking candidate creators for one
// product.
func MatchCreators(product model.Product, candidates []CandidateCreator, season model.Season) Pair {
	system := matchSystemPrompt("id", "creator")

	var b strings.Builder
	fmt.Fprintf(&b, "Rank the candidate creators for promoting this product. All amounts are KRW. The current season is %s.\n\n", season)
	fmt.Fprintf(&b, "Product: %s\nCategory: %s\nPrice: %.0f\nSeasonality: %s\nTarget audience: %s\nCommission: %.1f%%\n",
		product.Name, product.Category, product.Price,
		strings.Join(product.Seasonality, ","),
		strings.Join(product.TargetAudience, ","),
		product.CommissionRate)

	b.WriteString("\nCandidate creators:\n")
	for _, candidate := range candidates {
		fmt.Fprintf(&b, "- id: %s | name: %s | platform: %s | followers: %d | engagement: %.1f%% | top category: %s | avg order value: %.0f | total revenue: %.0f\n",
			candidate.Creator.ID, candidate.Creator.Name, candidate.Creator.Platform,
			candidate.Creator.FollowerCount, candidate.Creator.EngagementRate,
			candidate.Profile.TopCategory(), candidate.Profile.AverageOrderValue,
			candidate.Profile.TotalRevenue)
	}

	return Pair{System: system, User: b.String()}
}

// matchSystemPrompt states the scoring contract shared by both matching
// directions: the 40/30/20/10 weights, the score cut, and pre-sorting.
func matchSystemPrompt(idField, candidateNoun string) string {
	return fmt.Sprintf(`You are a creator-commerce matchmaker for a Korean influencer marketing platform. You score how well each candidate %s fits, based on historical sale data.

Scoring rules:
- categoryFit (weight 40%%): how well the category matches the creator's proven revenue categories.
- priceFit (weight 30%%): how close the price point is to what the creator's audience historically buys.
- seasonFit (weight 20%%): how well the seasonality matches the current season.
- audienceFit (weight 10%%): how well the target audience matches the creator's audience and engagement.
- matchScore is the weighted sum of the four sub-scores; every score is between 0 and 100.
- Keep only candidates with matchScore >= %d and sort matches by matchScore descending before responding.

You MUST respond with ONLY a valid JSON object, no markdown fences, no commentary. The object must have exactly this shape:
{"matches": [{"%s": string, "matchScore": number, "scoreBreakdown": {"categoryFit": number, "priceFit": number, "seasonFit": number, "audienceFit": number}, "predictedRevenue": {"min": number, "max": number, "average": number, "predictedQuantity": number, "predictedCommission": number}, "reasoning": string}]}
predictedRevenue must satisfy min <= average <= max.`, candidateNoun, MinMatchScore, idField)
}

func writeCreatorHeader(b *strings.Builder, creator model.Creator) {
	fmt.Fprintf(b, "Creator: %s\nPlatform: %s\nFollowers: %d\nEngagement rate: %.1f%%\nCategory affinities: %s\n",
		creator.Name, creator.Platform, creator.FollowerCount,
		creator.EngagementRate, strings.Join(creator.Categories, ", "))
}

func writeProfile(b *strings.Builder, profile model.AggregatedProfile) {
	fmt.Fprintf(b, "\nSale history summary:\nTotal revenue: %.0f\nTotal sales: %d\nAverage order value: %.0f\n",
		profile.TotalRevenue, profile.TotalSales, profile.AverageOrderValue)

	if len(profile.CategoryBreakdown) > 0 {
		b.WriteString("\nRevenue by category (descending):\n")
		for _, stat := range profile.CategoryBreakdown {
			fmt.Fprintf(b, "- %s: revenue %.0f (%.2f%%), %d sales, avg price %.0f\n",
				stat.Category, stat.Revenue, stat.RevenueShare, stat.SalesCount, stat.AveragePrice)
		}
	}

	if len(profile.SeasonalPattern) > 0 {
		b.WriteString("\nSeasonal pattern:\n")
		for _, stat := range profile.SeasonalPattern {
			fmt.Fprintf(b, "- %s: %d sales, revenue %.0f\n", stat.Season, stat.SalesCount, stat.Revenue)
		}
	}

	if len(profile.PriceHistogram) > 0 {
		b.WriteString("\nPrice buckets (10,000 KRW wide):\n")
		for _, bucket := range profile.PriceHistogram {
			fmt.Fprintf(b, "- from %.0f: %d sales, revenue %.0f\n", bucket.Floor, bucket.SalesCount, bucket.Revenue)
		}
	}

	if len(profile.TopProducts) > 0 {
		b.WriteString("\nTop products by revenue:\n")
		for _, product := range profile.TopProducts {
			fmt.Fprintf(b, "- %s (%s): revenue %.0f, quantity %d\n",
				product.ProductName, product.Category, product.Revenue, product.Quantity)
		}
	}
}
