// Package model defines the core domain types for the creator insight engine.
package model

// Creator represents a content creator whose sale history is analyzed.
// Reference data supplied by the storage layer; treated as immutable.
type Creator struct {
	ID             string
	Name           string
	Platform       string   // e.g. "youtube", "instagram", "tiktok"
	FollowerCount  int64
	EngagementRate float64  // percentage, e.g. 4.2 means 4.2%
	Categories     []string // 2-3 category affinities
	TotalSales     int64    // lifetime units sold
	TotalRevenue   float64  // lifetime revenue in KRW
}

// HasCategory reports whether the creator lists the given category affinity.
func (c *Creator) HasCategory(category string) bool {
	for _, affinity := range c.Categories {
		if affinity == category {
			return true
		}
	}
	return false
}
