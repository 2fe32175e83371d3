package model

// CategoryStat summarizes one sale category within a creator's history.
type CategoryStat struct {
	Category     string
	Revenue      float64
	SalesCount   int64
	AveragePrice float64
	RevenueShare float64 // percentage of total revenue
}

// PriceBucket is one bar of the price histogram. Bucket boundaries are
// 10,000 KRW wide: Floor is price - (price mod 10000).
type PriceBucket struct {
	Floor      float64
	SalesCount int64
	Revenue    float64
}

// SeasonStat summarizes sales that fall into one calendar season.
type SeasonStat struct {
	Season     Season
	SalesCount int64
	Revenue    float64
}

// ProductStat is one entry of the top-products ranking.
type ProductStat struct {
	ProductName string
	Category    string
	Revenue     float64
	Quantity    int64
}

// AggregatedProfile is the statistical summary of a creator's sale history.
// Built fresh per call and never persisted.
type AggregatedProfile struct {
	CreatorID         string
	TotalRevenue      float64
	TotalSales        int64
	TotalQuantity     int64
	AverageOrderValue float64
	CategoryBreakdown []CategoryStat // sorted by revenue descending
	PriceHistogram    []PriceBucket  // sorted by bucket floor ascending
	SeasonalPattern   []SeasonStat   // spring, summer, fall, winter order
	TopProducts       []ProductStat  // top 5 by revenue
}

// TopCategory returns the creator's highest-revenue category, or "" when the
// profile is empty.
func (p *AggregatedProfile) TopCategory() string {
	if len(p.CategoryBreakdown) == 0 {
		return ""
	}
	return p.CategoryBreakdown[0].Category
}
