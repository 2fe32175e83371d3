// Package aggregate turns a creator's raw sale records into the statistical
// profile the prompt builder and fallback scorer consume.
package aggregate

import (
	"math"
	"sort"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// PriceBucketWidth is the histogram bucket width in KRW.
const PriceBucketWidth = 10000

// maxTopProducts caps the top-product ranking length.
const maxTopProducts = 5

// Profile builds an AggregatedProfile from a creator's sale records.
// Pure function: no failure modes, an empty history yields a zero profile.
func Profile(creator model.Creator, sales []model.SaleRecord) model.AggregatedProfile {
	profile := model.AggregatedProfile{
		CreatorID: creator.ID,
	}

	if len(sales) == 0 {
		return profile
	}

	type categoryAccum struct {
		revenue  float64
		count    int64
		priceSum float64
	}
	type productAccum struct {
		category string
		revenue  float64
		quantity int64
	}

	categories := make(map[string]*categoryAccum)
	buckets := make(map[float64]*model.PriceBucket)
	seasons := make(map[model.Season]*model.SeasonStat)
	products := make(map[string]*productAccum)

	for _, sale := range sales {
		profile.TotalRevenue += sale.Revenue
		profile.TotalSales++
		profile.TotalQuantity += sale.Quantity

		cat, ok := categories[sale.Category]
		if !ok {
			cat = &categoryAccum{}
			categories[sale.Category] = cat
		}
		cat.revenue += sale.Revenue
		cat.count++
		if sale.Quantity > 0 {
			cat.priceSum += sale.Revenue / float64(sale.Quantity)
		}

		floor := math.Floor(unitPrice(sale)/PriceBucketWidth) * PriceBucketWidth
		bucket, ok := buckets[floor]
		if !ok {
			bucket = &model.PriceBucket{Floor: floor}
			buckets[floor] = bucket
		}
		bucket.SalesCount++
		bucket.Revenue += sale.Revenue

		// Season is derived from the sale date, never from record metadata.
		season := model.SeasonOf(sale.Date)
		stat, ok := seasons[season]
		if !ok {
			stat = &model.SeasonStat{Season: season}
			seasons[season] = stat
		}
		stat.SalesCount++
		stat.Revenue += sale.Revenue

		prod, ok := products[sale.ProductName]
		if !ok {
			prod = &productAccum{category: sale.Category}
			products[sale.ProductName] = prod
		}
		prod.revenue += sale.Revenue
		prod.quantity += sale.Quantity
	}

	profile.AverageOrderValue = profile.TotalRevenue / float64(profile.TotalSales)

	for name, acc := range categories {
		stat := model.CategoryStat{
			Category:   name,
			Revenue:    acc.revenue,
			SalesCount: acc.count,
		}
		if acc.count > 0 {
			stat.AveragePrice = acc.priceSum / float64(acc.count)
		}
		if profile.TotalRevenue > 0 {
			stat.RevenueShare = acc.revenue / profile.TotalRevenue * 100
		}
		profile.CategoryBreakdown = append(profile.CategoryBreakdown, stat)
	}
	sort.Slice(profile.CategoryBreakdown, func(i, j int) bool {
		return profile.CategoryBreakdown[i].Revenue > profile.CategoryBreakdown[j].Revenue
	})

	for _, bucket := range buckets {
		profile.PriceHistogram = append(profile.PriceHistogram, *bucket)
	}
	sort.Slice(profile.PriceHistogram, func(i, j int) bool {
		return profile.PriceHistogram[i].Floor < profile.PriceHistogram[j].Floor
	})

	for _, season := range []model.Season{model.SeasonSpring, model.SeasonSummer, model.SeasonFall, model.SeasonWinter} {
		if stat, ok := seasons[season]; ok {
			profile.SeasonalPattern = append(profile.SeasonalPattern, *stat)
		}
	}

	for name, acc := range products {
		profile.TopProducts = append(profile.TopProducts, model.ProductStat{
			ProductName: name,
			Category:    acc.category,
			Revenue:     acc.revenue,
			Quantity:    acc.quantity,
		})
	}
	sort.Slice(profile.TopProducts, func(i, j int) bool {
		if profile.TopProducts[i].Revenue != profile.TopProducts[j].Revenue {
			return profile.TopProducts[i].Revenue > profile.TopProducts[j].Revenue
		}
		return profile.TopProducts[i].ProductName < profile.TopProducts[j].ProductName
	})
	if len(profile.TopProducts) > maxTopProducts {
		profile.TopProducts = profile.TopProducts[:maxTopProducts]
	}

	return profile
}

// unitPrice approximates the sold unit price of a record.
func unitPrice(sale model.SaleRecord) float64 {
	if sale.Quantity > 0 {
		return sale.Revenue / float64(sale.Quantity)
	}
	return sale.Revenue
}
