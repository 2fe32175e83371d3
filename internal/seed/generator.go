// Package seed generates mock reference data for local development. It is
// the boundary collaborator that supplies the engine's inbound collections;
// nothing in the engine depends on it.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

var categories = []string{"Beauty", "Fashion", "Food", "Tech", "Home", "Fitness"}

var platforms = []string{"youtube", "instagram", "tiktok"}

var seasonsByCategory = map[string][]string{
	"Beauty":  {"spring", "summer"},
	"Fashion": {"spring", "fall", "winter"},
	"Food":    {"all"},
	"Tech":    {"all"},
	"Home":    {"winter"},
	"Fitness": {"spring", "summer"},
}

var audienceTags = []string{"10s", "20s-female", "20s-male", "30s-female", "30s-male", "40s"}

// Options controls generation volume. Zero values fall back to defaults.
type Options struct {
	Creators int
	Products int
	Months   int
	Seed     int64
}

// Generator produces mock creators, products, and sale histories.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

// New creates a Generator. A zero seed derives one from the clock.
func New(opts Options) *Generator {
	if opts.Creators <= 0 {
		opts.Creators = 20
	}
	if opts.Products <= 0 {
		opts.Products = 40
	}
	if opts.Months <= 0 {
		opts.Months = 6
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Generator{opts: opts, rng: rand.New(rand.NewSource(opts.Seed))}
}

// Creators generates the configured number of creators with 2-3 category
// affinities each.
func (g *Generator) Creators() []model.Creator {
	n := g.opts.Creators
	creators := make([]model.Creator, 0, n)
	for i := 0; i < n; i++ {
		affinities := g.pickCategories(2 + g.rng.Intn(2))
		creators = append(creators, model.Creator{
			ID:             uuid.NewString(),
			Name:           fmt.Sprintf("creator-%02d", i+1),
			Platform:       platforms[g.rng.Intn(len(platforms))],
			FollowerCount:  int64(10_000 + g.rng.Intn(990_000)),
			EngagementRate: 1 + g.rng.Float64()*7,
			Categories:     affinities,
		})
	}
	return creators
}

// Products generates the configured number of catalog products.
func (g *Generator) Products() []model.Product {
	n := g.opts.Products
	products := make([]model.Product, 0, n)
	for i := 0; i < n; i++ {
		category := categories[g.rng.Intn(len(categories))]
		products = append(products, model.Product{
			ID:             uuid.NewString(),
			Name:           fmt.Sprintf("%s item %02d", category, i+1),
			Category:       category,
			Price:          float64(5_000 + g.rng.Intn(20)*5_000),
			Seasonality:    seasonsByCategory[category],
			TargetAudience: g.pickAudience(1 + g.rng.Intn(2)),
			CommissionRate: 3 + g.rng.Float64()*12,
		})
	}
	return products
}

// Sales generates a sale history for each creator spread over the configured
// number of past months, biased toward the creator's category affinities. It
// also updates the creators' lifetime totals in place.
func (g *Generator) Sales(creators []model.Creator, products []model.Product) []model.SaleRecord {
	byCategory := make(map[string][]model.Product)
	for _, product := range products {
		byCategory[product.Category] = append(byCategory[product.Category], product)
	}

	var sales []model.SaleRecord
	end := time.Now()
	span := time.Duration(g.opts.Months) * 30 * 24 * time.Hour

	for i := range creators {
		creator := &creators[i]
		count := 5 + g.rng.Intn(30)
		for j := 0; j < count; j++ {
			product := g.pickProduct(creator, byCategory, products)
			quantity := int64(1 + g.rng.Intn(20))
			revenue := product.Price * float64(quantity)
			date := end.Add(-time.Duration(g.rng.Float64() * float64(span)))
			clicks := int64(50 + g.rng.Intn(2000))

			sales = append(sales, model.SaleRecord{
				ID:             uuid.NewString(),
				CreatorID:      creator.ID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				Category:       product.Category,
				Date:           date,
				Quantity:       quantity,
				Revenue:        revenue,
				Commission:     revenue * product.CommissionRate / 100,
				ClickCount:     clicks,
				ConversionRate: float64(quantity) / float64(clicks) * 100,
			})

			creator.TotalSales += quantity
			creator.TotalRevenue += revenue
		}
	}

	return sales
}

// pickProduct prefers the creator's affinity categories about 70% of the
// time so histories show a usable category signal.
func (g *Generator) pickProduct(creator *model.Creator, byCategory map[string][]model.Product, all []model.Product) model.Product {
	if len(creator.Categories) > 0 && g.rng.Float64() < 0.7 {
		category := creator.Categories[g.rng.Intn(len(creator.Categories))]
		if pool := byCategory[category]; len(pool) > 0 {
			return pool[g.rng.Intn(len(pool))]
		}
	}
	return all[g.rng.Intn(len(all))]
}

func (g *Generator) pickCategories(n int) []string {
	picked := make([]string, 0, n)
	perm := g.rng.Perm(len(categories))
	for _, idx := range perm[:n] {
		picked = append(picked, categories[idx])
	}
	return picked
}

func (g *Generator) pickAudience(n int) []string {
	picked := make([]string, 0, n)
	perm := g.rng.Perm(len(audienceTags))
	for _, idx := range perm[:n] {
		picked = append(picked, audienceTags[idx])
	}
	return picked
}
