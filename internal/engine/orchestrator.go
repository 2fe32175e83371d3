package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/aggregate"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cache"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/fallback"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/llm"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/prompt"
)

// MinAnalysisSales is the record floor for analysis and single-creator
// matching. Catalog-wide creator matching uses fallback.MinSaleRecords per
// candidate instead.
const MinAnalysisSales = 5

// DefaultLimit bounds result lists when the caller passes no limit.
const DefaultLimit = 10

// Orchestrator runs the two public operations over injected collaborators.
type Orchestrator struct {
	gateway ReasoningGateway
	cache   *cache.ResultCache
	scorer  *fallback.Scorer
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Orchestrator. The cache is owned by the caller so tests and
// hosts control its lifecycle.
func New(gateway ReasoningGateway, resultCache *cache.ResultCache, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if resultCache == nil {
		resultCache = cache.New(0)
	}

	now := time.Now
	return &Orchestrator{
		gateway: gateway,
		cache:   resultCache,
		scorer:  fallback.NewScorerAt(now),
		logger:  logger,
		now:     now,
	}
}

// WithClock fixes the orchestrator's clock. Used by tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	o.scorer = fallback.NewScorerAt(now)
	return o
}

// AnalyzeCreator produces the qualitative insight for one creator. Requires
// at least MinAnalysisSales records. Reasoning failures propagate: there is
// no deterministic fallback for free-text analysis.
func (o *Orchestrator) AnalyzeCreator(ctx context.Context, creator model.Creator, sales []model.SaleRecord) (*model.CreatorInsight, error) {
	if len(sales) < MinAnalysisSales {
		return nil, common.NewInsufficientDataError(creator.ID, MinAnalysisSales, len(sales))
	}

	key := cache.AnalyzeKey(creator.ID)
	if cached, ok := o.cache.Get(key); ok {
		if insight, ok := cached.(*model.CreatorInsight); ok {
			o.logger.Debug("insight cache hit", "creator_id", creator.ID)
			return insight, nil
		}
	}

	profile := aggregate.Profile(creator, sales)
	pair := prompt.Insight(creator, profile)

	payload, err := o.gateway.Insight(ctx, pair.System, pair.User)
	if err != nil {
		return nil, fmt.Errorf("creator analysis failed: %w", err)
	}

	insight := &model.CreatorInsight{
		CreatorID:       creator.ID,
		Summary:         payload.Summary,
		Strengths:       payload.Strengths,
		TopCategories:   payload.TopCategories,
		PriceRange:      payload.PriceRange,
		SeasonalTrends:  payload.SeasonalTrends,
		Recommendations: payload.Recommendations,
		Confidence:      payload.Confidence,
		GeneratedAt:     o.now(),
	}

	o.cache.Set(key, insight)

	o.logger.Info("creator analyzed",
		"creator_id", creator.ID,
		"confidence", insight.Confidence,
		"sale_count", len(sales))

	return insight, nil
}

// MatchProducts ranks catalog products for one creator. Requires at least
// MinAnalysisSales records and a non-empty catalog. When reasoning exhausts
// its retries the heuristic scorer substitutes instead of raising.
func (o *Orchestrator) MatchProducts(ctx context.Context, creator model.Creator, sales []model.SaleRecord, catalog []model.Product, limit int) ([]model.ProductMatch, error) {
	if len(sales) < MinAnalysisSales {
		return nil, common.NewInsufficientDataError(creator.ID, MinAnalysisSales, len(sales))
	}
	if len(catalog) == 0 {
		return nil, common.ErrEmptyCatalog
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := cache.MatchKey(creator.ID, limit)
	if cached, ok := o.cache.Get(key); ok {
		if matches, ok := cached.([]model.ProductMatch); ok {
			o.logger.Debug("product match cache hit", "creator_id", creator.ID, "limit", limit)
			return matches, nil
		}
	}

	profile := aggregate.Profile(creator, sales)
	season := model.SeasonOf(o.now())
	pair := prompt.MatchProducts(creator, profile, catalog, season)

	var matches []model.ProductMatch
	payload, err := o.gateway.Matches(ctx, pair.System, pair.User)
	if err != nil {
		o.logger.Warn("reasoning unavailable, using heuristic product scoring",
			"creator_id", creator.ID,
			"error", err)
		matches = o.fallbackProducts(creator, profile, catalog)
	} else {
		matches = o.mapProductMatches(payload, catalog)
	}

	sortProductMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	o.cache.Set(key, matches)

	o.logger.Info("products matched",
		"creator_id", creator.ID,
		"match_count", len(matches),
		"limit", limit)

	return matches, nil
}

// MatchCreators ranks candidate creators for one product. Candidates with
// fewer than fallback.MinSaleRecords records are skipped silently rather
// than failing the whole call.
func (o *Orchestrator) MatchCreators(ctx context.Context, product model.Product, candidates []CreatorSales, limit int) ([]model.CreatorMatch, error) {
	if len(candidates) == 0 {
		return nil, common.ErrEmptyCatalog
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := cache.MatchKey(product.ID, limit)
	if cached, ok := o.cache.Get(key); ok {
		if matches, ok := cached.([]model.CreatorMatch); ok {
			o.logger.Debug("creator match cache hit", "product_id", product.ID, "limit", limit)
			return matches, nil
		}
	}

	eligible := make([]prompt.CandidateCreator, 0, len(candidates))
	for _, candidate := range candidates {
		if len(candidate.Sales) < fallback.MinSaleRecords {
			o.logger.Debug("skipping creator with thin history",
				"creator_id", candidate.Creator.ID,
				"sale_count", len(candidate.Sales))
			continue
		}
		eligible = append(eligible, prompt.CandidateCreator{
			Creator: candidate.Creator,
			Profile: aggregate.Profile(candidate.Creator, candidate.Sales),
		})
	}
	if len(eligible) == 0 {
		// Ineligible candidates are skipped, never an error; with nothing
		// left there is simply nothing to rank.
		o.logger.Info("no creators with sufficient history", "product_id", product.ID)
		return []model.CreatorMatch{}, nil
	}

	season := model.SeasonOf(o.now())
	pair := prompt.MatchCreators(product, eligible, season)

	var matches []model.CreatorMatch
	payload, err := o.gateway.Matches(ctx, pair.System, pair.User)
	if err != nil {
		o.logger.Warn("reasoning unavailable, using heuristic creator scoring",
			"product_id", product.ID,
			"error", err)
		matches = o.fallbackCreators(product, eligible)
	} else {
		matches = o.mapCreatorMatches(payload, eligible)
	}

	sortCreatorMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	o.cache.Set(key, matches)

	o.logger.Info("creators matched",
		"product_id", product.ID,
		"match_count", len(matches),
		"limit", limit)

	return matches, nil
}

// InvalidateCreatorCache purges every cached result for a creator. Called
// when new sale data lands.
func (o *Orchestrator) InvalidateCreatorCache(creatorID string) {
	removed := o.cache.InvalidateCreator(creatorID)
	if removed > 0 {
		o.logger.Debug("invalidated cached results", "creator_id", creatorID, "removed", removed)
	}
}

// mapProductMatches converts a validated payload to domain matches, dropping
// any candidate id the catalog does not contain.
func (o *Orchestrator) mapProductMatches(payload *llm.MatchPayload, catalog []model.Product) []model.ProductMatch {
	products := make(map[string]model.Product, len(catalog))
	for _, product := range catalog {
		products[product.ID] = product
	}

	matches := make([]model.ProductMatch, 0, len(payload.Matches))
	for _, candidate := range payload.Matches {
		product, ok := products[candidate.EntityID()]
		if !ok {
			o.logger.Warn("dropping match with unknown product id", "product_id", candidate.EntityID())
			continue
		}
		matches = append(matches, model.ProductMatch{
			Product:          product,
			MatchScore:       candidate.MatchScore,
			ScoreBreakdown:   candidate.ScoreBreakdown,
			PredictedRevenue: mapPrediction(candidate.PredictedRevenue),
			Reasoning:        candidate.Reasoning,
			Confidence:       candidate.MatchScore / 100,
		})
	}
	return matches
}

// mapCreatorMatches converts a validated payload to domain matches, dropping
// any candidate id not among the supplied creators.
func (o *Orchestrator) mapCreatorMatches(payload *llm.MatchPayload, eligible []prompt.CandidateCreator) []model.CreatorMatch {
	creators := make(map[string]model.Creator, len(eligible))
	for _, candidate := range eligible {
		creators[candidate.Creator.ID] = candidate.Creator
	}

	matches := make([]model.CreatorMatch, 0, len(payload.Matches))
	for _, candidate := range payload.Matches {
		creator, ok := creators[candidate.EntityID()]
		if !ok {
			o.logger.Warn("dropping match with unknown creator id", "creator_id", candidate.EntityID())
			continue
		}
		matches = append(matches, model.CreatorMatch{
			Creator:          creator,
			MatchScore:       candidate.MatchScore,
			ScoreBreakdown:   candidate.ScoreBreakdown,
			PredictedRevenue: mapPrediction(candidate.PredictedRevenue),
			Reasoning:        candidate.Reasoning,
			Confidence:       candidate.MatchScore / 100,
		})
	}
	return matches
}

func (o *Orchestrator) fallbackProducts(creator model.Creator, profile model.AggregatedProfile, catalog []model.Product) []model.ProductMatch {
	matches := make([]model.ProductMatch, 0, len(catalog))
	for _, product := range catalog {
		if match, ok := o.scorer.ScoreProduct(creator, profile, product); ok {
			matches = append(matches, match)
		}
	}
	return matches
}

func (o *Orchestrator) fallbackCreators(product model.Product, eligible []prompt.CandidateCreator) []model.CreatorMatch {
	matches := make([]model.CreatorMatch, 0, len(eligible))
	for _, candidate := range eligible {
		if match, ok := o.scorer.ScoreCreator(product, candidate.Creator, candidate.Profile); ok {
			matches = append(matches, match)
		}
	}
	return matches
}

func mapPrediction(rev llm.PredictedRevenue) model.RevenuePrediction {
	return model.RevenuePrediction{
		Min:                 rev.Min,
		Max:                 rev.Max,
		Expected:            rev.Average,
		PredictedQuantity:   rev.PredictedQuantity,
		PredictedCommission: rev.PredictedCommission,
		Basis:               "AI reasoning over aggregated sale history",
	}
}

func sortProductMatches(matches []model.ProductMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
}

func sortCreatorMatches(matches []model.CreatorMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
}
