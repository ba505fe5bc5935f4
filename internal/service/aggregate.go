package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/windoze95/mealhound-api/internal/cache"
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/images"
	"github.com/windoze95/mealhound-api/internal/logger"
	"github.com/windoze95/mealhound-api/internal/models"
	"github.com/windoze95/mealhound-api/internal/providers"
	"go.uber.org/zap"
)

const (
	defaultMaxResults = 10
	maxResultsCap     = 50
)

// AggregatorService runs the full search pipeline: fan out to every enabled
// provider, merge and dedupe the union, rank it, resolve images for the top
// results and memoize the final list per query.
type AggregatorService struct {
	Cfg       *config.Config
	Providers []providers.RecipeProvider
	Resolver  *images.Resolver
	Results   *cache.ResultCache
}

// NewAggregatorService creates a new AggregatorService.
func NewAggregatorService(cfg *config.Config, provs []providers.RecipeProvider, resolver *images.Resolver, results *cache.ResultCache) *AggregatorService {
	return &AggregatorService{
		Cfg:       cfg,
		Providers: provs,
		Resolver:  resolver,
		Results:   results,
	}
}

// SearchRecipes aggregates recipes for a query across all enabled
// providers. Provider outages degrade the result, never the call: when
// every provider fails the result is simply empty. Image resolution runs
// after ranking, so scores are refreshed once images are set but the order
// still reflects the pre-enhancement ranking.
func (s *AggregatorService) SearchRecipes(ctx context.Context, query string, maxResults int) ([]models.Recipe, error) {
	query = strings.TrimSpace(query)
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	if cached, ok := s.Results.Get(query, maxResults); ok {
		logger.Get().Debug("result cache hit", zap.String("query", query))
		return cached, nil
	}

	merged := Dedupe(s.fanOut(ctx, query))
	ranked := Rank(merged, s.Cfg.Sources.TrustRank)

	// Truncate only after ranking; truncating earlier would bias toward
	// whichever provider answered first.
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	s.enhanceImages(ctx, ranked)

	s.Results.Put(query, maxResults, ranked)
	return ranked, nil
}

// fanOut queries every provider concurrently and returns the flattened
// union of successful results in registry order. It waits for all fetches
// to settle: a slow or broken provider is timed out and dropped without
// voiding the others' results.
func (s *AggregatorService) fanOut(ctx context.Context, query string) []models.Recipe {
	timeout := time.Duration(s.Cfg.EnvVars.ProviderTimeoutSecs) * time.Second
	perProvider := make([][]models.Recipe, len(s.Providers))

	var wg sync.WaitGroup
	for i, p := range s.Providers {
		wg.Add(1)
		go func(i int, p providers.RecipeProvider) {
			defer wg.Done()

			pctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			recipes, err := p.Search(pctx, query)
			if err != nil {
				logger.Get().Warn("provider search failed",
					zap.String("provider", string(p.Name())),
					zap.String("query", query),
					zap.Error(err))
				return
			}
			perProvider[i] = recipes
		}(i, p)
	}
	wg.Wait()

	var all []models.Recipe
	for _, recipes := range perProvider {
		all = append(all, recipes...)
	}
	return all
}

// enhanceImages resolves an image for each ranked recipe through a bounded
// worker pool, then refreshes the scores to account for newly set images.
func (s *AggregatorService) enhanceImages(ctx context.Context, recipes []models.Recipe) {
	if s.Resolver == nil {
		return
	}

	workers := s.Cfg.EnvVars.ImageWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range recipes {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			recipes[i].Image = s.Resolver.ResolveImage(ctx, recipes[i], images.SizeMedium)
			recipes[i].ComputeCompleteness()
		}(i)
	}
	wg.Wait()
}
