package providers

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/logger"
	"github.com/windoze95/mealhound-api/internal/models"
	"go.uber.org/zap"
)

// RecipeProvider is the contract every source adapter implements: normalize
// one external provider's response into the canonical Recipe shape. A "no
// results" response is (nil, nil); only transport or protocol failures
// return an error.
type RecipeProvider interface {
	Name() models.Source
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

// NewRegistry builds the enabled provider set from the source policy. Paid
// providers are excluded unless ENABLE_PAID_PROVIDERS authorizes them.
func NewRegistry(cfg *config.Config) []RecipeProvider {
	timeout := time.Duration(cfg.EnvVars.ProviderTimeoutSecs) * time.Second

	var provs []RecipeProvider
	for _, name := range cfg.Sources.TrustOrder {
		policy, ok := cfg.Sources.Providers[name]
		if !ok || !policy.Enabled {
			continue
		}
		if policy.Paid && !cfg.EnvVars.EnablePaidProviders {
			logger.Get().Info("paid provider excluded by policy", zap.String("provider", name))
			continue
		}

		switch models.Source(name) {
		case models.SourceTheMealDB:
			provs = append(provs, NewTheMealDB(policy.Endpoint, cfg.EnvVars.TheMealDBKey, timeout))
		case models.SourceRecipePuppy:
			provs = append(provs, NewRecipePuppy(policy.Endpoint, timeout))
		case models.SourceForkify:
			provs = append(provs, NewForkify(policy.Endpoint, cfg.EnvVars.DetailFetchCap, timeout))
		case models.SourceSpoonacular:
			provs = append(provs, NewSpoonacular(policy.Endpoint, cfg.EnvVars.SpoonacularKey, cfg.EnvVars.PaidProviderRPS, timeout))
		default:
			logger.Get().Warn("unknown provider in source policy", zap.String("provider", name))
		}
	}

	return provs
}

// newClient builds the outbound HTTP client shared by all adapters.
func newClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(1).
		SetRetryWaitTime(200 * time.Millisecond)
}
