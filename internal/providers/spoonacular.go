package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/windoze95/mealhound-api/internal/models"
	"golang.org/x/time/rate"
)

// Spoonacular adapts the Spoonacular complexSearch API. It is a metered,
// paid provider: the registry only includes it when the cost-control gate
// authorizes paid providers, and outbound calls go through a rate limiter
// so a burst of user queries cannot burn through the daily quota.
type Spoonacular struct {
	endpoint string
	apiKey   string
	limiter  *rate.Limiter
	client   *resty.Client
}

// NewSpoonacular creates a Spoonacular adapter throttled to rps requests
// per second.
func NewSpoonacular(endpoint, apiKey string, rps int, timeout time.Duration) *Spoonacular {
	if rps <= 0 {
		rps = 1
	}
	return &Spoonacular{
		endpoint: endpoint,
		apiKey:   apiKey,
		limiter:  rate.NewLimiter(rate.Limit(rps), rps),
		client:   newClient(timeout),
	}
}

// Name returns the adapter's source identifier.
func (p *Spoonacular) Name() models.Source {
	return models.SourceSpoonacular
}

type spoonacularResponse struct {
	Results []spoonacularResult `json:"results"`
}

type spoonacularResult struct {
	ID             int                     `json:"id"`
	Title          string                  `json:"title"`
	Image          string                  `json:"image"`
	ReadyInMinutes int                     `json:"readyInMinutes"`
	Servings       int                     `json:"servings"`
	Instructions   string                  `json:"instructions"`
	Cuisines       []string                `json:"cuisines"`
	DishTypes      []string                `json:"dishTypes"`
	Ingredients    []spoonacularIngredient `json:"extendedIngredients"`
}

type spoonacularIngredient struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
}

// Search queries Spoonacular with full recipe information in one call.
func (p *Spoonacular) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("spoonacular rate limit wait: %w", err)
	}

	var payload spoonacularResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":                query,
			"apiKey":               p.apiKey,
			"number":               "10",
			"addRecipeInformation": "true",
			"fillIngredients":      "true",
		}).
		SetResult(&payload).
		Get(p.endpoint + "/recipes/complexSearch")
	if err != nil {
		return nil, fmt.Errorf("spoonacular search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("spoonacular returned status %d", resp.StatusCode())
	}

	recipes := make([]models.Recipe, 0, len(payload.Results))
	for _, item := range payload.Results {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		r := models.Recipe{
			ID:             fmt.Sprintf("spoonacular_%d", item.ID),
			Title:          title,
			Image:          item.Image,
			Instructions:   strings.TrimSpace(item.Instructions),
			Ingredients:    spoonacularIngredients(item.Ingredients),
			Source:         models.SourceSpoonacular,
			ReadyInMinutes: item.ReadyInMinutes,
			Servings:       item.Servings,
		}
		if len(item.Cuisines) > 0 {
			r.Cuisine = item.Cuisines[0]
		}
		if len(item.DishTypes) > 0 {
			r.Category = item.DishTypes[0]
		}
		r.NormalizedTitle = models.NormalizeTitle(r.Title)
		r.ComputeCompleteness()
		recipes = append(recipes, r)
	}

	return recipes, nil
}

func spoonacularIngredients(raw []spoonacularIngredient) []models.Ingredient {
	ingredients := make([]models.Ingredient, 0, len(raw))
	for _, ing := range raw {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}

		amount := ""
		if ing.Amount > 0 {
			amount = strings.TrimSpace(fmt.Sprintf("%g %s", ing.Amount, ing.Unit))
		}

		ingredients = append(ingredients, models.Ingredient{
			Name:     name,
			Amount:   amount,
			Original: strings.TrimSpace(ing.Original),
		})
	}
	return ingredients
}
