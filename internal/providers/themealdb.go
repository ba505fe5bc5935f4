package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/windoze95/mealhound-api/internal/models"
)

// TheMealDB adapts TheMealDB's free meal database. Search responses embed
// the full meal record, so no per-result detail fetch is needed.
type TheMealDB struct {
	endpoint string
	apiKey   string
	client   *resty.Client
}

// NewTheMealDB creates a TheMealDB adapter. The free tier uses API key "1".
func NewTheMealDB(endpoint, apiKey string, timeout time.Duration) *TheMealDB {
	return &TheMealDB{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   newClient(timeout),
	}
}

// Name returns the adapter's source identifier.
func (p *TheMealDB) Name() models.Source {
	return models.SourceTheMealDB
}

// mealdbResponse is TheMealDB's search payload. Every field is a string or
// null, so a string map covers the whole record including the numbered
// strIngredientN/strMeasureN pairs.
type mealdbResponse struct {
	Meals []map[string]string `json:"meals"`
}

// Search queries TheMealDB by meal name.
func (p *TheMealDB) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	var payload mealdbResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("s", query).
		SetResult(&payload).
		Get(fmt.Sprintf("%s/%s/search.php", p.endpoint, p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("themealdb search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("themealdb returned status %d", resp.StatusCode())
	}

	// meals is null when nothing matches
	if len(payload.Meals) == 0 {
		return nil, nil
	}

	recipes := make([]models.Recipe, 0, len(payload.Meals))
	for _, meal := range payload.Meals {
		title := strings.TrimSpace(meal["strMeal"])
		if title == "" {
			continue
		}

		r := models.Recipe{
			ID:           fmt.Sprintf("themealdb_%s", meal["idMeal"]),
			Title:        title,
			Image:        meal["strMealThumb"],
			Category:     meal["strCategory"],
			Cuisine:      meal["strArea"],
			Instructions: strings.TrimSpace(meal["strInstructions"]),
			Ingredients:  mealdbIngredients(meal),
			Source:       models.SourceTheMealDB,
		}
		r.NormalizedTitle = models.NormalizeTitle(r.Title)
		r.ComputeCompleteness()
		recipes = append(recipes, r)
	}

	return recipes, nil
}

// mealdbIngredients collects the numbered strIngredientN/strMeasureN pairs.
// TheMealDB pads to 20 slots; empty slots are skipped.
func mealdbIngredients(meal map[string]string) []models.Ingredient {
	var ingredients []models.Ingredient
	for i := 1; i <= 20; i++ {
		name := strings.TrimSpace(meal[fmt.Sprintf("strIngredient%d", i)])
		if name == "" {
			continue
		}
		measure := strings.TrimSpace(meal[fmt.Sprintf("strMeasure%d", i)])
		ingredients = append(ingredients, models.Ingredient{
			Name:     name,
			Amount:   measure,
			Original: strings.TrimSpace(measure + " " + name),
		})
	}
	return ingredients
}
