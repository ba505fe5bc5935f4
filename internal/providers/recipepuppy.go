package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/windoze95/mealhound-api/internal/models"
)

// RecipePuppy adapts the Recipe Puppy ingredient search API. Results are
// shallow: title, link, a comma-separated ingredient string and sometimes a
// thumbnail. No instructions, times or servings are available.
type RecipePuppy struct {
	endpoint string
	client   *resty.Client
}

// NewRecipePuppy creates a Recipe Puppy adapter.
func NewRecipePuppy(endpoint string, timeout time.Duration) *RecipePuppy {
	return &RecipePuppy{
		endpoint: endpoint,
		client:   newClient(timeout),
	}
}

// Name returns the adapter's source identifier.
func (p *RecipePuppy) Name() models.Source {
	return models.SourceRecipePuppy
}

type recipePuppyResponse struct {
	Results []recipePuppyResult `json:"results"`
}

type recipePuppyResult struct {
	Title       string `json:"title"`
	Href        string `json:"href"`
	Ingredients string `json:"ingredients"`
	Thumbnail   string `json:"thumbnail"`
}

// Search queries Recipe Puppy with the free-text query.
func (p *RecipePuppy) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	var payload recipePuppyResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&payload).
		Get(p.endpoint + "/")
	if err != nil {
		return nil, fmt.Errorf("recipepuppy search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recipepuppy returned status %d", resp.StatusCode())
	}

	recipes := make([]models.Recipe, 0, len(payload.Results))
	for _, item := range payload.Results {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		ingredients := splitIngredientList(item.Ingredients)
		r := models.Recipe{
			ID:          fmt.Sprintf("recipepuppy_%x", hashString(item.Href+title)),
			Title:       title,
			Image:       item.Thumbnail,
			Ingredients: ingredients,
			Source:      models.SourceRecipePuppy,
			// Recipe Puppy never reports a time; estimate from the
			// ingredient count so these results still rank sensibly.
			ReadyInMinutes: estimateCookTime(len(ingredients)),
		}
		r.NormalizedTitle = models.NormalizeTitle(r.Title)
		r.ComputeCompleteness()
		recipes = append(recipes, r)
	}

	return recipes, nil
}

// splitIngredientList splits Recipe Puppy's comma-separated ingredient
// string into canonical ingredients.
func splitIngredientList(s string) []models.Ingredient {
	var ingredients []models.Ingredient
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:     name,
			Original: name,
		})
	}
	return ingredients
}

// estimateCookTime guesses a prep time from ingredient count, capped at an
// hour.
func estimateCookTime(ingredientCount int) int {
	if ingredientCount == 0 {
		return 0
	}
	minutes := 10 + 5*ingredientCount
	if minutes > 60 {
		minutes = 60
	}
	return minutes
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
