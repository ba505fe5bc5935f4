package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/windoze95/mealhound-api/internal/logger"
	"github.com/windoze95/mealhound-api/internal/models"
	"go.uber.org/zap"
)

// Forkify adapts the Forkify API. Search only returns title, publisher and
// image, so the adapter issues a per-result detail fetch for ingredients,
// servings and cooking time. Detail fetches are capped so one user query
// cannot fan out into an unbounded number of upstream calls; results past
// the cap are kept shallow.
type Forkify struct {
	endpoint  string
	detailCap int
	client    *resty.Client
}

// NewForkify creates a Forkify adapter.
func NewForkify(endpoint string, detailCap int, timeout time.Duration) *Forkify {
	return &Forkify{
		endpoint:  endpoint,
		detailCap: detailCap,
		client:    newClient(timeout),
	}
}

// Name returns the adapter's source identifier.
func (p *Forkify) Name() models.Source {
	return models.SourceForkify
}

type forkifySearchResponse struct {
	Data struct {
		Recipes []forkifyListItem `json:"recipes"`
	} `json:"data"`
}

type forkifyListItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type forkifyDetailResponse struct {
	Data struct {
		Recipe forkifyRecipe `json:"recipe"`
	} `json:"data"`
}

type forkifyRecipe struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	ImageURL    string              `json:"image_url"`
	Servings    int                 `json:"servings"`
	CookingTime int                 `json:"cooking_time"`
	Ingredients []forkifyIngredient `json:"ingredients"`
}

type forkifyIngredient struct {
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// Search queries Forkify and enriches the first detailCap results with
// their detail records.
func (p *Forkify) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	var payload forkifySearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("search", query).
		SetResult(&payload).
		Get(p.endpoint + "/recipes")
	if err != nil {
		return nil, fmt.Errorf("forkify search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("forkify returned status %d", resp.StatusCode())
	}

	items := payload.Data.Recipes
	recipes := make([]models.Recipe, 0, len(items))
	for i, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		r := models.Recipe{
			ID:     fmt.Sprintf("forkify_%s", item.ID),
			Title:  title,
			Image:  item.ImageURL,
			Source: models.SourceForkify,
		}

		if i < p.detailCap {
			if detail, err := p.fetchDetail(ctx, item.ID); err != nil {
				// a failed detail fetch leaves the shallow result intact
				logger.Get().Warn("forkify detail fetch failed",
					zap.String("recipe_id", item.ID), zap.Error(err))
			} else {
				r.Servings = detail.Servings
				r.ReadyInMinutes = detail.CookingTime
				r.Ingredients = forkifyIngredients(detail.Ingredients)
			}
		}

		r.NormalizedTitle = models.NormalizeTitle(r.Title)
		r.ComputeCompleteness()
		recipes = append(recipes, r)
	}

	return recipes, nil
}

func (p *Forkify) fetchDetail(ctx context.Context, id string) (*forkifyRecipe, error) {
	var payload forkifyDetailResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("%s/recipes/%s", p.endpoint, id))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}
	return &payload.Data.Recipe, nil
}

func forkifyIngredients(raw []forkifyIngredient) []models.Ingredient {
	ingredients := make([]models.Ingredient, 0, len(raw))
	for _, ing := range raw {
		name := strings.TrimSpace(ing.Description)
		if name == "" {
			continue
		}

		amount := ""
		if ing.Quantity > 0 {
			amount = strings.TrimSpace(fmt.Sprintf("%g %s", ing.Quantity, ing.Unit))
		}
		original := name
		if amount != "" {
			original = amount + " " + name
		}

		ingredients = append(ingredients, models.Ingredient{
			Name:     name,
			Amount:   amount,
			Original: original,
		})
	}
	return ingredients
}
