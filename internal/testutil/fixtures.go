package testutil

import (
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/models"
)

// TestSources creates a source policy matching configs/sources.yaml closely
// enough for pipeline tests.
func TestSources() *config.Sources {
	return &config.Sources{
		TrustOrder: []string{"themealdb", "spoonacular", "forkify", "recipepuppy"},
		Curated:    []string{"themealdb"},
		Providers: map[string]config.ProviderPolicy{
			"themealdb":   {Enabled: true, Endpoint: "https://www.themealdb.com/api/json/v1"},
			"recipepuppy": {Enabled: true, Endpoint: "http://www.recipepuppy.com/api"},
			"forkify":     {Enabled: true, Endpoint: "https://forkify-api.herokuapp.com/api/v2"},
			"spoonacular": {Enabled: true, Paid: true, Endpoint: "https://api.spoonacular.com"},
		},
		KeywordLookup: config.KeywordLookup{
			Endpoint: "https://source.unsplash.com/480x360",
		},
		FallbackImages: []string{
			"https://images.example.com/fallback-1.jpg",
			"https://images.example.com/fallback-2.jpg",
			"https://images.example.com/fallback-3.jpg",
		},
	}
}

// TestConfig creates a config with the test source policy and sane limits.
func TestConfig() *config.Config {
	return &config.Config{
		EnvVars: config.EnvVars{
			Port:                "8080",
			TheMealDBKey:        "1",
			ProviderTimeoutSecs: 2,
			DetailFetchCap:      10,
			ResultCacheSize:     16,
			ImageWorkers:        2,
			SearchRateLimitRPS:  100,
			PaidProviderRPS:     1,
		},
		Sources: TestSources(),
	}
}

// TestRecipe creates a complete canonical recipe.
func TestRecipe() models.Recipe {
	r := models.Recipe{
		ID:    "themealdb_52772",
		Title: "Teriyaki Chicken Casserole",
		Image: "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
		Ingredients: []models.Ingredient{
			{Name: "soy sauce", Amount: "3/4 cup", Original: "3/4 cup soy sauce"},
			{Name: "water", Amount: "1/2 cup", Original: "1/2 cup water"},
			{Name: "brown sugar", Amount: "1/4 cup", Original: "1/4 cup brown sugar"},
			{Name: "chicken breasts", Amount: "2", Original: "2 chicken breasts"},
			{Name: "stir fry vegetables", Amount: "1 bag", Original: "1 bag stir fry vegetables"},
		},
		Instructions:   "Preheat oven to 350 degrees. Combine soy sauce, water and brown sugar in a saucepan and simmer until thickened. Pour over chicken and bake for an hour.",
		Category:       "Chicken",
		Cuisine:        "Japanese",
		Source:         models.SourceTheMealDB,
		ReadyInMinutes: 75,
		Servings:       4,
	}
	r.NormalizedTitle = models.NormalizeTitle(r.Title)
	r.ComputeCompleteness()
	return r
}

// ShallowRecipe creates a sparse recipe the way thin providers return them:
// title and link only, no instructions, times or classification.
func ShallowRecipe(id, title string) models.Recipe {
	r := models.Recipe{
		ID:     id,
		Title:  title,
		Source: models.SourceRecipePuppy,
	}
	r.NormalizedTitle = models.NormalizeTitle(r.Title)
	r.ComputeCompleteness()
	return r
}
