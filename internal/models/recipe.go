package models

import (
	"strings"
	"unicode"
)

// Source identifies the external provider a recipe was fetched from.
type Source string

// Source enum values.
const (
	SourceTheMealDB   Source = "themealdb"
	SourceRecipePuppy Source = "recipepuppy"
	SourceForkify     Source = "forkify"
	SourceSpoonacular Source = "spoonacular"
)

// Ingredient is a single ingredient line in a recipe.
type Ingredient struct {
	Name     string `json:"name"`
	Amount   string `json:"amount,omitempty"`
	Original string `json:"original,omitempty"`
}

// Recipe is the canonical recipe shape produced by every provider adapter.
// NormalizedTitle is the dedup identity key; it is derived, never supplied
// by a provider. Image stays empty until the resolver sets it, or when every
// fallback stage fails.
type Recipe struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	NormalizedTitle   string       `json:"-"`
	Image             string       `json:"image,omitempty"`
	Category          string       `json:"category,omitempty"`
	Cuisine           string       `json:"cuisine,omitempty"`
	Instructions      string       `json:"instructions,omitempty"`
	Ingredients       []Ingredient `json:"ingredients"`
	Source            Source       `json:"source"`
	ReadyInMinutes    int          `json:"cook_time_minutes,omitempty"`
	Servings          int          `json:"servings,omitempty"`
	CompletenessScore int          `json:"completeness_score"`
}

// NormalizeTitle lower-cases a title, strips punctuation and collapses
// whitespace. Two recipes with the same normalized title are treated as
// duplicates, even across providers.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastSpace := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// ComputeCompleteness recalculates and stores the recipe's completeness
// score. Weights: image +3, instructions over 50 chars +5, more than 3
// ingredients +4, positive cook time +2, positive servings +1, category or
// cuisine tag +1.
func (r *Recipe) ComputeCompleteness() int {
	score := 0
	if r.Image != "" {
		score += 3
	}
	if len(r.Instructions) > 50 {
		score += 5
	}
	if len(r.Ingredients) > 3 {
		score += 4
	}
	if r.ReadyInMinutes > 0 {
		score += 2
	}
	if r.Servings > 0 {
		score++
	}
	if r.Category != "" || r.Cuisine != "" {
		score++
	}
	r.CompletenessScore = score
	return score
}
