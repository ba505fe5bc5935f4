package service

import "github.com/windoze95/mealhound-api/internal/models"

// Dedupe collapses a combined result list into unique recipes keyed by
// normalized title. The more complete record for each key survives, with
// its gaps filled from the duplicate; ties keep the earlier-seen record.
// Output order is the order each key was first encountered, which makes
// the operation deterministic and idempotent.
func Dedupe(recipes []models.Recipe) []models.Recipe {
	index := make(map[string]int, len(recipes))
	out := make([]models.Recipe, 0, len(recipes))

	for _, r := range recipes {
		if r.NormalizedTitle == "" {
			r.NormalizedTitle = models.NormalizeTitle(r.Title)
		}
		r.ComputeCompleteness()

		i, seen := index[r.NormalizedTitle]
		if !seen {
			index[r.NormalizedTitle] = len(out)
			out = append(out, r)
			continue
		}
		out[i] = merge(out[i], r)
	}

	return out
}

// merge keeps the higher-scoring of two records sharing an identity key and
// fills its missing fields from the other, so merging never loses data the
// duplicate carried. The surviving score is recomputed afterwards and can
// only grow.
func merge(existing, incoming models.Recipe) models.Recipe {
	winner, loser := existing, incoming
	if incoming.CompletenessScore > existing.CompletenessScore {
		winner, loser = incoming, existing
	}

	if winner.Image == "" {
		winner.Image = loser.Image
	}
	if winner.Instructions == "" {
		winner.Instructions = loser.Instructions
	}
	if len(winner.Ingredients) == 0 {
		winner.Ingredients = loser.Ingredients
	}
	if winner.Category == "" {
		winner.Category = loser.Category
	}
	if winner.Cuisine == "" {
		winner.Cuisine = loser.Cuisine
	}
	if winner.ReadyInMinutes == 0 {
		winner.ReadyInMinutes = loser.ReadyInMinutes
	}
	if winner.Servings == 0 {
		winner.Servings = loser.Servings
	}

	winner.ComputeCompleteness()
	return winner
}
