package service

import (
	"sort"

	"github.com/windoze95/mealhound-api/internal/models"
)

// Rank orders recipes by completeness score descending, breaking ties with
// the source trust order (lower rank is more trusted). The sort is stable,
// so records equal on both keys keep their relative input order. The input
// slice is not modified.
func Rank(recipes []models.Recipe, trustRank func(models.Source) int) []models.Recipe {
	out := make([]models.Recipe, len(recipes))
	copy(out, recipes)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletenessScore != out[j].CompletenessScore {
			return out[i].CompletenessScore > out[j].CompletenessScore
		}
		return trustRank(out[i].Source) < trustRank(out[j].Source)
	})

	return out
}
