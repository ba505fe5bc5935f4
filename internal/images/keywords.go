package images

import "strings"

// marketingWords are adjectives that describe the recipe's pitch, not its
// food. They would poison a keyword image lookup ("easy quick" instead of
// "pasta").
var marketingWords = map[string]struct{}{
	"easy":      {},
	"quick":     {},
	"homemade":  {},
	"best":      {},
	"delicious": {},
	"simple":    {},
	"perfect":   {},
	"ultimate":  {},
	"favorite":  {},
	"amazing":   {},
	"healthy":   {},
	"recipe":    {},
	"recipes":   {},
	"the":       {},
	"a":         {},
	"an":        {},
	"and":       {},
	"with":      {},
	"for":       {},
	"my":        {},
}

// ExtractKeywords reduces a recipe title to at most its first two
// significant food words, lower-cased. Marketing words and filler are
// stripped first.
func ExtractKeywords(title string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.Trim(word, ".,!?:;'\"()-")
		if word == "" {
			continue
		}
		if _, skip := marketingWords[word]; skip {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == 2 {
			break
		}
	}
	return keywords
}
