package images

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/windoze95/mealhound-api/internal/cache"
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/models"
)

// countingValidator records candidates and answers from a scripted accept
// function. Defined locally to avoid an import cycle with testutil.
type countingValidator struct {
	mu     sync.Mutex
	seen   []string
	accept func(url string) bool
}

func (v *countingValidator) Validate(_ context.Context, url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seen = append(v.seen, url)
	if v.accept != nil {
		return v.accept(url)
	}
	return true
}

func (v *countingValidator) calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}

func testSources() *config.Sources {
	return &config.Sources{
		TrustOrder: []string{"themealdb", "spoonacular", "forkify", "recipepuppy"},
		Curated:    []string{"themealdb"},
		KeywordLookup: config.KeywordLookup{
			Endpoint: "https://images.example.com/lookup",
		},
		FallbackImages: []string{
			"https://images.example.com/fallback-1.jpg",
			"https://images.example.com/fallback-2.jpg",
		},
	}
}

func newTestResolver(v Validator) *Resolver {
	return NewResolver(testSources(), cache.NewImageCache(), v)
}

func mealdbRecipe() models.Recipe {
	return models.Recipe{
		ID:     "themealdb_52772",
		Title:  "Teriyaki Chicken Casserole",
		Image:  "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
		Source: models.SourceTheMealDB,
	}
}

func TestResolveImage_NativeFirst(t *testing.T) {
	v := &countingValidator{}
	r := newTestResolver(v)

	got := r.ResolveImage(context.Background(), mealdbRecipe(), SizeMedium)
	want := "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg/medium"
	if got != want {
		t.Errorf("ResolveImage = %q, want size-normalized native URL %q", got, want)
	}
	if v.calls() != 1 {
		t.Errorf("validator calls = %d, want 1 (chain stops at first success)", v.calls())
	}
}

func TestResolveImage_CuratedAfterNativeRejected(t *testing.T) {
	// Reject the size-normalized variant; the curated full-size original
	// must be the next candidate.
	v := &countingValidator{accept: func(url string) bool {
		return !strings.HasSuffix(url, "/medium")
	}}
	r := newTestResolver(v)

	got := r.ResolveImage(context.Background(), mealdbRecipe(), SizeMedium)
	want := "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg"
	if got != want {
		t.Errorf("ResolveImage = %q, want curated full-size URL %q", got, want)
	}
}

func TestResolveImage_KeywordLookupForImagelessRecipe(t *testing.T) {
	v := &countingValidator{}
	r := newTestResolver(v)

	recipe := models.Recipe{
		ID:     "recipepuppy_1",
		Title:  "Easy Quick Homemade Best Pasta",
		Source: models.SourceRecipePuppy,
	}

	got := r.ResolveImage(context.Background(), recipe, SizeMedium)
	if !strings.HasPrefix(got, "https://images.example.com/lookup/?") {
		t.Fatalf("ResolveImage = %q, want a keyword lookup URL", got)
	}
	if strings.Contains(got, "easy") || strings.Contains(got, "quick") {
		t.Errorf("keyword URL %q contains marketing words", got)
	}
	if !strings.Contains(got, "pasta") {
		t.Errorf("keyword URL %q misses the significant word 'pasta'", got)
	}
}

func TestResolveImage_FallbackPoolLast(t *testing.T) {
	// Reject everything except the fixed pool.
	v := &countingValidator{accept: func(url string) bool {
		return strings.Contains(url, "fallback-")
	}}
	r := newTestResolver(v)

	got := r.ResolveImage(context.Background(), mealdbRecipe(), SizeMedium)
	if !strings.Contains(got, "fallback-") {
		t.Errorf("ResolveImage = %q, want a pool fallback URL", got)
	}

	// The pick is pseudo-random but stable per recipe.
	r2 := newTestResolver(&countingValidator{accept: func(url string) bool {
		return strings.Contains(url, "fallback-")
	}})
	if again := r2.ResolveImage(context.Background(), mealdbRecipe(), SizeMedium); again != got {
		t.Errorf("fallback pick not stable: %q vs %q", got, again)
	}
}

func TestResolveImage_TotalFailureYieldsEmptyAndIsCached(t *testing.T) {
	v := &countingValidator{accept: func(string) bool { return false }}
	r := newTestResolver(v)

	recipe := mealdbRecipe()
	if got := r.ResolveImage(context.Background(), recipe, SizeMedium); got != "" {
		t.Fatalf("ResolveImage = %q, want empty on total failure", got)
	}
	callsAfterFirst := v.calls()

	// The failure must be cached: no stage may run again.
	if got := r.ResolveImage(context.Background(), recipe, SizeMedium); got != "" {
		t.Fatalf("second ResolveImage = %q, want cached empty", got)
	}
	if v.calls() != callsAfterFirst {
		t.Errorf("validator calls grew from %d to %d on a cached failure", callsAfterFirst, v.calls())
	}
}

func TestResolveImage_CacheHitSkipsValidation(t *testing.T) {
	v := &countingValidator{}
	r := newTestResolver(v)

	recipe := mealdbRecipe()
	first := r.ResolveImage(context.Background(), recipe, SizeSmall)
	second := r.ResolveImage(context.Background(), recipe, SizeSmall)
	if first != second {
		t.Errorf("cached resolution differs: %q vs %q", first, second)
	}
	if v.calls() != 1 {
		t.Errorf("validator calls = %d, want 1", v.calls())
	}
}

func TestResolveImage_SizesCachedIndependently(t *testing.T) {
	v := &countingValidator{}
	r := newTestResolver(v)

	recipe := mealdbRecipe()
	small := r.ResolveImage(context.Background(), recipe, SizeSmall)
	large := r.ResolveImage(context.Background(), recipe, SizeLarge)
	if small == large {
		t.Errorf("small and large resolved to the same URL: %q", small)
	}
}

func TestResolveImage_ConcurrentCallsCollapse(t *testing.T) {
	v := &countingValidator{}
	r := newTestResolver(v)
	recipe := mealdbRecipe()

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.ResolveImage(context.Background(), recipe, SizeMedium)
		}(i)
	}
	wg.Wait()

	for i := 1; i < 16; i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent results diverge: %q vs %q", results[0], results[i])
		}
	}
	if v.calls() != 1 {
		t.Errorf("validator calls = %d, want 1 (duplicate work collapsed)", v.calls())
	}
}
