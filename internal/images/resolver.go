package images

import (
	"context"
	"hash/fnv"
	"strings"
	"time"

	"github.com/windoze95/mealhound-api/internal/cache"
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/logger"
	"github.com/windoze95/mealhound-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Size names accepted by the resolver.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Resolver resolves a displayable image URL for a recipe through an ordered
// fallback chain. Outcomes (including failures) are cached per
// (recipe, size) key, and concurrent resolutions for the same key are
// collapsed into a single chain walk.
type Resolver struct {
	sources   *config.Sources
	cache     *cache.ImageCache
	validator Validator
	group     singleflight.Group
}

// stage is one step of the fallback chain. It returns a candidate URL or
// an empty string when the stage does not apply to this recipe.
type stage struct {
	name string
	pick func(recipe models.Recipe, size string) string
}

// NewResolver creates a Resolver backed by the given cache and validator.
func NewResolver(sources *config.Sources, imageCache *cache.ImageCache, validator Validator) *Resolver {
	return &Resolver{
		sources:   sources,
		cache:     imageCache,
		validator: validator,
	}
}

// ResolveImage returns a validated image URL for the recipe, or an empty
// string when every fallback stage fails. Total failure is not an error;
// it is cached so the chain is not retried for this key.
func (r *Resolver) ResolveImage(ctx context.Context, recipe models.Recipe, size string) string {
	if size == "" {
		size = SizeMedium
	}
	key := recipe.ID + "|" + size

	if url, ok := r.cache.Get(key); ok {
		return url
	}

	// Concurrent callers for the same key wait on one chain walk; the
	// cache re-check covers the window between Get and Do.
	v, _, _ := r.group.Do(key, func() (interface{}, error) {
		if url, ok := r.cache.Get(key); ok {
			return url, nil
		}
		url := r.walkChain(ctx, recipe, size)
		r.cache.Put(key, url)
		return url, nil
	})

	return v.(string)
}

// walkChain tries each stage strictly in order and returns the first
// candidate that passes validation.
func (r *Resolver) walkChain(ctx context.Context, recipe models.Recipe, size string) string {
	stages := []stage{
		{name: "native", pick: r.pickNative},
		{name: "curated", pick: r.pickCurated},
		{name: "keyword", pick: r.pickKeyword},
		{name: "fallback", pick: r.pickFallback},
	}

	for _, st := range stages {
		candidate := st.pick(recipe, size)
		if candidate == "" {
			continue
		}
		if r.validator.Validate(ctx, candidate) {
			return candidate
		}
		logger.Get().Debug("image candidate rejected",
			zap.String("stage", st.name),
			zap.String("recipe_id", recipe.ID),
			zap.String("candidate", candidate))
	}

	logger.Get().Debug("image resolution exhausted all stages",
		zap.String("recipe_id", recipe.ID))
	return ""
}

// pickNative returns the provider-embedded image URL, size-normalized when
// the provider's URL scheme supports it.
func (r *Resolver) pickNative(recipe models.Recipe, size string) string {
	if recipe.Image == "" {
		return ""
	}
	return normalizeImageSize(recipe.Image, size)
}

// pickCurated returns the full-size original image for sources known to
// always ship reliable images, in case the size-normalized variant failed.
func (r *Resolver) pickCurated(recipe models.Recipe, _ string) string {
	if recipe.Image == "" || !r.sources.IsCurated(recipe.Source) {
		return ""
	}
	return stripSizeSuffix(recipe.Image)
}

// pickKeyword builds a keyword lookup URL from the recipe title's first two
// significant food words.
func (r *Resolver) pickKeyword(recipe models.Recipe, _ string) string {
	keywords := ExtractKeywords(recipe.Title)
	if len(keywords) == 0 || r.sources.KeywordLookup.Endpoint == "" {
		return ""
	}
	return r.sources.KeywordLookup.Endpoint + "/?" + strings.Join(append(keywords, "food"), ",")
}

// pickFallback picks a generic food image from the fixed pool,
// pseudo-randomly but stable per recipe.
func (r *Resolver) pickFallback(recipe models.Recipe, _ string) string {
	pool := r.sources.FallbackImages
	if len(pool) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipe.ID))
	return pool[h.Sum32()%uint32(len(pool))]
}

// sizeSuffixes are the path suffixes TheMealDB's image CDN understands.
var sizeSuffixes = []string{"/small", "/medium", "/large", "/preview"}

// normalizeImageSize rewrites a provider image URL to the requested size
// where the URL scheme supports it (currently TheMealDB's CDN). Other URLs
// pass through unchanged.
func normalizeImageSize(url, size string) string {
	if !strings.Contains(url, "themealdb.com") {
		return url
	}
	base := stripSizeSuffix(url)
	switch size {
	case SizeSmall:
		return base + "/small"
	case SizeMedium:
		return base + "/medium"
	default:
		return base
	}
}

func stripSizeSuffix(url string) string {
	for _, suffix := range sizeSuffixes {
		url = strings.TrimSuffix(url, suffix)
	}
	return url
}

// DefaultValidatorTimeout bounds a single validation probe.
const DefaultValidatorTimeout = 5 * time.Second
