package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealhound-api/internal/cache"
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/handlers"
	"github.com/windoze95/mealhound-api/internal/images"
	"github.com/windoze95/mealhound-api/internal/logger"
	"github.com/windoze95/mealhound-api/internal/middleware"
	"github.com/windoze95/mealhound-api/internal/providers"
	"github.com/windoze95/mealhound-api/internal/service"
)

// SetupRouter sets up the Gin router and wires the aggregation pipeline.
func SetupRouter(cfg *config.Config) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = []string{
		"https://api.mealhound.app",
		"https://www.mealhound.app",
		"https://mealhound.app",
	}
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Provider registry honors the source policy and the paid-provider gate
	provs := providers.NewRegistry(cfg)

	// Image resolution setup
	imageCache := cache.NewImageCache()
	resolver := images.NewResolver(cfg.Sources, imageCache, images.NewHeadValidator())

	// Aggregation pipeline setup
	resultCache := cache.NewResultCache(cfg.EnvVars.ResultCacheSize)
	aggregator := service.NewAggregatorService(cfg, provs, resolver, resultCache)

	searchHandler := handlers.NewSearchHandler(aggregator)
	imageHandler := handlers.NewImageHandler(resolver)
	sourceHandler := handlers.NewSourceHandler(cfg, provs)

	api := r.Group("/v1")
	{
		// Every search fans out to several metered upstreams, so the
		// group is rate limited per IP.
		api.Use(middleware.RateLimitByIP(cfg.EnvVars.SearchRateLimitRPS, 5*time.Minute, 15*time.Minute))

		// Aggregated recipe search
		api.GET("/recipes/search", searchHandler.SearchRecipes)
		// Standalone image resolution for an already-held recipe
		api.POST("/recipes/image", imageHandler.ResolveImage)
		// Provider status listing
		api.GET("/sources", sourceHandler.ListSources)
	}

	return r
}
