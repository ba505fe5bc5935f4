package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealhound-api/internal/config"
	"github.com/windoze95/mealhound-api/internal/providers"
)

// SourceHandler reports which providers are registered and which are gated
// off, mostly so operators can confirm the paid-provider policy.
type SourceHandler struct {
	Cfg       *config.Config
	Providers []providers.RecipeProvider
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(cfg *config.Config, provs []providers.RecipeProvider) *SourceHandler {
	return &SourceHandler{Cfg: cfg, Providers: provs}
}

// sourceStatus is one provider's status in the listing.
type sourceStatus struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Paid    bool   `json:"paid"`
	Active  bool   `json:"active"`
}

// ListSources handles GET /v1/sources
func (h *SourceHandler) ListSources(c *gin.Context) {
	active := make(map[string]bool, len(h.Providers))
	for _, p := range h.Providers {
		active[string(p.Name())] = true
	}

	statuses := make([]sourceStatus, 0, len(h.Cfg.Sources.TrustOrder))
	for _, name := range h.Cfg.Sources.TrustOrder {
		policy := h.Cfg.Sources.Providers[name]
		statuses = append(statuses, sourceStatus{
			Name:    name,
			Enabled: policy.Enabled,
			Paid:    policy.Paid,
			Active:  active[name],
		})
	}

	c.JSON(http.StatusOK, gin.H{"sources": statuses})
}
