package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealhound-api/internal/images"
	"github.com/windoze95/mealhound-api/internal/models"
)

// ImageHandler handles standalone image resolution for callers that already
// hold a recipe from another path.
type ImageHandler struct {
	Resolver *images.Resolver
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(resolver *images.Resolver) *ImageHandler {
	return &ImageHandler{Resolver: resolver}
}

// ResolveImage handles POST /v1/recipes/image?size=medium with a recipe in
// the request body. image_url is null when every fallback stage failed;
// callers must treat that as "no image available".
func (h *ImageHandler) ResolveImage(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe body"})
		return
	}
	if recipe.ID == "" || recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe id and title are required"})
		return
	}

	size := c.DefaultQuery("size", images.SizeMedium)

	url := h.Resolver.ResolveImage(c.Request.Context(), recipe, size)

	var imageURL *string
	if url != "" {
		imageURL = &url
	}
	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
