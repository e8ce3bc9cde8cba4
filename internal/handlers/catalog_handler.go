package handlers

import (
	"net/http"

	"github.com/enzogallo/discover-backend/internal/catalog"
	"github.com/labstack/echo/v4"
)

// CatalogHandler handles HTTP requests for music catalog search
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterCatalogRoutes registers catalog-related routes
func (h *CatalogHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/catalog/search", h.Search)
}

// Search looks up tracks and albums matching the q query parameter
func (h *CatalogHandler) Search(c echo.Context) error {
	items, err := h.catalogService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
