package handlers

import (
	"net/http"

	"github.com/enzogallo/discover-backend/internal/middleware"
	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to post likes
type LikeHandler struct {
	engagementService *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagementService *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes/toggle", h.ToggleLike)
	g.GET("/posts/:post_id/likes/count", h.GetLikeCount)
	g.GET("/posts/:post_id/likes/status", h.GetLikeStatus)
}

// ToggleLike flips the authenticated user's like on a post
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	liked, err := h.engagementService.ToggleLike(c.Request().Context(), middleware.UserID(c), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"liked": liked})
}

// GetLikeCount returns the number of likes on a post
func (h *LikeHandler) GetLikeCount(c echo.Context) error {
	count, err := h.engagementService.LikeCount(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetLikeStatus reports whether the authenticated user has liked a post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	liked, err := h.engagementService.IsLiked(c.Request().Context(), middleware.UserID(c), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"liked": liked})
}
