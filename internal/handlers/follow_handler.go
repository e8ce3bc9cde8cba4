package handlers

import (
	"net/http"

	"github.com/enzogallo/discover-backend/internal/middleware"
	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	engagementService *services.EngagementService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(engagementService *services.EngagementService) *FollowHandler {
	return &FollowHandler{engagementService: engagementService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow/toggle", h.ToggleFollow)
	g.GET("/users/:id/follow/status", h.GetFollowStatus)
	g.GET("/users/:id/followers/count", h.GetFollowerCount)
	g.GET("/users/:id/following/count", h.GetFollowingCount)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleFollow flips whether the authenticated user follows the target user
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	following, err := h.engagementService.ToggleFollow(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"following": following})
}

// GetFollowStatus reports whether the authenticated user follows the target user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	following, err := h.engagementService.IsFollowing(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"following": following})
}

// GetFollowerCount returns how many users follow the target user
func (h *FollowHandler) GetFollowerCount(c echo.Context) error {
	count, err := h.engagementService.FollowerCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetFollowingCount returns how many users the target user follows
func (h *FollowHandler) GetFollowingCount(c echo.Context) error {
	count, err := h.engagementService.FollowingCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// GetFollowers returns the IDs of users following the target user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	ids, err := h.engagementService.FollowerIDs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"userIds": ids})
}

// GetFollowing returns the IDs of users the target user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	ids, err := h.engagementService.FollowingIDs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"userIds": ids})
}
