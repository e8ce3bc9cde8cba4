package handlers

import (
	"net/http"

	"github.com/enzogallo/discover-backend/internal/middleware"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to accounts and profiles
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.Register)
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateProfile)
	g.DELETE("/users/me", h.DeleteAccount)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/streak", h.GetStreak)
}

// Register creates the account record for the authenticated UID
func (h *UserHandler) Register(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetMe returns the authenticated user's record
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns any user's public record
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile renames the authenticated user and optionally replaces the
// profile picture
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetStreak returns a user's stored and active streak
func (h *UserHandler) GetStreak(c echo.Context) error {
	streak, err := h.userService.Streak(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, streak)
}

// DeleteAccount removes the authenticated user and everything they own
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	if err := h.userService.DeleteAccount(c.Request().Context(), middleware.UserID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
