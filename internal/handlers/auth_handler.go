package handlers

import (
	"net/http"

	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles the unauthenticated pseudonym lookups used during
// sign-up and account recovery.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterAuthRoutes registers auth-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/pseudonyms/:pseudonym/availability", h.CheckPseudonymAvailability)
	g.GET("/pseudonyms/:pseudonym/user", h.GetUserIDForPseudonym)
}

// CheckPseudonymAvailability reports whether a pseudonym is free to claim
func (h *AuthHandler) CheckPseudonymAvailability(c echo.Context) error {
	pseudonym := c.Param("pseudonym")

	available, err := h.userService.PseudonymAvailable(c.Request().Context(), pseudonym)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"pseudonym": pseudonym, "available": available})
}

// GetUserIDForPseudonym resolves a pseudonym to its owner's user id, used
// to recover an account from a remembered pseudonym
func (h *AuthHandler) GetUserIDForPseudonym(c echo.Context) error {
	pseudonym := c.Param("pseudonym")

	userID, err := h.userService.UserIDForPseudonym(c.Request().Context(), pseudonym)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"pseudonym": pseudonym, "user_id": userID})
}
