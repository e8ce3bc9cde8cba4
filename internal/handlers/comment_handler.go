package handlers

import (
	"net/http"

	"github.com/enzogallo/discover-backend/internal/middleware"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to post comments
type CommentHandler struct {
	engagementService *services.EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagementService *services.EngagementService) *CommentHandler {
	return &CommentHandler{engagementService: engagementService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.AddComment)
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.GET("/posts/:post_id/comments/count", h.GetCommentCount)
}

// AddComment appends a comment to a post
func (h *CommentHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.engagementService.AddComment(c.Request().Context(), middleware.UserID(c), c.Param("post_id"), req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments returns a post's comments in chronological order
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.engagementService.Comments(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetCommentCount returns the number of comments on a post
func (h *CommentHandler) GetCommentCount(c echo.Context) error {
	count, err := h.engagementService.CommentCount(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}
