package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/middleware"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and the feed
type PostHandler struct {
	postService *services.PostService
	userService *services.UserService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, userService *services.UserService) *PostHandler {
	return &PostHandler{postService: postService, userService: userService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/today/status", h.GetTodayStatus)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost shares one track or album for the day
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	post, err := h.postService.CreatePost(c.Request().Context(), userID, user.Pseudonym, req)
	if err != nil {
		if errors.Is(err, apperror.ErrAlreadyPostedToday) {
			middleware.CountGateRejection()
		}
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetFeed returns the newest posts across all users
func (h *PostHandler) GetFeed(c echo.Context) error {
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	posts, err := h.postService.Feed(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetTodayStatus reports whether the authenticated user may still post today
func (h *PostHandler) GetTodayStatus(c echo.Context) error {
	posted, err := h.postService.HasPostedToday(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, models.PostStatusResponse{
		CanPost:        !posted,
		HasPostedToday: posted,
	})
}

// GetPost returns a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetUserPosts returns a user's posts, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postService.UserPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// DeletePost removes a post and its likes and comments; owner only
func (h *PostHandler) DeletePost(c echo.Context) error {
	err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
