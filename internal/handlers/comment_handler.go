package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kanaverse/animeplay/backend/internal/models"
	"github.com/kanaverse/animeplay/backend/internal/stores"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *stores.CommentStore
	accounts *stores.AccountStore // to gate submission and attribute likes
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *stores.CommentStore, accounts *stores.AccountStore) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		accounts: accounts,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/content/:content_key/comments", h.GetComments)
	g.POST("/content/:content_key/comments", h.CreateComment)
	g.POST("/comments/:id/like", h.ToggleLike)
}

// GetComments returns the comments for one content item, newest first unless
// ?sort=oldest is given
func (h *CommentHandler) GetComments(c echo.Context) error {
	contentKey := c.Param("content_key")
	newestFirst := c.QueryParam("sort") != "oldest"

	comments, err := h.comments.List(c.Request().Context(), contentKey, newestFirst)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"comments": comments,
			"count":    len(comments),
		},
	})
}

// CreateComment posts a comment to a content item for the active session
func (h *CommentHandler) CreateComment(c echo.Context) error {
	session, err := h.accounts.CurrentSession(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Login to comment")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Add(c.Request().Context(), c.Param("content_key"), req.Body, session)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment == nil {
		// blank body: dropped without error
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comment": nil}})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}

// ToggleLike flips the active session's like on a comment
func (h *CommentHandler) ToggleLike(c echo.Context) error {
	session, err := h.accounts.CurrentSession(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Login to like comments")
	}

	comment, err := h.comments.ToggleLike(c.Request().Context(), c.Param("id"), session.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}
