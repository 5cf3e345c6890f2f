package http

import (
	"net/http"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/quiz/service"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for quiz sessions
type Handler struct {
	svc *service.QuizService
}

// New creates a new Handler
func New(svc *service.QuizService) *Handler {
	return &Handler{svc: svc}
}

// Register registers the quiz routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	sessions := rg.Group("/quiz/sessions")
	sessions.POST("", h.Start)
	sessions.GET("/:id", h.Get)
	sessions.PUT("/:id/selection", h.Select)
	sessions.POST("/:id/confirm", h.Confirm)
	sessions.POST("/:id/reset", h.Reset)
	sessions.GET("/:id/result", h.Result)
	sessions.DELETE("/:id", h.Delete)
}

type selectRequest struct {
	Option *int `json:"option"`
}

// Start opens a new quiz session.
func (h *Handler) Start(c *gin.Context) {
	v, err := h.svc.Start(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Get returns the current state of a session.
func (h *Handler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Select sets the pending answer.
func (h *Handler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Option == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "option is required", "field": "option"})
		return
	}

	v, err := h.svc.Select(c.Request.Context(), c.Param("id"), *req.Option)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Confirm records the pending answer and moves on.
func (h *Handler) Confirm(c *gin.Context) {
	v, err := h.svc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Reset restarts the quiz.
func (h *Handler) Reset(c *gin.Context) {
	v, err := h.svc.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Result returns the score of a finished session.
func (h *Handler) Result(c *gin.Context) {
	res, err := h.svc.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete closes a session.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
