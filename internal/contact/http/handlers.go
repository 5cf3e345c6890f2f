package http

import (
	"errors"
	"net/http"
	"strconv"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/contact/domain"
	"github.com/accessguide/accessguide-backend/internal/contact/service"
	"github.com/gin-gonic/gin"
)

// maxFormBody caps the JSON body of a contact submission.
const maxFormBody = 64 << 10

// Handler handles HTTP requests for the contact form
type Handler struct {
	svc *service.ContactService
}

// New creates a new Handler
func New(svc *service.ContactService) *Handler {
	return &Handler{svc: svc}
}

// Register registers the contact routes. limit guards the public form and
// admin guards the submission listing.
func (h *Handler) Register(rg *gin.RouterGroup, limit, admin gin.HandlerFunc) {
	rg.POST("/contact", limit, h.Submit)
	rg.GET("/admin/contact-submissions", admin, h.List)
}

// Submit accepts a contact form and forwards it.
func (h *Handler) Submit(c *gin.Context) {
	var form domain.Form
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormBody)
	if err := c.ShouldBindJSON(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.svc.Submit(c.Request.Context(), form, c.ClientIP())
	if err != nil {
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please correct the highlighted fields", "fields": fe})
			return
		}
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, rec)
}

// List returns stored submissions, newest first.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	subs, err := h.svc.List(c.Request.Context(), domain.Status(c.Query("status")), limit)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": subs, "count": len(subs)})
}
