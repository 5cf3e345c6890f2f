package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/document"
	"github.com/gin-gonic/gin"
)

// MaxDocumentSize caps uploaded documents.
const MaxDocumentSize = 2 << 20

// Handler handles HTTP requests for the document viewer
type Handler struct{}

// New creates a new Handler
func New() *Handler {
	return &Handler{}
}

// Register registers the document routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/documents/outline", h.Outline)
}

type outlineRequest struct {
	HTML string `json:"html"`
}

// Outline accepts either a raw text/html body or JSON {"html": "..."}.
func (h *Handler) Outline(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxDocumentSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	if len(body) > MaxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document too large"})
		return
	}

	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType == "application/json" {
		var req outlineRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		body = []byte(req.HTML)
	}

	outline, err := document.Analyze(bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, document.ErrEmptyDocument) {
			httpapi.RespondError(c, apperr.E("document.Outline", apperr.KindValidation, err))
			return
		}
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outline)
}
