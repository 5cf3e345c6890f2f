package http

import (
	"errors"
	"net/http"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/structureddata"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the JSON-LD generator
type Handler struct{}

// New creates a new Handler
func New() *Handler {
	return &Handler{}
}

// Register registers the structured data routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/structured-data/types", h.Types)
	rg.POST("/structured-data", h.Generate)
}

type generateRequest struct {
	Type   string         `json:"type" binding:"required"`
	Fields map[string]any `json:"fields"`
}

// Types lists the supported schema types and their fields.
func (h *Handler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": structureddata.Types()})
}

// Generate builds a JSON-LD document and its script element.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	doc, err := structureddata.Build(req.Type, req.Fields)
	if err != nil {
		var verr *structureddata.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   verr.Error(),
				"kind":    "validation",
				"type":    verr.Type,
				"missing": verr.Missing,
				"unknown": verr.Unknown,
				"invalid": verr.Invalid,
			})
		case errors.Is(err, structureddata.ErrUnknownType):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "validation", "field": "type"})
		default:
			httpapi.RespondError(c, err)
		}
		return
	}

	script, err := structureddata.Script(doc)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"json_ld": doc, "script": script})
}
