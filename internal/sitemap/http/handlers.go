package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/sitemap/domain"
	"github.com/accessguide/accessguide-backend/internal/sitemap/service"
	"github.com/gin-gonic/gin"
)

const (
	xmlContentType = "application/xml; charset=utf-8"
	maxParseBody   = 10 << 20
	maxJSONBody    = 10 << 20
)

// Handler handles HTTP requests for the sitemap generator
type Handler struct {
	svc *service.SitemapService
}

// New creates a new Handler
func New(svc *service.SitemapService) *Handler {
	return &Handler{svc: svc}
}

// Register registers the sitemap routes. Generation and parsing are public;
// admin guards the archive, which can also publish to the bucket.
func (h *Handler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("/sitemaps/generate", h.Generate)
	rg.POST("/sitemaps/parse", h.Parse)

	archive := rg.Group("/sitemaps", admin)
	archive.POST("", h.Create)
	archive.GET("", h.List)
	archive.GET("/:id", h.Get)
}

// bindJSON decodes a capped JSON body into v and writes the error response
// when it cannot.
func bindJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody)
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// Generate returns the sitemap XML for the posted entries.
func (h *Handler) Generate(c *gin.Context) {
	var in service.Input
	if !bindJSON(c, &in) {
		return
	}

	xml, _, err := h.svc.Generate(in)
	if err != nil {
		respond(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="sitemap.xml"`)
	c.Data(http.StatusOK, xmlContentType, xml)
}

// Create generates and archives a sitemap.
func (h *Handler) Create(c *gin.Context) {
	var in service.Input
	if !bindJSON(c, &in) {
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sitemap": rec})
}

// List lists archived sitemaps, newest first.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	recs, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sitemaps": recs})
}

// Get returns the XML of an archived sitemap.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sitemap ID is required"})
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond(c, err)
		return
	}

	c.Data(http.StatusOK, xmlContentType, rec.XML)
}

// Parse reads posted sitemap XML back into entries.
func (h *Handler) Parse(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxParseBody+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	if len(body) > maxParseBody {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "sitemap too large"})
		return
	}

	entries, err := h.svc.Parse(body)
	if err != nil {
		respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func respond(c *gin.Context, err error) {
	var be *domain.BatchError
	switch {
	case errors.As(err, &be):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   be.Error(),
			"kind":    "validation",
			"entries": be.Entries,
		})
	case errors.Is(err, domain.ErrNoURLs), errors.Is(err, domain.ErrTooManyURLs), errors.Is(err, domain.ErrMalformedXML):
		httpapi.RespondErrorStatus(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, service.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		httpapi.RespondError(c, err)
	}
}
