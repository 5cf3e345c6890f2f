package http

import (
	"errors"
	"net/http"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/contrast"
	"github.com/gin-gonic/gin"
)

// Handler serves the contrast checker.
type Handler struct{}

// New creates a new Handler
func New() *Handler {
	return &Handler{}
}

// Register registers the contrast routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/contrast", h.Check)
	rg.POST("/contrast", h.Check)
	rg.POST("/contrast/suggest", h.Suggest)
}

type checkRequest struct {
	Foreground string `json:"foreground" form:"fg"`
	Background string `json:"background" form:"bg"`
}

type suggestRequest struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Level      string `json:"level"`
}

// Check evaluates a color pair from a JSON body or fg/bg query parameters.
func (h *Handler) Check(c *gin.Context) {
	var req checkRequest
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := contrast.Evaluate(req.Foreground, req.Background)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Suggest proposes a foreground that meets the requested level.
func (h *Handler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Level == "" {
		req.Level = string(contrast.LevelNormalAA)
	}

	fg, err := contrast.ParseHex(req.Foreground)
	if err != nil {
		httpapi.RespondError(c, withField(err, "foreground"))
		return
	}
	bg, err := contrast.ParseHex(req.Background)
	if err != nil {
		httpapi.RespondError(c, withField(err, "background"))
		return
	}

	s, err := contrast.Suggest(fg, bg, contrast.Level(req.Level))
	if err != nil {
		httpapi.RespondError(c, apperr.E("contrast.Suggest", apperr.KindValidation, err).WithField("level"))
		return
	}

	c.JSON(http.StatusOK, s)
}

func withField(err error, field string) error {
	var oe *apperr.OpError
	if errors.As(err, &oe) {
		return oe.WithField(field)
	}
	return err
}
