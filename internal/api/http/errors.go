package http

import (
	"errors"
	"net/http"

	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusForKind maps an error kind to an HTTP status code.
func StatusForKind(k apperr.Kind) int {
	switch k {
	case apperr.KindInvalidColorFormat, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"error", "kind", "field"}. Internal errors are
// logged and replaced by a generic message.
func RespondError(c *gin.Context, err error) {
	RespondErrorStatus(c, StatusForKind(apperr.KindOf(err)), err)
}

// RespondErrorStatus is RespondError with an explicit status code.
func RespondErrorStatus(c *gin.Context, status int, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logging.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": publicMessage(err), "kind": kind}
	if f := apperr.FieldOf(err); f != "" {
		body["field"] = f
	}
	c.JSON(status, body)
}

// publicMessage drops the operation prefix of an OpError.
func publicMessage(err error) string {
	var oe *apperr.OpError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}
