package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-drone-fleet/internal/apperr"
)

// Conflict stays 500 because the dashboard treats a refused delete as a
// server failure; the kind is still reported in the body.
var statusByKind = map[apperr.Kind]int{
	apperr.InvalidArgument: http.StatusBadRequest,
	apperr.NotFound:        http.StatusNotFound,
	apperr.Conflict:        http.StatusInternalServerError,
	apperr.Unavailable:     http.StatusServiceUnavailable,
	apperr.Internal:        http.StatusInternalServerError,
}

func statusFor(kind apperr.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	attrs := []any{"method", c.Request.Method, "path", c.Request.URL.Path, "kind", kind, "error", err}
	if kind == apperr.InvalidArgument || kind == apperr.NotFound {
		slog.Warn("request rejected", attrs...)
	} else {
		slog.Error("request failed", attrs...)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   kind,
		"message": apperr.MessageOf(err),
	})
}

func writeSuccess(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msg,
	})
}

// bindJSON decodes the body into dst and writes the error response itself
// when the body is not valid JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, apperr.Wrap(apperr.InvalidArgument, "request body must be valid JSON", err))
		return false
	}
	return true
}
