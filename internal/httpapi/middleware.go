package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/server"
)

// LoggingMiddleware writes one record per request.
func LoggingMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("HTTP request")
			return
		}
		entry.Debug("HTTP request")
	}
}

// HandlePanics turns a panic in a handler into a 500 with an internal error
// body.
func HandlePanics(log logrus.FieldLogger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		detail := fmt.Sprint(recovered)
		if err, ok := recovered.(error); ok {
			detail = err.Error()
		}
		log.WithField("panic", detail).Error("Handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, server.ToolError{Kind: "internal", Detail: detail})
	}
}
