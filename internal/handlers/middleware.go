package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger records every request at debug level. The daemon listens on
// loopback only, so there is no auth layer in front of these routes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
