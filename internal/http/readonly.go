package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadOnlyMessage is returned for writes rejected in read-only mode.
const ReadOnlyMessage = "This action is disabled in read-only mode"

// ReadOnlyMiddleware blocks write operations when enabled.
// Read-only operations (GET, HEAD, OPTIONS) are always allowed.
type ReadOnlyMiddleware struct {
	enabled bool
}

// NewReadOnlyMiddleware creates a read-only mode middleware.
func NewReadOnlyMiddleware(enabled bool) *ReadOnlyMiddleware {
	return &ReadOnlyMiddleware{enabled: enabled}
}

// Handler returns a Gin middleware that blocks write operations.
func (m *ReadOnlyMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     ReadOnlyMessage,
			"read_only": true,
		})
	}
}
