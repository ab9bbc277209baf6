package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"transcript-backend/internal/shared/server/respond"
	"transcript-backend/internal/shared/telemetry"
)

// Recovery recovers from panics and returns a generic plain-text failure.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.PlainError(c, http.StatusInternalServerError, "internal", "Processing failed")
			}
		}()
		c.Next()
	}
}
