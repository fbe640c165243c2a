package middleware

import (
	"github.com/gin-gonic/gin"

	"wellness-admin/utils"
)

// ErrorHandler reports errors attached with c.Error to Sentry once the
// handler chain has finished.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				extra := map[string]interface{}{
					"endpoint": c.Request.URL.Path,
					"method":   c.Request.Method,
					"status":   c.Writer.Status(),
				}
				if sess, ok := CurrentSession(c); ok {
					extra["user"] = sess.Username
				}
				utils.CaptureError(ginErr.Err, extra)
			}
		}
	}
}
