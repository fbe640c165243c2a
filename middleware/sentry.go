package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

func SentryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		if hub.Client() == nil {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		transactionName := fmt.Sprintf("%s %s", c.Request.Method, route)
		ctx := sentry.SetHubOnContext(c.Request.Context(), hub)
		transaction := sentry.StartTransaction(
			ctx,
			transactionName,
			sentry.ContinueFromRequest(c.Request),
		)
		defer func() {
			if c.Writer != nil {
				transaction.Status = sentry.HTTPtoSpanStatus(c.Writer.Status())
			}
			transaction.Finish()
		}()

		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("Request", map[string]interface{}{
				"Method":  c.Request.Method,
				"URL":     c.Request.URL.String(),
				"Headers": getSafeHeaders(c.Request.Header),
			})
			scope.SetTag("http.method", c.Request.Method)
			scope.SetTag("http.route", route)
		})

		c.Request = c.Request.WithContext(transaction.Context())
		c.Next()
	}
}

func getSafeHeaders(h http.Header) map[string]interface{} {
	safe := make(map[string]interface{})
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			safe[k] = "[FILTERED]"
		} else {
			safe[k] = v
		}
	}
	return safe
}
