package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const (
	CSRFCookie = "wellness_csrf"
	CSRFField  = "csrf_token"
)

// CSRF guards state-changing requests with gorilla/csrf. The token travels in
// the CSRFField form value and is checked against the CSRFCookie.
func CSRF(authKey []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(authKey,
		csrf.CookieName(CSRFCookie),
		csrf.FieldName(CSRFField),
		csrf.Path("/"),
		csrf.Secure(secure),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "The form has expired. Reload the page and try again.", http.StatusForbidden)
		})),
	)

	return func(c *gin.Context) {
		req := c.Request
		if !secure && req.TLS == nil {
			req = csrf.PlaintextHTTPRequest(req)
		}

		passed := false
		protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, req)

		if !passed {
			c.Abort()
		}
	}
}

// CSRFToken is the masked token for the current request, empty when the
// request did not pass through CSRF.
func CSRFToken(c *gin.Context) string {
	return csrf.Token(c.Request)
}
