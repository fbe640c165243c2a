// Package router holds the static route table and builds the gin engine.
package router

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"wellness-admin/handlers"
	"wellness-admin/middleware"
	"wellness-admin/monitoring"
	"wellness-admin/session"
)

const LoginPath = "/login"

// Route is one entry of the static route table. Label, when set, puts the
// route in the side menu.
type Route struct {
	Method  string
	Path    string
	Label   string
	Handler gin.HandlerFunc
	Public  bool
	Limited bool
}

func Routes(h *handlers.Handler) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handler: h.LoginPage, Public: true},
		{Method: http.MethodGet, Path: LoginPath, Handler: h.LoginPage, Public: true},
		{Method: http.MethodPost, Path: LoginPath, Handler: h.Login, Public: true, Limited: true},
		{Method: http.MethodGet, Path: "/logout", Handler: h.Logout, Public: true},
		{Method: http.MethodPost, Path: "/logout", Handler: h.Logout, Public: true},

		{Method: http.MethodGet, Path: "/appointments", Label: "Appointments", Handler: h.Appointments},
		{Method: http.MethodPost, Path: "/appointments", Handler: h.CreateAppointment},
		{Method: http.MethodGet, Path: "/clients/add", Label: "Add client", Handler: h.AddClientPage},
		{Method: http.MethodGet, Path: "/clients", Label: "Client list", Handler: h.ListClients},
		{Method: http.MethodPost, Path: "/clients", Handler: h.CreateClient},
		{Method: http.MethodGet, Path: "/diet-write", Label: "Write diet", Handler: h.DietWrite},
		{Method: http.MethodPost, Path: "/diet-write", Handler: h.SubmitDietWrite},
		{Method: http.MethodGet, Path: "/diet-lists", Label: "Diet lists", Handler: h.DietLists},
		{Method: http.MethodGet, Path: "/diet-lists/:id", Handler: h.DietListDetail},
		{Method: http.MethodGet, Path: "/reports", Label: "Reports", Handler: h.Reports},
		{Method: http.MethodGet, Path: "/contact", Label: "Contact", Handler: h.Placeholder("Contact")},
		{Method: http.MethodGet, Path: "/settings", Label: "Settings", Handler: h.Settings},
		{Method: http.MethodPost, Path: "/settings/profile", Handler: h.SaveProfile},
		{Method: http.MethodPost, Path: "/settings/password", Handler: h.ChangePassword},
	}
}

// Navigation is the side menu derived from the route table.
func Navigation(routes []Route) []handlers.NavItem {
	var nav []handlers.NavItem
	for _, r := range routes {
		if r.Label != "" && !r.Public {
			nav = append(nav, handlers.NavItem{Label: r.Label, Path: r.Path})
		}
	}
	return nav
}

type Options struct {
	// Guard makes non-public routes require a session.
	Guard bool
	// LoginLimiter, when set, throttles limited routes per client IP.
	LoginLimiter *middleware.RateLimiter
	// CSRFKey, when set, requires a form token on every page POST.
	CSRFKey      []byte
	CookieSecure bool
}

// New wires middleware, the route table and the operational endpoints.
func New(h *handlers.Handler, sessions *session.Service, htmlRender render.HTMLRender, opts Options, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.HTMLRender = htmlRender
	r.Use(
		gin.Logger(),
		gin.Recovery(),
		middleware.PrometheusMetrics(),
		middleware.SentryMiddleware(),
		middleware.ErrorHandler(),
	)

	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := sessions.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "degraded",
					"details": gin.H{"sessions": "unavailable"},
					"error":   err.Error(),
				})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"details": gin.H{"sessions": "available"},
			})
		})
	}

	routes := Routes(h)
	h.SetNavigation(Navigation(routes))

	pages := r.Group("/", middleware.LoadSession(sessions, opts.CookieSecure, logger))
	if len(opts.CSRFKey) > 0 {
		pages.Use(middleware.CSRF(opts.CSRFKey, opts.CookieSecure))
	}
	protected := pages.Group("/")
	if opts.Guard {
		protected.Use(middleware.RequireSession(LoginPath))
	}
	for _, route := range routes {
		chain := []gin.HandlerFunc{route.Handler}
		if route.Limited && opts.LoginLimiter != nil {
			chain = append([]gin.HandlerFunc{middleware.RateLimit(opts.LoginLimiter)}, chain...)
		}
		if route.Public {
			pages.Handle(route.Method, route.Path, chain...)
		} else {
			protected.Handle(route.Method, route.Path, chain...)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, LoginPath)
	})

	return r
}
