package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wellness-admin/config"
	"wellness-admin/gateway"
	"wellness-admin/middleware"
	"wellness-admin/models"
)

const (
	bypassUsername = "expert"
	bypassRole     = "expert"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginView struct {
	Username string
	Bypass   bool
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", "Sign in", nil, loginView{
		Bypass: h.opts.LoginMode == config.LoginModeBypass,
	})
}

func (h *Handler) Login(c *gin.Context) {
	if h.opts.LoginMode == config.LoginModeBypass {
		username := strings.TrimSpace(c.PostForm("username"))
		if username == "" {
			username = bypassUsername
		}
		h.startSession(c, models.Session{Username: username, Role: bypassRole})
		return
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login", "Sign in",
			&Alert{Severity: "warning", Message: "Please enter your username and password."},
			loginView{Username: form.Username})
		return
	}

	resp, err := h.gateway.Login(c.Request.Context(), models.LoginRequest{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		generic := msgGeneric
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			generic = "Invalid username or password."
		}
		h.render(c, http.StatusOK, "login", "Sign in", h.failure(c, err, generic), loginView{Username: form.Username})
		return
	}

	h.startSession(c, models.Session{Username: resp.Username, Role: resp.Role, UserID: resp.UserID})
}

func (h *Handler) startSession(c *gin.Context, sess models.Session) {
	id, err := h.sessions.Create(c.Request.Context(), sess)
	if err != nil {
		h.logger.Printf("Failed to create session for %s: %v", sess.Username, err)
		_ = c.Error(err)
		h.render(c, http.StatusInternalServerError, "login", "Sign in",
			&Alert{Severity: "error", Message: msgGeneric}, loginView{Username: sess.Username})
		return
	}

	middleware.SetSessionCookie(c, id, int(h.sessions.TTL().Seconds()), h.opts.CookieSecure)
	h.publish(models.EventUserLoggedIn, sess.Username, sess.UserID, "")
	c.Redirect(http.StatusSeeOther, "/clients")
}

func (h *Handler) Logout(c *gin.Context) {
	who := actor(c)
	if id := middleware.CurrentSessionID(c); id != "" {
		if err := h.sessions.Clear(c.Request.Context(), id); err != nil {
			h.logger.Printf("Failed to clear session: %v", err)
			_ = c.Error(err)
		}
		h.publish(models.EventUserLoggedOut, who, 0, "")
	}
	middleware.ClearSessionCookie(c, h.opts.CookieSecure)
	c.Redirect(http.StatusSeeOther, "/login?notice=logged_out")
}
