package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wellness-admin/middleware"
	"wellness-admin/models"
)

const (
	settingsTabProfile  = "profile"
	settingsTabSecurity = "security"
)

type ProfileForm struct {
	Title       string `form:"title"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
}

type PasswordForm struct {
	CurrentPassword string `form:"currentPassword" binding:"required"`
	NewPassword     string `form:"newPassword" binding:"required"`
	ConfirmPassword string `form:"confirmPassword" binding:"required"`
}

type settingsView struct {
	Tab     string
	User    *models.User
	Profile ProfileForm
}

func (h *Handler) Settings(c *gin.Context) {
	tab := c.DefaultQuery("tab", settingsTabProfile)
	if tab != settingsTabSecurity {
		tab = settingsTabProfile
	}
	h.renderSettings(c, http.StatusOK, tab, nil, nil)
}

// renderSettings prefetches the signed-in user's profile for either tab.
// A non-nil edited form replaces the fetched profile fields.
func (h *Handler) renderSettings(c *gin.Context, status int, tab string, alert *Alert, edited *ProfileForm) {
	view := settingsView{Tab: tab}

	if sess, ok := middleware.CurrentSession(c); ok && sess.UserID > 0 {
		user, err := h.gateway.GetUser(c.Request.Context(), sess.UserID)
		if err != nil {
			if alert == nil && tab == settingsTabProfile {
				alert = h.failure(c, err, "Could not load your profile.")
			}
		} else {
			view.User = user
			view.Profile = ProfileForm{Title: user.Title, Email: user.Email, PhoneNumber: user.PhoneNumber}
		}
	}

	if edited != nil {
		view.Profile = *edited
	}
	h.render(c, status, "settings", "Settings", alert, view)
}

// SaveProfile only confirms the edit; the backend has no profile update endpoint.
func (h *Handler) SaveProfile(c *gin.Context) {
	var form ProfileForm
	_ = c.ShouldBind(&form)
	form.Title = strings.TrimSpace(form.Title)
	form.Email = strings.TrimSpace(form.Email)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)
	h.logger.Printf("Profile update from %s: title=%q email=%q phone=%q", actor(c), form.Title, form.Email, form.PhoneNumber)
	h.renderSettings(c, http.StatusOK, settingsTabProfile,
		&Alert{Severity: "success", Message: "Profile details updated."}, &form)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var form PasswordForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderSettings(c, http.StatusBadRequest, settingsTabSecurity,
			&Alert{Severity: "warning", Message: "Fill in all password fields."}, nil)
		return
	}
	if form.NewPassword != form.ConfirmPassword {
		h.renderSettings(c, http.StatusBadRequest, settingsTabSecurity,
			&Alert{Severity: "warning", Message: "The new passwords do not match."}, nil)
		return
	}

	username := bypassUsername
	if sess, ok := middleware.CurrentSession(c); ok && sess.Username != "" {
		username = sess.Username
	}

	resp, err := h.gateway.ChangePassword(c.Request.Context(), models.ChangePasswordRequest{
		Username:        username,
		CurrentPassword: form.CurrentPassword,
		NewPassword:     form.NewPassword,
	})
	if err != nil {
		h.renderSettings(c, http.StatusOK, settingsTabSecurity,
			h.failure(c, err, "Could not change the password. Check your current password."), nil)
		return
	}

	message := "Your password has been changed."
	if resp != nil && resp.Message != "" {
		message = resp.Message
	}
	h.publish(models.EventPasswordChanged, username, 0, "")
	h.renderSettings(c, http.StatusOK, settingsTabSecurity, &Alert{Severity: "success", Message: message}, nil)
}
