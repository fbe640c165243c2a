package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wellness-admin/models"
)

const clientFormAddPage = "add"

type ClientForm struct {
	FirstName   string `form:"firstName" binding:"required"`
	LastName    string `form:"lastName" binding:"required"`
	Email       string `form:"email" binding:"required"`
	PhoneNumber string `form:"phoneNumber"`
	From        string `form:"from"`
}

func (f *ClientForm) trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
}

func (f ClientForm) complete() bool {
	return f.FirstName != "" && f.LastName != "" && f.Email != ""
}

type clientsView struct {
	Clients  []models.Client
	Query    string
	Pager    Pager
	Form     ClientForm
	ShowForm bool
}

func (h *Handler) ListClients(c *gin.Context) {
	h.renderClients(c, http.StatusOK, nil, ClientForm{}, c.Query("add") != "")
}

func (h *Handler) renderClients(c *gin.Context, status int, alert *Alert, form ClientForm, showForm bool) {
	view := clientsView{Query: c.Query("q"), Form: form, ShowForm: showForm}

	clients, err := h.gateway.ListClients(c.Request.Context())
	if err != nil && alert == nil {
		alert = h.failure(c, err, "Could not load clients.")
	}

	page, size := parsePaging(c.Query("page"), c.Query("size"))
	view.Clients, view.Pager = paginate(models.FilterClients(clients, view.Query), page, size)

	h.render(c, status, "clients", "Clients", alert, view)
}

func (h *Handler) AddClientPage(c *gin.Context) {
	h.render(c, http.StatusOK, "client_add", "Add client", nil, clientsView{
		Form: ClientForm{From: clientFormAddPage},
	})
}

// CreateClient creates a client from the list modal or the standalone page.
// The backend account uses the email as username and the configured initial password.
func (h *Handler) CreateClient(c *gin.Context) {
	var form ClientForm
	bindErr := c.ShouldBind(&form)
	form.trim()

	// Incomplete forms are answered from the form page alone so no backend call is made.
	if bindErr != nil || !form.complete() {
		h.render(c, http.StatusBadRequest, "client_add", "Add client",
			&Alert{Severity: "warning", Message: "First name, last name and email are required."},
			clientsView{Form: form})
		return
	}

	created, err := h.gateway.CreateClient(c.Request.Context(), models.CreateClientRequest{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
		Username:     form.Email,
		PasswordHash: h.opts.InitialPassword,
	})
	if err != nil {
		alert := h.failure(c, err, "Could not create the client.")
		if form.From == clientFormAddPage {
			h.render(c, http.StatusOK, "client_add", "Add client", alert, clientsView{Form: form})
			return
		}
		h.renderClients(c, http.StatusOK, alert, form, true)
		return
	}

	var id int64
	if created != nil {
		id = created.SelectID()
	}
	h.publish(models.EventClientCreated, actor(c), id, form.FirstName+" "+form.LastName)
	c.Redirect(http.StatusSeeOther, "/clients?notice=client_created")
}
