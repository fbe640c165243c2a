package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wellness-admin/calendar"
	"wellness-admin/models"
)

type AppointmentForm struct {
	Title    string `form:"title"`
	TypeID   int    `form:"typeId"`
	ClientID int64  `form:"clientId"`
	Date     string `form:"date"`
	Time     string `form:"time"`
	Notes    string `form:"notes"`
	Month    string `form:"month"`
}

type appointmentsView struct {
	Month   *calendar.Month
	Types   []models.AppointmentType
	Clients []models.Client
	Form    AppointmentForm
	Skipped int
}

// visibleMonth reads ?month=YYYY-MM and falls back to the current month.
func (h *Handler) visibleMonth(param string) time.Time {
	loc := h.opts.Location
	if t, err := time.ParseInLocation("2006-01", param, loc); err == nil {
		return t
	}
	now := h.now().In(loc)
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
}

func (h *Handler) Appointments(c *gin.Context) {
	month := h.visibleMonth(c.Query("month"))
	h.renderAppointments(c, http.StatusOK, month, nil, AppointmentForm{
		TypeID: models.AppointmentTypes[0].ID,
		Date:   month.Format("2006-01-02"),
		Month:  calendar.Param(month),
	})
}

func (h *Handler) renderAppointments(c *gin.Context, status int, month time.Time, alert *Alert, form AppointmentForm) {
	ctx := c.Request.Context()
	view := appointmentsView{Types: models.AppointmentTypes, Form: form}

	appointments, err := h.gateway.ListAppointments(ctx)
	if err != nil && alert == nil {
		alert = h.failure(c, err, "Could not load appointments.")
	}

	grid, err := calendar.Build(month, appointments, h.now())
	if err != nil {
		h.logger.Printf("Calendar %s: %v", calendar.Param(month), err)
		for _, cell := range grid.Cells {
			view.Skipped += len(cell.Appointments)
		}
		view.Skipped = countInMonth(appointments, month) - view.Skipped
	}
	view.Month = grid

	// The selector stays empty when the client list cannot be fetched.
	if clients, err := h.gateway.ListClients(ctx); err == nil {
		view.Clients = clients
	} else {
		h.logger.Printf("Client selector: %v", err)
	}

	h.render(c, status, "appointments", "Appointments", alert, view)
}

func countInMonth(appointments []models.Appointment, month time.Time) int {
	n := 0
	for _, a := range appointments {
		start := a.StartDate.In(month.Location())
		if start.Year() == month.Year() && start.Month() == month.Month() {
			n++
		}
	}
	return n
}

// CreateAppointment books a one-hour appointment starting at the submitted
// local date and time.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var form AppointmentForm
	_ = c.ShouldBind(&form)
	form.Title = strings.TrimSpace(form.Title)
	if form.TypeID == 0 {
		form.TypeID = models.AppointmentTypes[0].ID
	}
	month := h.visibleMonth(form.Month)

	if form.Title == "" || form.Date == "" || form.Time == "" {
		h.renderAppointments(c, http.StatusBadRequest, month, &Alert{Severity: "warning", Message: "Title, date and time are required."}, form)
		return
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", form.Date+" "+form.Time, h.opts.Location)
	if err != nil {
		h.renderAppointments(c, http.StatusBadRequest, month, &Alert{Severity: "warning", Message: "Enter a valid date and time."}, form)
		return
	}
	if form.ClientID <= 0 {
		h.renderAppointments(c, http.StatusBadRequest, month, &Alert{Severity: "warning", Message: "Choose the client for this appointment."}, form)
		return
	}

	created, err := h.gateway.CreateAppointment(c.Request.Context(), models.CreateAppointmentRequest{
		Title:               form.Title,
		StartDate:           start.UTC(),
		EndDate:             start.Add(models.AppointmentDuration).UTC(),
		Notes:               form.Notes,
		ClientID:            form.ClientID,
		AppointmentStatusID: models.DefaultAppointmentStatus,
		AppointmentTypeID:   form.TypeID,
	})
	if err != nil {
		h.renderAppointments(c, http.StatusOK, month, h.failure(c, err, "Could not save the appointment."), form)
		return
	}

	var id int64
	if created != nil {
		id = created.AppointmentID
	}
	h.publish(models.EventAppointmentCreated, actor(c), id, form.Title)
	c.Redirect(http.StatusSeeOther, "/appointments?month="+calendar.Param(start)+"&notice=appointment_created")
}
