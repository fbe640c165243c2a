package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wellness-admin/models"
)

var dietDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const (
	dietActionAdd    = "add_row"
	dietActionRemove = "remove_row:"
	dietActionSave   = "save"
)

// DietForm is the diet writer state. Rows travel as parallel day/meal/content fields.
type DietForm struct {
	ClientID    int64    `form:"clientId"`
	Title       string   `form:"title"`
	Description string   `form:"description"`
	StartDate   string   `form:"startDate"`
	EndDate     string   `form:"endDate"`
	Days        []string `form:"day"`
	Meals       []string `form:"meal"`
	Contents    []string `form:"content"`
	Action      string   `form:"action"`

	Rows []models.DietDetail `form:"-"`
}

func (f *DietForm) collectRows() {
	f.Rows = make([]models.DietDetail, len(f.Days))
	for i, day := range f.Days {
		f.Rows[i].Day = day
		if i < len(f.Meals) {
			f.Rows[i].Meal = f.Meals[i]
		}
		if i < len(f.Contents) {
			f.Rows[i].Content = f.Contents[i]
		}
	}
}

// addRow appends a row on the last row's day, defaulting the meal to lunch.
func (f *DietForm) addRow() {
	day := models.DefaultDietDay
	if n := len(f.Rows); n > 0 {
		day = f.Rows[n-1].Day
	}
	f.Rows = append(f.Rows, models.DietDetail{Day: day, Meal: models.AddedDietMeal})
}

func (f *DietForm) removeRow(i int) {
	if i < 0 || i >= len(f.Rows) {
		return
	}
	f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

type dietWriteView struct {
	Clients []models.Client
	Days    []string
	Meals   []string
	Form    DietForm
}

func (h *Handler) newDietForm() DietForm {
	today := h.now().In(h.opts.Location).Format("2006-01-02")
	return DietForm{
		StartDate: today,
		EndDate:   today,
		Rows:      []models.DietDetail{{Day: models.DefaultDietDay, Meal: models.DefaultDietMeal}},
	}
}

func (h *Handler) DietWrite(c *gin.Context) {
	h.renderDietWrite(c, http.StatusOK, nil, h.newDietForm())
}

func (h *Handler) renderDietWrite(c *gin.Context, status int, alert *Alert, form DietForm) {
	view := dietWriteView{Days: dietDays, Meals: models.MealTypes, Form: form}
	clients, err := h.gateway.ListClients(c.Request.Context())
	if err != nil && alert == nil {
		alert = h.failure(c, err, "Could not load clients.")
	}
	view.Clients = clients
	h.render(c, status, "diet_write", "Write diet", alert, view)
}

// SubmitDietWrite handles the writer's row edits and the final save.
func (h *Handler) SubmitDietWrite(c *gin.Context) {
	var form DietForm
	_ = c.ShouldBind(&form)
	form.Title = strings.TrimSpace(form.Title)
	form.StartDate = strings.TrimSpace(form.StartDate)
	form.EndDate = strings.TrimSpace(form.EndDate)
	form.collectRows()

	switch {
	case form.Action == dietActionAdd:
		form.addRow()
		h.renderDietWrite(c, http.StatusOK, nil, form)
		return
	case strings.HasPrefix(form.Action, dietActionRemove):
		if i, err := strconv.Atoi(strings.TrimPrefix(form.Action, dietActionRemove)); err == nil {
			form.removeRow(i)
		}
		h.renderDietWrite(c, http.StatusOK, nil, form)
		return
	}

	if form.ClientID <= 0 || form.Title == "" {
		h.renderDietWrite(c, http.StatusBadRequest,
			&Alert{Severity: "warning", Message: "Choose a client and enter a list title."}, form)
		return
	}
	if !isDate(form.StartDate) || !isDate(form.EndDate) {
		h.renderDietWrite(c, http.StatusBadRequest,
			&Alert{Severity: "warning", Message: "Enter a valid start and end date."}, form)
		return
	}

	created, err := h.gateway.CreateDietList(c.Request.Context(), models.CreateDietListRequest{
		ClientID:    form.ClientID,
		Title:       form.Title,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Details:     form.Rows,
	})
	if err != nil {
		h.renderDietWrite(c, http.StatusOK, h.failure(c, err, "Could not save the diet list."), form)
		return
	}

	var id int64
	if created != nil {
		id = created.DietListID
	}
	h.publish(models.EventDietListCreated, actor(c), id, form.Title)

	fresh := h.newDietForm()
	fresh.ClientID = form.ClientID
	fresh.StartDate, fresh.EndDate = form.StartDate, form.EndDate
	h.renderDietWrite(c, http.StatusOK, &Alert{Severity: "success", Message: "Diet list saved."}, fresh)
}

type dietListsView struct {
	Lists []models.DietList
	Query string
	Pager Pager
}

func (h *Handler) DietLists(c *gin.Context) {
	view := dietListsView{Query: c.Query("q")}

	var alert *Alert
	lists, err := h.gateway.ListDietLists(c.Request.Context())
	if err != nil {
		alert = h.failure(c, err, "Could not load diet lists.")
	}

	page, size := parsePaging(c.Query("page"), c.Query("size"))
	view.Lists, view.Pager = paginate(models.FilterDietLists(lists, view.Query), page, size)
	h.render(c, http.StatusOK, "diet_lists", "Diet lists", alert, view)
}

func (h *Handler) DietListDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Redirect(http.StatusSeeOther, "/diet-lists")
		return
	}

	list, err := h.gateway.GetDietList(c.Request.Context(), id)
	if err != nil {
		h.render(c, http.StatusOK, "diet_detail", "Diet list", h.failure(c, err, "Could not load the diet list."), (*models.DietList)(nil))
		return
	}
	h.render(c, http.StatusOK, "diet_detail", list.Title, nil, list)
}
