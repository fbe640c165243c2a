package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellness-admin/gateway"
	"wellness-admin/middleware"
	"wellness-admin/models"
	"wellness-admin/monitoring"
	"wellness-admin/session"
	"wellness-admin/utils"
)

// Gateway is the subset of the backend client the views use.
type Gateway interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	ListDietLists(ctx context.Context) ([]models.DietList, error)
	GetDietList(ctx context.Context, id int64) (*models.DietList, error)
	CreateDietList(ctx context.Context, req models.CreateDietListRequest) (*models.DietList, error)
}

type Deps struct {
	Gateway  Gateway
	Sessions *session.Service
	Events   utils.KafkaProducer
	Search   utils.ElasticsearchClient
	Logger   *log.Logger
}

type Options struct {
	LoginMode       string
	InitialPassword string
	Location        *time.Location
	CookieSecure    bool
	EventsTopic     string
	ActivityIndex   string
}

type NavItem struct {
	Label string
	Path  string
}

type Alert struct {
	Severity string
	Message  string
}

// Page is the data every template receives.
type Page struct {
	Title     string
	Path      string
	Nav       []NavItem
	Session   *models.Session
	Alert     *Alert
	CSRFToken string
	Data      any
}

type Handler struct {
	gateway  Gateway
	sessions *session.Service
	events   utils.KafkaProducer
	search   utils.ElasticsearchClient
	logger   *log.Logger
	opts     Options
	nav      []NavItem
	now      func() time.Time
}

func New(deps Deps, opts Options) *Handler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Handler{
		gateway:  deps.Gateway,
		sessions: deps.Sessions,
		events:   deps.Events,
		search:   deps.Search,
		logger:   deps.Logger,
		opts:     opts,
		now:      time.Now,
	}
}

// SetNavigation installs the side menu shown in the frame.
func (h *Handler) SetNavigation(items []NavItem) {
	h.nav = items
}

// SetClock replaces the time source.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

const (
	msgRequired = "Please fill in the required fields."
	msgGeneric  = "Something went wrong. Please try again."
)

var notices = map[string]Alert{
	"client_created":      {Severity: "success", Message: "Client created."},
	"appointment_created": {Severity: "success", Message: "Appointment saved."},
	"logged_out":          {Severity: "info", Message: "You have been signed out."},
}

func (h *Handler) render(c *gin.Context, status int, name, title string, alert *Alert, data any) {
	if alert == nil {
		if n, ok := notices[c.Query("notice")]; ok {
			alert = &n
		}
	}
	sess, _ := middleware.CurrentSession(c)
	c.HTML(status, name, Page{
		Title:     title,
		Path:      c.Request.URL.Path,
		Nav:       h.nav,
		Session:   sess,
		Alert:     alert,
		CSRFToken: middleware.CSRFToken(c),
		Data:      data,
	})
}

// failure turns a gateway error into the message a view shows. Backend
// messages are passed through and rejected requests become a warning.
// Anything else is logged and reported.
func (h *Handler) failure(c *gin.Context, err error, generic string) *Alert {
	if msg, ok := gateway.BackendMessage(err); ok {
		return &Alert{Severity: "error", Message: msg}
	}
	if errors.Is(err, gateway.ErrInvalidRequest) {
		h.logger.Printf("%s %s: rejected before sending: %v", c.Request.Method, c.Request.URL.Path, err)
		return &Alert{Severity: "warning", Message: msgRequired}
	}
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		h.logger.Printf("%s %s: unexpected error: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
	}
	return &Alert{Severity: "error", Message: generic}
}

func actor(c *gin.Context) string {
	if sess, ok := middleware.CurrentSession(c); ok {
		return sess.Username
	}
	return "anonymous"
}

func (h *Handler) publish(event, who string, id int64, summary string) {
	if h.events == nil {
		return
	}
	ev := models.ActivityEvent{
		Event:    event,
		Actor:    who,
		EntityID: id,
		Summary:  summary,
		At:       h.now().UTC(),
	}
	go h.sendActivityEvent(ev)
}

func (h *Handler) sendActivityEvent(ev models.ActivityEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	jsonData, err := json.Marshal(ev)
	if err != nil {
		h.logger.Printf("Failed to marshal activity event: %v", err)
		return
	}

	if err := h.events.SendMessage(ctx, h.opts.EventsTopic, []byte(ev.Actor), jsonData); err != nil {
		monitoring.ActivityEvents.WithLabelValues(ev.Event, "failed").Inc()
		h.logger.Printf("Failed to send activity event: %v", err)
		return
	}
	monitoring.ActivityEvents.WithLabelValues(ev.Event, "sent").Inc()
}

// Placeholder renders pages that are not built yet.
func (h *Handler) Placeholder(title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, "placeholder", title, nil, nil)
	}
}
