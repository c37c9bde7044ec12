package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"appointments-system/appointment"
	"appointments-system/metrics"
	"appointments-system/notification"
	"appointments-system/scheduling"
	"appointments-system/user"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type API struct {
	root   *mux.Router
	router *mux.Router
	db     *sql.DB

	users         *user.Accessor
	notifications *notification.Accessor
	appointments  *scheduling.Service
	metrics       *metrics.Collector

	log          *zap.Logger
	filesBaseURL string
	now          func() time.Time
}

type Option func(*API)

func WithLogger(log *zap.Logger) Option {
	return func(a *API) { a.log = log }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(a *API) { a.metrics = c }
}

// WithFilesBaseURL sets the prefix used to render avatar URLs.
func WithFilesBaseURL(u string) Option {
	return func(a *API) { a.filesBaseURL = u }
}

// WithClock overrides the time source handed to the scheduling rules.
func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

func NewAPI(db *sql.DB, opts ...Option) *API {
	r := mux.NewRouter()
	a := &API{
		root:   r,
		router: r.PathPrefix("/api").Subrouter(),
		db:     db,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.metrics == nil {
		a.metrics = metrics.NewCollector(prometheus.NewRegistry())
	}

	a.users = user.NewAccessor(db)
	a.notifications = notification.NewAccessor(db)
	a.appointments = scheduling.NewService(a.users, appointment.NewAccessor(db), a.notifications, a.metrics, a.log)
	return a
}

func (a *API) Router() *mux.Router {
	return a.root
}

func (a *API) Handler() http.Handler {
	// Use Gorilla's built-in logging handler
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{a.log}), handlers.PrintRecoveryStack(false))
	return handlers.LoggingHandler(os.Stdout, recovery(a.root))
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		a.log.Error("encode response", zap.Error(err))
	}
}

func (a *API) RegisterRoutes() {
	a.root.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)

	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)

	a.router.HandleFunc("/users", a.createUser).Methods(http.MethodPost)
	a.router.HandleFunc("/users", a.getUsers).Methods(http.MethodGet)
	a.router.HandleFunc("/users/me/avatar", a.authenticated(a.setAvatar)).Methods(http.MethodPut)
	a.router.HandleFunc("/users/{id}", a.getUser).Methods(http.MethodGet)
	a.router.HandleFunc("/providers", a.getProviders).Methods(http.MethodGet)

	a.router.HandleFunc("/appointments", a.authenticated(a.listAppointments)).Methods(http.MethodGet)
	a.router.HandleFunc("/appointments", a.authenticated(a.createAppointment)).Methods(http.MethodPost)
	a.router.HandleFunc("/appointments/{id}", a.authenticated(a.cancelAppointment)).Methods(http.MethodDelete)

	a.router.HandleFunc("/notifications", a.authenticated(a.listNotifications)).Methods(http.MethodGet)
	a.router.HandleFunc("/notifications/{id}", a.authenticated(a.markNotificationRead)).Methods(http.MethodPut)
}

type recoveryLogger struct {
	log *zap.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error("panic recovered", zap.Any("panic", v))
}
