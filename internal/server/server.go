package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/chorechart/internal/handler"
	"github.com/dukerupert/chorechart/internal/middleware"
	"github.com/dukerupert/chorechart/internal/service"
	ws "github.com/dukerupert/chorechart/internal/websocket"
)

const (
	loginLimit  = 10
	loginWindow = time.Minute
)

type Options struct {
	Location    *time.Location
	CORSOrigins []string
	// Now overrides the service clock; nil uses time.Now.
	Now func() time.Time
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	svc         *service.Service
	householdH  *handler.HouseholdHandler
	childH      *handler.ChildHandler
	calendarH   *handler.CalendarHandler
	choreH      *handler.ChoreHandler
	rateLimiter *middleware.RateLimiter
	corsOrigins []string
	logger      *slog.Logger
}

func New(db *sql.DB, opts Options, logger *slog.Logger) *Server {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	hub := ws.NewHub(logger.With("component", "websocket"))
	svc := service.New(db, loc, logger.With("component", "service"))
	if opts.Now != nil {
		svc = svc.WithClock(opts.Now)
	}

	return &Server{
		db:          db,
		hub:         hub,
		svc:         svc,
		householdH:  handler.NewHouseholdHandler(svc, logger.With("component", "household")),
		childH:      handler.NewChildHandler(svc, logger.With("component", "child")),
		calendarH:   handler.NewCalendarHandler(svc, hub, logger.With("component", "calendar")),
		choreH:      handler.NewChoreHandler(svc, hub, logger.With("component", "chore")),
		rateLimiter: middleware.NewRateLimiter(),
		corsOrigins: opts.CORSOrigins,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	// Households and login
	mux.HandleFunc("POST /households", s.householdH.Create)
	mux.HandleFunc("POST /login/parent", s.rateLimitedHandler(s.householdH.LoginParent))
	mux.HandleFunc("POST /login/child", s.rateLimitedHandler(s.householdH.LoginChild))
	mux.HandleFunc("GET /parent-overview", s.householdH.ParentOverview)

	// Children
	mux.HandleFunc("GET /children", s.childH.List)
	mux.HandleFunc("GET /children/{id}", s.childH.Get)
	mux.HandleFunc("GET /children/{id}/today-chores", s.childH.TodayChores)
	mux.HandleFunc("GET /children/{id}/calendar", s.childH.Calendar)

	// Calendar
	mux.HandleFunc("GET /today", s.calendarH.Today)
	mux.HandleFunc("GET /calendar/{id}", s.calendarH.Get)
	mux.HandleFunc("PUT /calendar/{id}/complete", s.calendarH.Complete)

	// Chores
	mux.HandleFunc("GET /chores", s.choreH.List)
	mux.HandleFunc("POST /chores", s.choreH.Create)
	mux.HandleFunc("GET /chores/active", s.choreH.Active)
	mux.HandleFunc("GET /chores/inactive", s.choreH.Inactive)
	mux.HandleFunc("GET /chores/{id}", s.choreH.Get)
	mux.HandleFunc("PUT /chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /chores/{id}", s.choreH.Delete)

	var h http.Handler = mux
	h = middleware.CORS(s.corsOrigins)(h)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, loginLimit, loginWindow)
	return rl(h).ServeHTTP
}
