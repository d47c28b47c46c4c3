package server

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/backup"
	"github.com/AlexTLDR/wedding/internal/config"
	"github.com/AlexTLDR/wedding/internal/dashboard"
	"github.com/AlexTLDR/wedding/internal/directory"
	"github.com/AlexTLDR/wedding/internal/events"
	"github.com/AlexTLDR/wedding/internal/logger"
	"github.com/AlexTLDR/wedding/internal/proxy"
	"github.com/AlexTLDR/wedding/internal/requests"
	"github.com/AlexTLDR/wedding/internal/server/handlers"
)

const sessionName = "auth-session"

func init() {
	gob.Register(dashboard.Banner{})
}

type Server struct {
	config       *config.Config
	log          zerolog.Logger
	sessionStore *sessions.CookieStore
	router       *http.ServeMux

	api       *apiclient.Client
	bus       *events.Bus
	directory *directory.Directory
	roster    *directory.Roster
	requests  *requests.Service
	dashboard *dashboard.Dashboard
	gate      *dashboard.Gate
	backuper  *backup.Backuper

	stopWatchers []func()
}

// GetConfig implements handlers.Server interface
func (s *Server) GetConfig() *config.Config {
	return s.config
}

func (s *Server) GetAPI() *apiclient.Client {
	return s.api
}

func (s *Server) GetBus() *events.Bus {
	return s.bus
}

func (s *Server) GetDirectory() *directory.Directory {
	return s.directory
}

func (s *Server) GetRoster() *directory.Roster {
	return s.roster
}

func (s *Server) GetRequests() *requests.Service {
	return s.requests
}

func (s *Server) GetDashboard() *dashboard.Dashboard {
	return s.dashboard
}

// GetBackuper returns nil when no bucket is configured.
func (s *Server) GetBackuper() *backup.Backuper {
	return s.backuper
}

// GetCurrentUser implements handlers.AdminServer interface
func (s *Server) GetCurrentUser(r *http.Request) (string, string) {
	session, _ := s.sessionStore.Get(r, sessionName)
	email, _ := session.Values["email"].(string)
	name, _ := session.Values["name"].(string)
	return email, name
}

// AddFlash queues a banner for the next dashboard render.
func (s *Server) AddFlash(w http.ResponseWriter, r *http.Request, b dashboard.Banner) {
	session, _ := s.sessionStore.Get(r, sessionName)
	session.AddFlash(b)
	if err := session.Save(r, w); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to save flash")
	}
}

// Flashes returns and clears the queued banners.
func (s *Server) Flashes(w http.ResponseWriter, r *http.Request) []dashboard.Banner {
	session, _ := s.sessionStore.Get(r, sessionName)
	var banners []dashboard.Banner
	for _, f := range session.Flashes() {
		if b, ok := f.(dashboard.Banner); ok {
			banners = append(banners, b)
		}
	}
	if len(banners) > 0 {
		if err := session.Save(r, w); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to clear flashes")
		}
	}
	return banners
}

// New wires the server. store is the sheet client behind the /api routes.
// objects may be nil, which disables snapshots.
func New(cfg *config.Config, store proxy.Store, objects backup.ObjectStore, log zerolog.Logger) (*Server, error) {
	gate, err := dashboard.NewGate(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, err
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		config:       cfg,
		log:          log,
		sessionStore: sessionStore,
		router:       http.NewServeMux(),
		bus:          events.NewBus(),
		gate:         gate,
	}

	apiMux := http.NewServeMux()
	proxy.Register(apiMux, store, cfg.PhoneRegion, log)
	s.router.Handle("/api/", apiMux)

	// Pages use the same routes in process.
	s.api = apiclient.New("http://wedding.internal", &http.Client{Transport: apiclient.HandlerTransport(apiMux)})
	s.directory = directory.New(s.api, logger.Component(log, "directory"))
	s.roster = directory.NewRoster(s.api, logger.Component(log, "roster"))
	s.requests = requests.New(s.api, cfg.PhoneRegion, logger.Component(log, "requests"))
	s.dashboard = dashboard.New(s.api, s.requests, s.bus, logger.Component(log, "dashboard"))
	if objects != nil {
		s.backuper = backup.New(s.api, objects, cfg.Backup, logger.Component(log, "backup"))
	}

	s.stopWatchers = append(s.stopWatchers,
		s.directory.WatchRSVP(s.bus, cfg.RSVPRefreshDelay),
		s.roster.WatchEntourage(s.bus, cfg.EntourageRefreshDelay),
	)

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Public routes
	s.router.HandleFunc("GET /{$}", handlers.HandleHome(s))
	s.router.HandleFunc("GET /healthz", handlers.HandleHealth())
	s.router.HandleFunc("GET /rsvp", handlers.HandleRSVPSearch(s))
	s.router.HandleFunc("GET /rsvp/guest", handlers.HandleRSVPGuest(s))
	s.router.HandleFunc("POST /rsvp/submit", handlers.HandleRSVPSubmit(s))
	s.router.HandleFunc("GET /request", handlers.HandleRequestForm(s))
	s.router.HandleFunc("POST /request", handlers.HandleRequestSubmit(s))

	// Auth routes
	s.router.HandleFunc("GET /admin/login", s.handleLoginPage)
	s.router.HandleFunc("POST /admin/login", s.handlePasswordLogin)
	s.router.HandleFunc("/admin/logout", s.handleLogout)
	s.router.HandleFunc("GET /auth/google", s.handleGoogleLogin)
	s.router.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)

	// Admin routes (protected)
	s.router.HandleFunc("GET /admin", s.requireAuth(handlers.HandleAdminDashboard(s)))
	s.router.HandleFunc("POST /admin/{collection}/{op}", s.requireAuth(handlers.HandleAdminMutation(s)))
	s.router.HandleFunc("GET /admin/export.csv", s.requireAuth(handlers.HandleAdminDownloadCSV(s)))
	s.router.HandleFunc("GET /admin/export.xlsx", s.requireAuth(handlers.HandleAdminDownloadXLSX(s)))
	s.router.HandleFunc("POST /admin/backup", s.requireAuth(handlers.HandleAdminBackup(s)))
}

// Handler returns the router wrapped in the logging middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = requestID(h)
	h = hlog.NewHandler(s.log)(h)
	return h
}

// requestID tags the request logger with the incoming X-Request-ID or a new
// one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		log := hlog.FromRequest(r).With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.backuper != nil && s.config.Backup.Hour >= 0 {
		go s.backuper.Schedule(ctx, s.config.Backup.Hour, s.config.EventDate.Location())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	for _, stop := range s.stopWatchers {
		stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requireAuth is a middleware that checks if user is authenticated
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := s.sessionStore.Get(r, sessionName)

		if ok, _ := session.Values["admin"].(bool); ok {
			next(w, r)
			return
		}

		email, ok := session.Values["email"].(string)
		if !ok || email == "" {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		// Check if email is in whitelist
		if !s.isAdminEmail(email) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (s *Server) isAdminEmail(email string) bool {
	for _, adminEmail := range s.config.AdminEmails {
		if email == adminEmail {
			return true
		}
	}
	return false
}
