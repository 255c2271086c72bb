// Package server assembles the HTTP routes and middleware chain.
package server

import (
	"net/http"

	"github.com/HammerMeetNail/dailycheck/internal/config"
	"github.com/HammerMeetNail/dailycheck/internal/handlers"
	"github.com/HammerMeetNail/dailycheck/internal/journal"
	"github.com/HammerMeetNail/dailycheck/internal/logging"
	"github.com/HammerMeetNail/dailycheck/internal/metrics"
	"github.com/HammerMeetNail/dailycheck/internal/middleware"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

// Deps is everything the router wires together. Redis may be nil when
// sessions are kept in memory.
type Deps struct {
	Config    *config.Config
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
	Store     *journal.QuestionStore
	Customize *journal.CustomizeView
	Daily     *journal.JournalView
	Auth      services.AuthServiceInterface
	Garmin    services.GarminAuthServiceInterface
	CheckIns  services.CheckInServiceInterface
	Data      services.MockDataServiceInterface
	Counter   middleware.Counter
	Redis     handlers.HealthChecker
}

func NewRouter(d Deps) http.Handler {
	healthHandler := handlers.NewHealthHandler(d.Store, d.Redis)
	authHandler := handlers.NewAuthHandler(d.Auth, d.Garmin, d.Config.Server.Secure)
	journalHandler := handlers.NewJournalHandler(d.Store, d.Customize, d.Daily, d.CheckIns, d.Metrics)
	eventsHandler := handlers.NewEventsHandler(d.Store, d.Metrics.EventSubscribers, d.Config.Server.AllowedOrigins)
	statsHandler := handlers.NewStatsHandler(d.Data)

	authMiddleware := middleware.NewAuthMiddleware(d.Auth)
	loginLimiter := middleware.NewLoginRateLimiter(d.Counter, d.Config.Auth.LoginRateLimit, d.Config.Server.TrustProxy)
	requireAuth := authMiddleware.RequireAuth

	mux := http.NewServeMux()

	// Health and metrics endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	// Auth endpoints
	mux.Handle("POST /api/auth/login", loginLimiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/garmin", loginLimiter.Limit(http.HandlerFunc(authHandler.Garmin)))
	mux.HandleFunc("GET /api/auth/garmin/callback", authHandler.GarminCallback)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// Journal endpoints
	mux.Handle("GET /api/journal/questions", requireAuth(http.HandlerFunc(journalHandler.Questions)))
	mux.Handle("GET /api/journal/questions/active", requireAuth(http.HandlerFunc(journalHandler.ActiveQuestions)))
	mux.Handle("POST /api/journal/questions/{id}/toggle", requireAuth(http.HandlerFunc(journalHandler.Toggle)))
	mux.Handle("GET /api/journal/events", requireAuth(eventsHandler.Handler()))
	mux.Handle("POST /api/journal/checkins", requireAuth(http.HandlerFunc(journalHandler.SubmitCheckIn)))
	mux.Handle("GET /api/journal/checkins/latest", requireAuth(http.HandlerFunc(journalHandler.LatestCheckIn)))

	// Dashboard, experiments and social endpoints
	mux.Handle("GET /api/stats", requireAuth(http.HandlerFunc(statsHandler.Stats)))
	mux.Handle("GET /api/stats/charts/{metric}", requireAuth(http.HandlerFunc(statsHandler.Chart)))
	mux.Handle("GET /api/stats/health-factors", requireAuth(http.HandlerFunc(statsHandler.HealthFactors)))
	mux.Handle("GET /api/experiments", requireAuth(http.HandlerFunc(statsHandler.Experiments)))
	mux.Handle("GET /api/users/following", requireAuth(http.HandlerFunc(statsHandler.Following)))
	mux.Handle("GET /api/users/search", requireAuth(http.HandlerFunc(statsHandler.SearchUsers)))

	// Build middleware chain (order matters: outermost last). Request metrics
	// sit directly on the mux so they see the routed pattern.
	var handler http.Handler = mux
	handler = middleware.NewRequestMetrics(d.Metrics).Apply(handler)
	handler = authMiddleware.Authenticate(handler)
	handler = middleware.NewSecurityHeaders(d.Config.Server.Secure).Apply(handler)
	handler = middleware.NewCORS(d.Config.Server.AllowedOrigins)(handler)
	handler = middleware.NewRequestLogger(d.Logger, d.Config.Server.TrustProxy).Apply(handler)
	return handler
}
