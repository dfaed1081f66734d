package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/placelist/placelist/internal/config"
	"github.com/placelist/placelist/internal/handler"
	"github.com/placelist/placelist/internal/metrics"
	"github.com/placelist/placelist/internal/middleware"
	"github.com/placelist/placelist/internal/service"
)

// Deps are the collaborators wired into the router.
type Deps struct {
	Users   *service.UserService
	Places  *service.PlaceService
	Reviews *service.ReviewService
	Lists   *service.ListService

	Tokens middleware.TokenVerifier

	DB handler.HealthChecker
	// Cache and Limiter are nil when Redis is not configured.
	Cache   handler.HealthChecker
	Limiter middleware.IPRateLimiter

	Metrics metrics.Recorder
	// MetricsHandler serves /metrics. Nil leaves the route unregistered.
	MetricsHandler http.Handler

	Logger *slog.Logger
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(deps Deps, cfg *config.Config) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := handler.New()
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Cache)
	authHandler := handler.NewAuthHandler(deps.Users, logger)
	placeHandler := handler.NewPlaceHandler(deps.Places, logger)
	reviewHandler := handler.NewReviewHandler(deps.Reviews, logger)
	listHandler := handler.NewListHandler(deps.Lists, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, deps.Metrics))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/", h.Home)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	requireToken := middleware.Auth(middleware.AuthConfig{
		Logger:       logger,
		Tokens:       deps.Tokens,
		StrictErrors: cfg.StrictTokenErrors,
	})

	authLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  logger,
		Limiter: deps.Limiter,
		Metrics: deps.Metrics,
		Enabled: cfg.RateLimitEnabled,
		Scope:   "auth",
		RPS:     cfg.RateLimitAuthRPS,
		Burst:   cfg.RateLimitAuthBurst,
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireJSON)

		r.With(authLimit).Post("/register", authHandler.Register)
		r.With(authLimit).Post("/login", authHandler.Login)

		r.Post("/place-data", placeHandler.Create)
		r.Get("/places", placeHandler.List)
		r.Get("/place/{id}", placeHandler.Get)
		r.Put("/place/{id}", placeHandler.Update)

		r.Post("/review", reviewHandler.Add)
		r.Get("/reviews/{place_id}", reviewHandler.ListByPlace)

		r.Route("/lists", func(r chi.Router) {
			r.With(requireToken).Get("/", listHandler.Mine)
			r.With(requireToken).Post("/", listHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", listHandler.Get)
				r.Get("/places", listHandler.Places)
				r.Get("/users", listHandler.Users)

				r.Group(func(r chi.Router) {
					r.Use(requireToken)
					r.Post("/places", listHandler.AddPlace)
					r.Delete("/places/{place_id}", listHandler.RemovePlace)
					r.Post("/users", listHandler.AddMember)
					r.Delete("/users/{user_id}", listHandler.RemoveMember)
				})
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
