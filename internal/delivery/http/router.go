package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/delivery/http/handlers"
	"mergingtonactivities/internal/delivery/http/middleware"
	"mergingtonactivities/internal/metrics"
)

// RouterConfig holds the dependencies of the HTTP surface. Metrics and
// Limiter are optional.
type RouterConfig struct {
	Logger         *slog.Logger
	Activities     *controllers.ActivityController
	Metrics        *metrics.Metrics
	Limiter        *middleware.ClientLimiter
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it in the middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Landing page
	mux.HandleFunc("GET /{$}", redirectToLandingPage)
	mux.HandleFunc("GET "+landingPage, indexHandler())
	mux.Handle("GET /static/", staticHandler())

	// API Routes
	mux.HandleFunc("GET /activities", cfg.Activities.ListActivities)
	mux.HandleFunc("POST /activities/{activityName}/signup", cfg.Activities.Signup)
	mux.HandleFunc("DELETE /activities/{activityName}/unregister", cfg.Activities.Unregister)
	mux.HandleFunc("GET /activities/{activityName}/history", cfg.Activities.History)

	// Ops
	mux.HandleFunc("GET /healthz", handlers.Health)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics sits outside CORS and the rate limiter so preflights and 429s are
	// counted. Everything between it and the mux passes the request through
	// unchanged, which keeps the matched pattern visible to it.
	handler := middleware.RateLimit(cfg.Limiter, mux)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	if cfg.Metrics != nil {
		handler = middleware.Metrics(cfg.Metrics, handler)
	}
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	return middleware.RequestID(handler)
}
