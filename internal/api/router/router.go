// Package router wires the HTTP routes and middleware stack.
package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/adaudit/adaudit/internal/api/handlers"
	"github.com/adaudit/adaudit/internal/api/middleware"
	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/metrics"
	"github.com/adaudit/adaudit/internal/pkg/validator"
)

// Config contains the dependencies of the router
type Config struct {
	DB              *sql.DB
	AnomalyService  anomaly.Service
	KPIService      kpi.Service
	AnalysisService analysis.Service
	Logger          *logger.Logger
	Version         string
	AllowedOrigins  []string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// New builds the HTTP handler with all routes and middleware
func New(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader, middleware.UserIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.RateLimitRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(rl.Handler)
	}

	v := validator.New()
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Version)
	anomalyHandler := handlers.NewAnomalyHandler(cfg.AnomalyService, v, cfg.Logger)
	kpiHandler := handlers.NewKPIHandler(cfg.KPIService, v, cfg.Logger)
	analysisHandler := handlers.NewAnalysisHandler(cfg.AnalysisService, cfg.Logger)

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.UserContext)

		r.Route("/anomalies", func(r chi.Router) {
			r.Post("/", anomalyHandler.Create)
			r.Get("/", anomalyHandler.List)
			r.Get("/summary", anomalyHandler.Summary)
			r.Get("/{id}", anomalyHandler.GetByID)
		})

		r.Route("/kpis", func(r chi.Router) {
			r.Post("/", kpiHandler.Record)
			r.Get("/", kpiHandler.List)
		})

		r.Route("/analysis", func(r chi.Router) {
			r.Get("/segments", analysisHandler.Segments)
			r.Get("/campaigns", analysisHandler.Campaigns)
			r.Get("/time-patterns", analysisHandler.TimePatterns)
			r.Get("/kpi-patterns", analysisHandler.KPIPatterns)
			r.Get("/metrics", analysisHandler.Metrics)
		})
	})

	return r
}
