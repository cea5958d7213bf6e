package api

import (
	"log/slog"
	"net/http"
	"time"

	"risk-dashboard/internal/api/handler"
	mw "risk-dashboard/internal/api/middleware"
	"risk-dashboard/internal/config"
	"risk-dashboard/internal/domain/customer"

	_ "risk-dashboard/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter wires every HTTP route. The caller keeps ownership of limiter
// and closes it after the server stops.
func SetupRouter(customerService customer.CustomerService, cfg *config.Config, limiter mw.RateLimiter, logger *slog.Logger) *chi.Mux {
	if limiter == nil {
		panic("rate limiter cannot be nil")
	}
	router := chi.NewRouter()

	setupMiddleware(router, limiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	router.Route("/api", func(r chi.Router) {
		setupCustomerRoutes(r, customerService, logger)
		setupDashboardRoutes(r, customerService, logger)
	})

	return router
}

func setupMiddleware(router *chi.Mux, limiter mw.RateLimiter, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(limiter.Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupCustomerRoutes(r chi.Router, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Route("/{customerId}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateStatus)
			r.Get("/risk", h.GetRisk)
		})
	})
}

func setupDashboardRoutes(r chi.Router, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewDashboardHandler(svc, logger)

	r.Get("/dashboard/summary", h.Summary)
}
