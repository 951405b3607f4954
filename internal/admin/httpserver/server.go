package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/content"
	"finitefield.org/roster-admin/internal/admin/export"
	custommw "finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/httpserver/ui"
	"finitefield.org/roster-admin/internal/admin/metrics"
	"finitefield.org/roster-admin/internal/admin/observability"
	"finitefield.org/roster-admin/internal/admin/orgchart"
	"finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/public"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	requestTimeout      = 60 * time.Second
)

// Config holds runtime options for the admin HTTP server.
type Config struct {
	Address      string
	BasePath     string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Reports  reports.Service
	OrgChart *orgchart.Builder
	Archiver export.Archiver
	Metrics  *metrics.Registry
	Content  *content.Library
	Logger   *zap.Logger
	Clock    func() time.Time
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	registry := cfg.Metrics
	if registry == nil {
		registry = metrics.New()
	}

	handlers, err := ui.NewHandlers(ui.Dependencies{
		Reports:  cfg.Reports,
		OrgChart: cfg.OrgChart,
		Archiver: cfg.Archiver,
		Metrics:  registry,
		Content:  cfg.Content,
		Logger:   logger,
		Clock:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("httpserver: wire handlers: %w", err)
	}
	service := cfg.Reports
	if service == nil {
		service = handlers.Service()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(registry.Middleware)
	router.Use(chimw.Timeout(requestTimeout))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	api := &apiHandlers{reports: service, started: now(), now: now}
	router.Get("/healthz", api.Health)
	router.Get("/api/supervisors", api.Supervisor)
	router.Handle("/metrics", registry.Handler())

	basePath := normalizeBasePath(cfg.BasePath)
	mountAdminRoutes(router, basePath, routeOptions{
		Handlers:    handlers,
		Environment: cfg.Environment,
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: durationOr(cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  60 * time.Second,
	}, nil
}

type routeOptions struct {
	Handlers    *ui.Handlers
	Environment string
}

func mountAdminRoutes(router chi.Router, base string, opts routeOptions) {
	h := opts.Handlers
	reportsPath := custommw.JoinBasePath(base, "/reports")
	redirectToReports := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, reportsPath, http.StatusFound)
	}
	router.Route(base, func(r chi.Router) {
		r.Use(custommw.RequestInfoMiddleware(base))
		r.Use(custommw.Environment(opts.Environment))
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())

		r.Get("/", redirectToReports)

		r.Get("/reports", h.ReportsPage)
		RegisterFragment(r, "/reports/table", h.ReportsTable)
		RegisterFragment(r, "/reports/supervisor", h.SupervisorProfile)
		r.Get("/incomplete-mappings", h.IncompleteMappingsPage)

		r.Get("/employees", h.EmployeesPage)
		r.Get("/employees/new", h.NewEmployeePage)
		r.Post("/employees", h.CreateEmployee)
		r.Get("/employees/{employeeID}", h.EmployeeDetail)

		r.Get("/departments", h.DepartmentsPage)
		r.Get("/search", h.SearchPage)
		RegisterFragment(r, "/search/results", h.SearchResults)
		r.Get("/about", h.AboutPage)

		r.Route("/actions", func(r chi.Router) {
			r.Post("/mappings", h.AddToReport)
			r.Post("/status", h.UpdateStatus)
			r.Post("/supervisors", h.AssignSupervisor)
		})

		r.Get("/export.csv", h.ExportCSV)
		r.Get("/export.xlsx", h.ExportXLSX)
	})
}

func normalizeBasePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "/admin"
	}
	return custommw.NormalizeBasePath(path)
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}
