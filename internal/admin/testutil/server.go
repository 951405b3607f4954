package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"finitefield.org/roster-admin/internal/admin/export"
	"finitefield.org/roster-admin/internal/admin/httpserver"
	"finitefield.org/roster-admin/internal/admin/metrics"
	"finitefield.org/roster-admin/internal/admin/reports"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the admin routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithReportsService wires a custom reports service implementation.
func WithReportsService(service reports.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Reports = service
	}
}

// WithArchiver archives every served export through archiver.
func WithArchiver(archiver export.Archiver) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Archiver = archiver
	}
}

// WithMetrics shares a metrics registry with the test.
func WithMetrics(registry *metrics.Registry) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Metrics = registry
	}
}

// WithClock pins the server clock.
func WithClock(now func() time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Clock = now
	}
}

// NewServer constructs an httptest server running the admin HTTP stack backed by
// a fresh copy of the seed data.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	service, err := reports.NewSeededService()
	if err != nil {
		t.Fatalf("seed reports service: %v", err)
	}

	cfg := httpserver.Config{
		Address:     ":0",
		BasePath:    "/admin",
		Environment: "Test",
		Reports:     service,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
