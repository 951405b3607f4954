package ui

import (
	"time"

	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/content"
	"finitefield.org/roster-admin/internal/admin/export"
	"finitefield.org/roster-admin/internal/admin/metrics"
	"finitefield.org/roster-admin/internal/admin/observability"
	"finitefield.org/roster-admin/internal/admin/orgchart"
	"finitefield.org/roster-admin/internal/admin/reports"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Reports  reports.Service
	OrgChart *orgchart.Builder
	Archiver export.Archiver
	Metrics  *metrics.Registry
	Content  *content.Library
	Logger   *zap.Logger
	Clock    func() time.Time
}

// Handlers exposes HTTP handlers for admin UI pages, fragments and actions.
type Handlers struct {
	reports  reports.Service
	orgchart *orgchart.Builder
	archiver export.Archiver
	metrics  *metrics.Registry
	content  *content.Library
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandlers wires the UI handler set. Services left nil fall back to the embedded seed data.
func NewHandlers(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	service := deps.Reports
	if service == nil {
		seeded, err := reports.NewSeededService(reports.WithLogger(observability.Named(logger, "reports")))
		if err != nil {
			return nil, err
		}
		service = seeded
	}

	builder := deps.OrgChart
	if builder == nil {
		builder = orgchart.NewBuilder(service, orgchart.WithLogger(observability.Named(logger, "orgchart")))
	}

	library := deps.Content
	if library == nil {
		library = content.NewLibrary()
	}

	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	return &Handlers{
		reports:  service,
		orgchart: builder,
		archiver: deps.Archiver,
		metrics:  deps.Metrics,
		content:  library,
		logger:   logger,
		now:      now,
	}, nil
}

// Service returns the reports service the handlers read from.
func (h *Handlers) Service() reports.Service {
	return h.reports
}
