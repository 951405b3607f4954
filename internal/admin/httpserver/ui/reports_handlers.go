package ui

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	adminmappings "finitefield.org/roster-admin/internal/admin/mappings"
	"finitefield.org/roster-admin/internal/admin/observability"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	mappingstpl "finitefield.org/roster-admin/internal/admin/templates/mappings"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
	reportstpl "finitefield.org/roster-admin/internal/admin/templates/reports"
)

// ReportsPage renders the reports overview, the selected report, or the incomplete mappings tab.
func (h *Handlers) ReportsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := buildReportsQuery(r)
	basePath := custommw.BasePathFromContext(ctx)

	page := reportstpl.PageData{
		Title:       "Reports",
		Description: "Browse reports by region, inspect assigned employees and the organizational chart.",
		Breadcrumbs: []partials.Breadcrumb{{Label: "Reports"}},
		Query:       state,
		Tabs:        reportstpl.Tabs(basePath, state.Tab),
		FilterPath:  joinBasePath(basePath, "/reports"),
	}

	if state.Tab == reportstpl.TabIncomplete {
		mstate := buildMappingsQuery(r)
		hidden := []mappingstpl.HiddenField{{Name: "tab", Value: reportstpl.TabIncomplete}}
		content := h.mappingsContent(ctx, basePath, joinBasePath(basePath, "/reports"), hidden, mstate)
		page.Incomplete = &content
		templ.Handler(reportstpl.Index(page)).ServeHTTP(w, r)
		return
	}

	status := http.StatusOK
	regions := h.reports.Regions(ctx)
	list := h.reports.ReportsByRegion(ctx, state.Region)
	page.Regions = reportstpl.RegionOptions(regions, state.Region)
	page.Reports = reportstpl.ReportOptions(list, state.ReportID)
	page.Cards = reportstpl.Cards(basePath, regions, list, state.Region)

	if state.ReportID != "" {
		report, err := h.reports.Report(ctx, state.ReportID)
		switch {
		case err == nil:
			page.Detail = h.reportDetail(ctx, basePath, regions, report, state)
			page.Title = report.Name
			page.Breadcrumbs = []partials.Breadcrumb{
				{Label: "Reports", Href: joinBasePath(basePath, "/reports")},
				{Label: report.Name},
			}
		case errors.Is(err, adminreports.ErrReportNotFound):
			page.NotFound = true
			status = http.StatusNotFound
		default:
			observability.FromContext(ctx).Error("reports: load report failed", zap.String("report_id", state.ReportID), zap.Error(err))
			page.NotFound = true
		}
	}

	templ.Handler(reportstpl.Index(page), templ.WithStatus(status)).ServeHTTP(w, r)
}

// ReportsTable renders one page of the selected report's employees for htmx requests.
func (h *Handlers) ReportsTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := buildReportsQuery(r)
	basePath := custommw.BasePathFromContext(ctx)

	report, err := h.reports.Report(ctx, state.ReportID)
	if err != nil {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	table := reportstpl.BuildTable(basePath, report, h.reports.EmployeesByReport(ctx, report.ID), state)
	canonical := helpers.BuildURL(joinBasePath(basePath, "/reports"), state.RawQuery)
	w.Header().Set("HX-Push-Url", canonical)
	templ.Handler(reportstpl.Table(table)).ServeHTTP(w, r)
}

// SupervisorProfile renders the supervisor profile fragment shown from a report's supervisor chips.
func (h *Handlers) SupervisorProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Supervisor name is required", http.StatusBadRequest)
		return
	}

	sup, err := h.reports.SupervisorByName(ctx, name)
	if err != nil {
		if !errors.Is(err, adminreports.ErrSupervisorNotFound) {
			observability.FromContext(ctx).Error("reports: supervisor lookup failed", zap.String("name", name), zap.Error(err))
		}
		templ.Handler(reportstpl.SupervisorMissing(name), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
		return
	}
	templ.Handler(reportstpl.SupervisorCard(sup)).ServeHTTP(w, r)
}

// IncompleteMappingsPage renders the standalone incomplete mappings page.
func (h *Handlers) IncompleteMappingsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	basePath := custommw.BasePathFromContext(ctx)
	state := buildMappingsQuery(r)

	page := mappingstpl.PageData{
		Title:       "Incomplete Mappings",
		Description: "Employees who are currently mapped to only one report. Add them to additional reports to complete their mappings.",
		Breadcrumbs: []partials.Breadcrumb{
			{Label: "Reports", Href: joinBasePath(basePath, "/reports")},
			{Label: "Incomplete Mappings"},
		},
		Content: h.mappingsContent(ctx, basePath, joinBasePath(basePath, "/incomplete-mappings"), nil, state),
	}
	templ.Handler(mappingstpl.Index(page)).ServeHTTP(w, r)
}

func (h *Handlers) reportDetail(ctx context.Context, basePath string, regions []adminreports.Region, report adminreports.Report, state reportstpl.QueryState) *reportstpl.DetailData {
	employees := h.reports.EmployeesByReport(ctx, report.ID)
	table := reportstpl.BuildTable(basePath, report, employees, state)

	nodes, err := h.orgchart.Build(ctx, report, employees)
	if err != nil {
		observability.FromContext(ctx).Warn("reports: org chart build failed", zap.String("report_id", report.ID), zap.Error(err))
	}
	return reportstpl.BuildDetail(basePath, regions, report, table, nodes, err, state)
}

func (h *Handlers) mappingsContent(ctx context.Context, basePath, filterPath string, hidden []mappingstpl.HiddenField, state mappingstpl.QueryState) mappingstpl.ContentData {
	snapshot := h.reports.Snapshot(ctx)
	found := adminmappings.FindSingleFiltered(snapshot.Reports, snapshot.Employees, state.Filter())
	return mappingstpl.BuildContent(basePath, filterPath, hidden, state,
		h.reports.UniqueDepartments(ctx), h.reports.UniquePositions(ctx), snapshot.Reports, found)
}

func buildReportsQuery(r *http.Request) reportstpl.QueryState {
	values := r.URL.Query()
	tab := strings.TrimSpace(values.Get("tab"))
	if tab != reportstpl.TabIncomplete {
		tab = reportstpl.TabReports
	}
	return reportstpl.QueryState{
		Region:   strings.TrimSpace(values.Get("region")),
		ReportID: strings.TrimSpace(values.Get("report")),
		Tab:      tab,
		Page:     parsePositiveIntDefault(values.Get("page"), 1),
		RawQuery: r.URL.RawQuery,
	}
}

func buildMappingsQuery(r *http.Request) mappingstpl.QueryState {
	values := r.URL.Query()
	return mappingstpl.QueryState{
		Department: strings.TrimSpace(values.Get(mappingstpl.ParamDepartment)),
		Position:   strings.TrimSpace(values.Get(mappingstpl.ParamPosition)),
		ReportID:   strings.TrimSpace(values.Get(mappingstpl.ParamReport)),
		RawQuery:   r.URL.RawQuery,
	}
}
