package reports

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/orgchart"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
)

func seeded(t *testing.T) *adminreports.StaticService {
	t.Helper()
	svc, err := adminreports.NewSeededService()
	require.NoError(t, err)
	return svc
}

func TestBuildTablePaginates(t *testing.T) {
	t.Parallel()

	report := adminreports.Report{ID: "r9", Name: "Large"}
	employees := make([]adminreports.Employee, 0, 12)
	for i := 0; i < 12; i++ {
		employees = append(employees, adminreports.Employee{ID: string(rune('a' + i)), Name: "Employee"})
	}

	table := BuildTable("/admin", report, employees, QueryState{Page: 2, RawQuery: "region=na&page=2"})
	require.Len(t, table.Rows, 5)
	require.Equal(t, "f", table.Rows[0].ID)
	require.Equal(t, "/admin/reports?page=1&region=na&report=r9", table.Pagination.PrevHref)
	require.Equal(t, "/admin/reports/table?page=3&region=na&report=r9", table.Pagination.NextHxHref)

	last := BuildTable("/admin", report, employees, QueryState{Page: 99})
	require.Equal(t, 3, last.Pagination.Page, "out of range pages clamp to the last page")
	require.Len(t, last.Rows, 2)
	require.Empty(t, last.Pagination.NextHref)

	empty := BuildTable("/admin", report, nil, QueryState{Page: 4})
	require.Empty(t, empty.Rows)
	require.Equal(t, 1, empty.Pagination.Page)
	require.Empty(t, empty.Pagination.PrevHref, "an empty table has no previous page")
	require.Empty(t, empty.Pagination.NextHref)
}

func TestIndexListsReportsForRegion(t *testing.T) {
	t.Parallel()

	svc := seeded(t)
	ctx := requestContext(t, "/admin/reports?region=na")
	list := svc.ReportsByRegion(ctx, "na")
	regions := svc.Regions(ctx)

	doc := render(t, ctx, Index(PageData{
		Title:      "Reports",
		Query:      QueryState{Region: "na"},
		Tabs:       Tabs("/admin", TabReports),
		FilterPath: "/admin/reports",
		Regions:    RegionOptions(regions, "na"),
		Reports:    ReportOptions(list, ""),
		Cards:      Cards("/admin", regions, list, "na"),
	}))

	require.Equal(t, len(list), doc.Find("[data-report-card]").Length())
	card := doc.Find(`[data-report-card="r1"]`)
	require.Contains(t, card.Text(), "Q1 Sales Report")
	require.Equal(t, "/admin/reports?region=na&report=r1", card.AttrOr("href", ""))
	require.Equal(t, "na", doc.Find(`select[name="region"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "true", doc.Find(`[role="tab"][aria-selected="true"]`).First().AttrOr("aria-selected", ""))
	require.Contains(t, doc.Find(`[role="tab"][aria-selected="true"]`).Text(), "Reports")
}

func TestIndexEmptyRegion(t *testing.T) {
	t.Parallel()

	ctx := requestContext(t, "/admin/reports?region=apac")
	doc := render(t, ctx, Index(PageData{Title: "Reports", Tabs: Tabs("/admin", TabReports), FilterPath: "/admin/reports"}))
	require.Equal(t, "No reports available for the selected region.", strings.TrimSpace(doc.Find("[data-empty-state]").Text()))
}

func TestDetailRendersTableAndOrgChart(t *testing.T) {
	t.Parallel()

	svc := seeded(t)
	ctx := requestContext(t, "/admin/reports?report=r1")
	report, err := svc.Report(ctx, "r1")
	require.NoError(t, err)
	employees := svc.EmployeesByReport(ctx, "r1")
	nodes, err := orgchart.NewBuilder(svc).Build(ctx, report, employees)
	require.NoError(t, err)

	state := QueryState{ReportID: "r1", RawQuery: "report=r1"}
	detail := BuildDetail("/admin", svc.Regions(ctx), report, BuildTable("/admin", report, employees, state), nodes, nil, state)
	doc := render(t, ctx, Detail(*detail))

	require.Equal(t, "Q1 Sales Report", doc.Find("h2").First().Text())
	require.Equal(t, 3, doc.Find("#report-table [data-employee-row]").Length())
	require.Equal(t, "/admin/employees/e1", doc.Find(`[data-employee-row="e1"] a`).AttrOr("href", ""))
	require.Equal(t, 0, doc.Find("[data-pagination]").Length())

	chip := doc.Find(`[data-supervisor="John Doe"]`)
	require.Equal(t, "/admin/reports/supervisor?name=John+Doe", chip.AttrOr("hx-get", ""))
	require.Equal(t, "#supervisor-panel", chip.AttrOr("hx-target", ""))

	require.Equal(t, 2, doc.Find("[data-org-node]").Length())
	require.Equal(t, 2, doc.Find(`[data-org-node="sup1"] [data-org-child]`).Length())
	require.Equal(t, 0, doc.Find(`[data-org-child="e3"]`).Length())
	require.Equal(t, 0, doc.Find(`[role="alert"]`).Length())
}

func TestDetailShowsOrgError(t *testing.T) {
	t.Parallel()

	ctx := requestContext(t, "/admin/reports?report=r1")
	report := adminreports.Report{ID: "r1", Name: "Q1"}
	employees := []adminreports.Employee{{ID: "e1", Name: "Alice"}}
	detail := BuildDetail("/admin", nil, report, BuildTable("/admin", report, employees, QueryState{}), nil, errors.New("deadline exceeded"), QueryState{})

	doc := render(t, ctx, Detail(*detail))
	require.Contains(t, doc.Find(`[role="alert"]`).Text(), "deadline exceeded")
	require.Equal(t, "Unassigned", detail.RegionName)
}

func TestSupervisorCard(t *testing.T) {
	t.Parallel()

	svc := seeded(t)
	sup, err := svc.SupervisorByName(context.Background(), "John Doe")
	require.NoError(t, err)

	doc := render(t, context.Background(), SupervisorCard(sup))
	card := doc.Find("[data-supervisor-card]")
	require.Equal(t, sup.ID, card.AttrOr("data-supervisor-card", ""))
	require.Equal(t, "John Doe", card.Find("h4").Text())
	require.Contains(t, card.Text(), "Regional Sales Director")
	require.Equal(t, "JD", card.Find(`[aria-hidden="true"]`).Text())
}

func requestContext(t *testing.T, target string) context.Context {
	t.Helper()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware("/admin")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	require.NotNil(t, ctx)
	return ctx
}

func render(t *testing.T, ctx context.Context, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}
