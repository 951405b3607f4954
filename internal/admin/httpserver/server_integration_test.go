package httpserver_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/roster-admin/internal/admin/export"
	"finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/testutil"
)

var noRedirect = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func TestBasePathRedirectsToReports(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	for _, path := range []string{"/admin", "/admin/"} {
		resp, err := noRedirect.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode, path)
		require.Equal(t, "/admin/reports", resp.Header.Get("Location"), path)
	}
}

func TestReportsPageRendersSelectedReport(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/admin/reports?report=r1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store, max-age=0", resp.Header.Get("Cache-Control"))

	doc := testutil.ParseResponse(t, resp)
	require.Equal(t, "Q1 Sales Report | Report Admin", doc.Find("title").First().Text())
	require.Equal(t, "Q1 Sales Report", strings.TrimSpace(doc.Find("[data-report-detail] h2").First().Text()))
	require.Equal(t, 3, doc.Find("tr[data-employee-row]").Length())
	require.Equal(t, 1, doc.Find("[data-org-chart]").Length())
}

func TestReportsPageUnknownReport(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/admin/reports?report=missing")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	doc := testutil.ParseResponse(t, resp)
	require.Contains(t, doc.Text(), "The selected report could not be found.")
	require.Greater(t, doc.Find("a[data-report-card]").Length(), 0)
}

func TestReportTableFragmentRequiresHTMX(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/admin/reports/table?report=r1")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/admin/reports/table?report=r1&page=1", nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/admin/reports?report=r1&page=1", resp.Header.Get("HX-Push-Url"))

	doc := testutil.ParseResponse(t, resp)
	require.Equal(t, 1, doc.Find("#report-table").Length())
	require.Equal(t, 0, doc.Find("html head title").Length())
}

func TestSupervisorAPI(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/api/supervisors?name=" + url.QueryEscape("John Doe"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var sup reports.Supervisor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sup))
	require.Equal(t, "sup1", sup.ID)
	require.Equal(t, "Sales", sup.Department)

	cases := map[string]struct {
		status int
		body   string
	}{
		"":           {http.StatusBadRequest, "Supervisor name is required"},
		"john doe":   {http.StatusNotFound, "Supervisor not found"},
		" John Doe ": {http.StatusNotFound, "Supervisor not found"},
		"   ":        {http.StatusNotFound, "Supervisor not found"},
	}
	for name, want := range cases {
		resp, err := http.Get(ts.URL + "/api/supervisors?name=" + url.QueryEscape(name))
		require.NoError(t, err)
		var payload struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		resp.Body.Close()
		require.Equal(t, want.status, resp.StatusCode, name)
		require.Equal(t, want.body, payload.Error, name)
	}
}

func TestAddToReportAction(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	post := func(t *testing.T, body string) (int, reports.ActionResult) {
		t.Helper()
		resp, err := http.Post(ts.URL+"/admin/actions/mappings", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		var result reports.ActionResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		return resp.StatusCode, result
	}

	status, result := post(t, `{"employeeId":"e1","reportId":"r3"}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, result.Success)

	status, result = post(t, `{"employeeId":"e1","reportId":"r3"}`)
	require.Equal(t, http.StatusConflict, status)
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)

	status, _ = post(t, `{"employeeId":"e1","reportId":"nope"}`)
	require.Equal(t, http.StatusNotFound, status)

	status, result = post(t, `{"employeeId":"","reportId":"r3"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Employee and report are required", result.Error)

	status, result = post(t, `{`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid request body", result.Error)

	resp, err := http.Get(ts.URL + "/admin/incomplete-mappings")
	require.NoError(t, err)
	doc := testutil.ParseResponse(t, resp)
	require.Equal(t, 10, doc.Find("[data-employee-card]").Length())

	resp, err = http.Get(ts.URL + "/admin/reports?report=r3")
	require.NoError(t, err)
	doc = testutil.ParseResponse(t, resp)
	require.Equal(t, 1, doc.Find(`tr[data-employee-row="e1"]`).Length())
}

func TestAddToReportActionFromHTMXForm(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	form := url.Values{"employeeId": {"e2"}, "reportId": {"r4"}}
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/admin/actions/mappings", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trigger map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get("HX-Trigger")), &trigger))
	require.Contains(t, trigger, "toast")
	require.Contains(t, trigger, "mappings:changed")
}

func TestStatusAndSupervisorActions(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Post(ts.URL+"/admin/actions/status", "application/json",
		strings.NewReader(`[{"employeeId":"e1","isActive":false,"reportId":"r1"}]`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.PostForm(ts.URL+"/admin/actions/status", url.Values{"employeeId": {"e1"}, "reportId": {"r1"}, "isActive": {"maybe"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.PostForm(ts.URL+"/admin/actions/supervisors", url.Values{"employeeId": {"e1"}, "supervisorId": {"sup2"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.PostForm(ts.URL+"/admin/actions/supervisors", url.Values{"employeeId": {"e1"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := noRedirect.PostForm(ts.URL+"/admin/employees", url.Values{
		"name":       {"Nina Patel"},
		"email":      {"nina.patel@example.com"},
		"position":   {"Analyst"},
		"department": {"Analytics"},
		"reportId":   {"r2"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/admin/employees/"), location)

	resp, err = http.Get(ts.URL + location)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseResponse(t, resp)
	require.Equal(t, "Nina Patel", strings.TrimSpace(doc.Find("[data-employee-detail] h2").First().Text()))
	require.Equal(t, 1, doc.Find(`[data-member-of="r2"]`).Length())

	resp, err = http.PostForm(ts.URL+"/admin/employees", url.Values{"email": {"not-an-email"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc = testutil.ParseResponse(t, resp)
	require.Equal(t, "This field is required.", strings.TrimSpace(doc.Find(`[data-field-error="name"]`).Text()))
	require.Equal(t, "Enter a valid email address.", strings.TrimSpace(doc.Find(`[data-field-error="email"]`).Text()))
}

func TestEmployeeDetailNotFound(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/admin/employees/e999")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPageHeadings(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	cases := map[string]string{
		"/admin/reports":             "Reports",
		"/admin/incomplete-mappings": "Incomplete Mappings",
		"/admin/employees":           "Employees",
		"/admin/employees/new":       "Add Employee",
		"/admin/departments":         "Departments",
		"/admin/search?q=sales":      "Search Results",
	}
	for path, heading := range cases {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		doc := testutil.ParseResponse(t, resp)
		require.Equal(t, heading, strings.TrimSpace(doc.Find("h1").First().Text()), path)
	}

	resp, err := http.Get(ts.URL + "/admin/about")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseResponse(t, resp)
	require.Equal(t, 1, doc.Find("article[data-content-page]").Length())
}

func TestSearchResultsFragment(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/admin/search/results?q=analy", nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/admin/search?q=analy", resp.Header.Get("HX-Push-Url"))

	doc := testutil.ParseResponse(t, resp)
	require.Greater(t, doc.Find("[data-search-results] a[data-employee]").Length(), 0)
	require.Greater(t, doc.Find("mark").Length(), 0)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	type archivedExport struct {
		format export.Format
		size   int
	}
	archived := make(chan archivedExport, 1)
	archiver := export.ArchiverFunc(func(_ context.Context, format export.Format, data []byte) (string, error) {
		archived <- archivedExport{format: format, size: len(data)}
		return "exports/test.csv", nil
	})
	ts := testutil.NewServer(t,
		testutil.WithArchiver(archiver),
		testutil.WithClock(func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }),
	)

	resp, err := http.Get(ts.URL + "/admin/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	require.Equal(t, `attachment; filename="employee-report-mappings-2024-03-15.csv"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 12)

	select {
	case got := <-archived:
		require.Equal(t, export.FormatCSV, got.format)
		require.Equal(t, len(body), got.size)
	case <-time.After(2 * time.Second):
		t.Fatal("export was not archived")
	}
}

func TestExportXLSX(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/admin/export.xlsx")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx is a zip container")
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	require.Equal(t, "ok", health["status"])
	require.EqualValues(t, 5, health["reports"])
	require.EqualValues(t, 13, health["employees"])

	resp, err = http.Post(ts.URL+"/admin/actions/mappings", "application/json", strings.NewReader(`{"employeeId":"e12","reportId":"r2"}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `report_admin_mapping_actions_total{result="success"} 1`)
	require.Contains(t, string(body), `report_admin_http_request_duration_seconds_count{code="200",route="/healthz"} 1`)
}

func TestStaticAssets(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/public/static/admin.css")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCustomBasePath(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithBasePath("/ops/"))

	resp, err := http.Get(ts.URL + "/ops/employees")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseResponse(t, resp)
	href, ok := doc.Find("a[data-employee]").First().Attr("href")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(href, "/ops/employees/"), href)
}
