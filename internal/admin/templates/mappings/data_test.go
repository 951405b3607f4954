package mappings

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	adminmappings "finitefield.org/roster-admin/internal/admin/mappings"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
)

func TestSortedOptionsCollates(t *testing.T) {
	t.Parallel()

	opts := SortedOptions([]string{"sales", "Analytics", "Customer Support", "finance"}, "finance", "All Departments")
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, o.Label)
	}
	require.Equal(t, []string{"All Departments", "Analytics", "Customer Support", "finance", "sales"}, labels)
	require.False(t, opts[0].Selected)
	require.True(t, opts[3].Selected)
}

func TestBuildContentRendersCards(t *testing.T) {
	t.Parallel()

	ds, err := adminreports.SeedDataset()
	require.NoError(t, err)

	state := QueryState{Department: "Sales", RawQuery: "department=Sales&position=all"}
	found := adminmappings.FindSingleFiltered(ds.Reports, ds.Employees, state.Filter())
	data := BuildContent("/admin", "/admin/incomplete-mappings", nil, state,
		[]string{"Sales", "Finance"}, []string{"Sales Manager"}, ds.Reports, found)

	require.Equal(t, 3, data.Total, "e1, e2 and e11 are single-mapped Sales employees")
	require.Len(t, data.Active, 1)
	require.Equal(t, "/admin/incomplete-mappings?position=all", data.Active[0].RemoveHref)
	require.Equal(t, "/admin/incomplete-mappings", data.ClearHref)
	require.Equal(t, "/admin/actions/mappings", data.ActionURL)

	var buf bytes.Buffer
	require.NoError(t, Content(data).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	require.Equal(t, 3, doc.Find("[data-employee-card]").Length())
	first := doc.Find(`[data-employee-card="e1"]`)
	require.Equal(t, "Q1 Sales Report", first.Find("[data-current-report]").Text())
	require.Equal(t, 5, first.Find(`select[name="reportId"] option`).Length(), "placeholder plus r2..r5")
	require.Equal(t, "/admin/actions/mappings", first.Find("form").AttrOr("hx-post", ""))
	require.Equal(t, "Sales", doc.Find(`select[name="department"] option[selected]`).AttrOr("value", ""))
}

func TestBuildContentEmptyWithFilters(t *testing.T) {
	t.Parallel()

	data := BuildContent("/admin", "/admin/reports", []HiddenField{{Name: "tab", Value: "incomplete-mappings"}},
		QueryState{ReportID: "r9", RawQuery: "tab=incomplete-mappings&report=r9"}, nil, nil, nil, nil)

	require.Equal(t, "No employees match the selected filters.", data.EmptyMessage)
	require.Equal(t, "r9", data.Active[0].Value)
	require.Equal(t, "/admin/reports?tab=incomplete-mappings", data.ClearHref)

	var buf bytes.Buffer
	require.NoError(t, Content(data).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, "incomplete-mappings", doc.Find(`input[type="hidden"][name="tab"]`).AttrOr("value", ""))
	require.Equal(t, 1, doc.Find("[data-empty-state]").Length())
}
