package departments

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	adminreports "finitefield.org/roster-admin/internal/admin/reports"
)

func TestIndexRendersSummaries(t *testing.T) {
	t.Parallel()

	svc, err := adminreports.NewSeededService()
	require.NoError(t, err)
	ctx := context.Background()

	data := Build("/admin", svc.Departments(ctx), svc.Reports(ctx))
	var buf bytes.Buffer
	require.NoError(t, Index(data).Render(ctx, &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	require.Equal(t, len(svc.UniqueDepartments(ctx)), doc.Find("[data-department]").Length())

	sales := doc.Find(`[data-department="Sales"]`)
	require.Equal(t, "4", sales.Find("[data-employee-count]").Text())
	require.Equal(t, "John Doe", sales.Find("[data-manager]").Text())
	require.Equal(t, "/admin/search?q=Sales", sales.Find("a").First().AttrOr("href", ""))
	require.Equal(t, []string{"Q1 Sales Report", "Growth Opportunities"}, sales.Find("[data-department-report]").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	}))

	analytics := doc.Find(`[data-department="Analytics"]`)
	require.Equal(t, "Unassigned", analytics.Find("[data-manager]").Text())
}

func TestBuildKeepsUnknownReportIDs(t *testing.T) {
	t.Parallel()

	data := Build("/", []adminreports.DepartmentSummary{{Name: "Ops", ReportIDs: []string{"rx"}}}, nil)
	require.Len(t, data.Cards, 1)
	require.Equal(t, "rx", data.Cards[0].Reports[0].Label)
	require.Equal(t, "/reports?report=rx", data.Cards[0].Reports[0].Href)
}
