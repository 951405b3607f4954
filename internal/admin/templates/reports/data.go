package reports

import (
	"fmt"
	"strconv"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/orgchart"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	mappingstpl "finitefield.org/roster-admin/internal/admin/templates/mappings"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// PageSize is the number of employees shown per page of the report table.
const PageSize = 5

// TableID is the DOM id of the swappable employees table.
const TableID = "report-table"

// Tab names.
const (
	TabReports    = "reports"
	TabIncomplete = "incomplete-mappings"
)

// QueryState captures the reports page query string.
type QueryState struct {
	Region   string
	ReportID string
	Tab      string
	Page     int
	RawQuery string
}

// PageData is the payload for the reports page.
type PageData struct {
	Title       string
	Description string
	Breadcrumbs []partials.Breadcrumb
	Query       QueryState
	Tabs        []TabLink
	FilterPath  string
	Regions     []Option
	Reports     []Option
	Cards       []ReportCard
	Detail      *DetailData
	Incomplete  *mappingstpl.ContentData
	NotFound    bool
}

// TabLink is one entry of the tab strip.
type TabLink struct {
	Label  string
	Href   string
	Active bool
}

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ReportCard summarises a report in the list view.
type ReportCard struct {
	ID          string
	Name        string
	RegionName  string
	Description string
	Supervisors int
	Employees   int
	LastUpdated string
	Href        string
}

// DetailData is the selected report panel.
type DetailData struct {
	ID          string
	Name        string
	RegionName  string
	Description string
	LastUpdated string
	BackHref    string
	Supervisors []SupervisorChip
	Table       TableData
	OrgChart    []orgchart.Node
	OrgError    string
}

// SupervisorChip links a supervisor name to its profile fragment.
type SupervisorChip struct {
	Name        string
	FragmentURL string
}

// TableData is the fragment payload of the employees table.
type TableData struct {
	ID           string
	ReportName   string
	Rows         []EmployeeRow
	EmptyMessage string
	Pagination   partials.Pagination
}

// EmployeeRow is one table row.
type EmployeeRow struct {
	ID         string
	Name       string
	Initials   string
	Position   string
	Department string
	Email      string
	Href       string
}

// RegionName resolves a region id, falling back to the raw id and then "Unassigned".
func RegionName(regions []adminreports.Region, id string) string {
	for _, r := range regions {
		if r.ID == id {
			return r.Name
		}
	}
	if id == "" {
		return "Unassigned"
	}
	return id
}

// RegionOptions lists "All Regions" followed by every region.
func RegionOptions(regions []adminreports.Region, selected string) []Option {
	if selected == "" {
		selected = adminreports.AllRegions
	}
	out := []Option{{Value: adminreports.AllRegions, Label: "All Regions", Selected: selected == adminreports.AllRegions}}
	for _, r := range regions {
		out = append(out, Option{Value: r.ID, Label: r.Name, Selected: r.ID == selected})
	}
	return out
}

// ReportOptions lists the reports offered in the report dropdown.
func ReportOptions(list []adminreports.Report, selected string) []Option {
	out := []Option{{Value: "", Label: "Select a report", Selected: selected == ""}}
	for _, r := range list {
		out = append(out, Option{Value: r.ID, Label: r.Name, Selected: r.ID == selected})
	}
	return out
}

// Cards builds the report list.
func Cards(basePath string, regions []adminreports.Region, list []adminreports.Report, region string) []ReportCard {
	out := make([]ReportCard, 0, len(list))
	for _, r := range list {
		out = append(out, ReportCard{
			ID:          r.ID,
			Name:        r.Name,
			RegionName:  RegionName(regions, r.Region),
			Description: r.Description,
			Supervisors: len(r.Supervisors),
			Employees:   len(r.Mappings),
			LastUpdated: helpers.Date(r.LastUpdated, ""),
			Href: helpers.BuildQueryURL(middleware.JoinBasePath(basePath, "/reports"), map[string]string{
				"region": region,
				"report": r.ID,
			}),
		})
	}
	return out
}

// Tabs builds the tab strip.
func Tabs(basePath, active string) []TabLink {
	path := middleware.JoinBasePath(basePath, "/reports")
	return []TabLink{
		{Label: "Reports", Href: path + "?tab=" + TabReports, Active: active != TabIncomplete},
		{Label: "Incomplete Mappings", Href: path + "?tab=" + TabIncomplete, Active: active == TabIncomplete},
	}
}

// BuildTable slices employees into the requested page.
func BuildTable(basePath string, report adminreports.Report, employees []adminreports.Employee, state QueryState) TableData {
	total := len(employees)
	pages := (total + PageSize - 1) / PageSize
	page := state.Page
	if page < 1 {
		page = 1
	}
	if pages == 0 {
		page = 1
	} else if page > pages {
		page = pages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	rows := make([]EmployeeRow, 0, end-start)
	for _, e := range employees[start:end] {
		rows = append(rows, EmployeeRow{
			ID:         e.ID,
			Name:       e.Name,
			Initials:   helpers.Initials(e.Name),
			Position:   e.Position,
			Department: e.Department,
			Email:      e.Email,
			Href:       middleware.JoinBasePath(basePath, "/employees/"+e.ID),
		})
	}

	pagePath := middleware.JoinBasePath(basePath, "/reports")
	fragmentPath := middleware.JoinBasePath(basePath, "/reports/table")
	raw := helpers.SetRawQuery(state.RawQuery, "report", report.ID)
	pager := partials.Pagination{Page: page, PageSize: PageSize, Total: total, HxTarget: TableID}
	if page > 1 {
		q := helpers.SetRawQuery(raw, "page", strconv.Itoa(page-1))
		pager.PrevHref = helpers.BuildURL(pagePath, q)
		pager.PrevHxHref = helpers.BuildURL(fragmentPath, q)
	}
	if page < pages {
		q := helpers.SetRawQuery(raw, "page", strconv.Itoa(page+1))
		pager.NextHref = helpers.BuildURL(pagePath, q)
		pager.NextHxHref = helpers.BuildURL(fragmentPath, q)
	}

	return TableData{
		ID:           TableID,
		ReportName:   report.Name,
		Rows:         rows,
		EmptyMessage: "No employees assigned to this report.",
		Pagination:   pager,
	}
}

// BuildDetail assembles the selected report panel.
func BuildDetail(basePath string, regions []adminreports.Region, report adminreports.Report, table TableData, nodes []orgchart.Node, orgErr error, state QueryState) *DetailData {
	chips := make([]SupervisorChip, 0, len(report.Supervisors))
	for _, name := range report.Supervisors {
		chips = append(chips, SupervisorChip{
			Name:        name,
			FragmentURL: helpers.BuildQueryURL(middleware.JoinBasePath(basePath, "/reports/supervisor"), map[string]string{"name": name}),
		})
	}
	detail := &DetailData{
		ID:          report.ID,
		Name:        report.Name,
		RegionName:  RegionName(regions, report.Region),
		Description: report.Description,
		LastUpdated: helpers.Date(report.LastUpdated, ""),
		BackHref:    helpers.BuildQueryURL(middleware.JoinBasePath(basePath, "/reports"), map[string]string{"region": state.Region}),
		Supervisors: chips,
		Table:       table,
		OrgChart:    nodes,
	}
	if orgErr != nil {
		detail.OrgError = fmt.Sprintf("The organizational chart could not be built: %v", orgErr)
	}
	return detail
}
