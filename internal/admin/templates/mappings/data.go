package mappings

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	adminmappings "finitefield.org/roster-admin/internal/admin/mappings"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Query parameter names.
const (
	ParamDepartment = "department"
	ParamPosition   = "position"
	ParamReport     = "report"
)

// QueryState captures the filter query string.
type QueryState struct {
	Department string
	Position   string
	ReportID   string
	RawQuery   string
}

// Filter converts the state into a finder filter.
func (q QueryState) Filter() adminmappings.Filter {
	return adminmappings.Filter{Department: q.Department, Position: q.Position, ReportID: q.ReportID}
}

// PageData is the payload for the incomplete mappings page.
type PageData struct {
	Title       string
	Description string
	Breadcrumbs []partials.Breadcrumb
	Content     ContentData
}

// ContentData is the filter bar plus the cards, shared with the reports tab.
type ContentData struct {
	FilterPath   string
	Hidden       []HiddenField
	Filters      Filters
	Active       []ActiveFilter
	ClearHref    string
	Cards        []Card
	Total        int
	EmptyMessage string
	ActionURL    string
	RefreshURL   string
}

// HiddenField is carried through the filter form unchanged.
type HiddenField struct {
	Name  string
	Value string
}

// Filters holds the dropdown options.
type Filters struct {
	Departments []Option
	Positions   []Option
	Reports     []Option
}

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ActiveFilter is a removable filter badge.
type ActiveFilter struct {
	Label      string
	Value      string
	RemoveHref string
}

// Card is one single-mapped employee with the reports it can still join.
type Card struct {
	EmployeeID        string
	Name              string
	Initials          string
	Position          string
	Email             string
	Department        string
	CurrentReportID   string
	CurrentReportName string
	Targets           []Option
}

// SortedOptions sorts values with English collation behind an "all" option.
func SortedOptions(values []string, selected, allLabel string) []Option {
	sorted := slices.Clone(values)
	collate.New(language.English, collate.IgnoreCase).SortStrings(sorted)

	out := make([]Option, 0, len(sorted)+1)
	out = append(out, Option{Value: adminmappings.Any, Label: allLabel, Selected: selected == "" || selected == adminmappings.Any})
	for _, v := range sorted {
		out = append(out, Option{Value: v, Label: v, Selected: v == selected})
	}
	return out
}

// BuildContent assembles the filter bar and cards. filterPath is the page the
// filter form submits to; hidden fields are preserved across submissions.
func BuildContent(basePath, filterPath string, hidden []HiddenField, state QueryState, departments, positions []string, all []adminreports.Report, assignments []adminmappings.Assignment) ContentData {
	reportOptions := []Option{{Value: adminmappings.Any, Label: "All Reports", Selected: state.ReportID == "" || state.ReportID == adminmappings.Any}}
	reportNames := make(map[string]string, len(all))
	for _, r := range all {
		reportNames[r.ID] = r.Name
		reportOptions = append(reportOptions, Option{Value: r.ID, Label: r.Name, Selected: r.ID == state.ReportID})
	}

	var active []ActiveFilter
	addActive := func(label, key, value, display string) {
		if value == "" || value == adminmappings.Any {
			return
		}
		active = append(active, ActiveFilter{
			Label:      label,
			Value:      display,
			RemoveHref: helpers.BuildURL(filterPath, helpers.DelRawQuery(state.RawQuery, key)),
		})
	}
	addActive("Department", ParamDepartment, state.Department, state.Department)
	addActive("Position", ParamPosition, state.Position, state.Position)
	reportLabel := reportNames[state.ReportID]
	if reportLabel == "" {
		reportLabel = state.ReportID
	}
	addActive("Report", ParamReport, state.ReportID, reportLabel)

	cards := make([]Card, 0, len(assignments))
	for _, a := range assignments {
		targets := make([]Option, 0, len(all))
		for _, r := range adminmappings.AvailableReports(all, a) {
			targets = append(targets, Option{Value: r.ID, Label: r.Name})
		}
		cards = append(cards, Card{
			EmployeeID:        a.Employee.ID,
			Name:              a.Employee.Name,
			Initials:          helpers.Initials(a.Employee.Name),
			Position:          a.Employee.Position,
			Email:             a.Employee.Email,
			Department:        a.Employee.Department,
			CurrentReportID:   a.Report.ID,
			CurrentReportName: a.Report.Name,
			Targets:           targets,
		})
	}

	empty := "No employees with single report mappings found."
	if len(active) > 0 {
		empty = "No employees match the selected filters."
	}

	clearRaw := helpers.DelRawQuery(state.RawQuery, ParamDepartment, ParamPosition, ParamReport)
	return ContentData{
		FilterPath: filterPath,
		Hidden:     hidden,
		Filters: Filters{
			Departments: SortedOptions(departments, state.Department, "All Departments"),
			Positions:   SortedOptions(positions, state.Position, "All Positions"),
			Reports:     reportOptions,
		},
		Active:       active,
		ClearHref:    helpers.BuildURL(filterPath, clearRaw),
		Cards:        cards,
		Total:        len(cards),
		EmptyMessage: empty,
		ActionURL:    middleware.JoinBasePath(basePath, "/actions/mappings"),
		RefreshURL:   helpers.BuildURL(filterPath, state.RawQuery),
	}
}
