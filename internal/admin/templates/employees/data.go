package employees

import (
	"errors"
	"net/url"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Card summarises an employee in a grid.
type Card struct {
	ID         string
	Name       string
	Initials   string
	Position   string
	Department string
	Email      string
	Href       string
}

// ListData is the payload for the employees list page.
type ListData struct {
	Title        string
	Description  string
	Breadcrumbs  []partials.Breadcrumb
	NewHref      string
	Cards        []Card
	EmptyMessage string
}

// ReportLink is one report an employee belongs to, with its status toggle.
type ReportLink struct {
	ID         string
	Name       string
	RegionName string
	Href       string
}

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// DetailData is the payload for the employee detail page.
type DetailData struct {
	Title         string
	Breadcrumbs   []partials.Breadcrumb
	ID            string
	Name          string
	Initials      string
	Position      string
	Department    string
	Email         string
	Phone         string
	BackHref      string
	Reports       []ReportLink
	StatusURL     string
	SupervisorURL string
	Supervisors   []Option
}

// FormData is the payload for the add employee form.
type FormData struct {
	Title       string
	Breadcrumbs []partials.Breadcrumb
	ActionURL   string
	CancelHref  string
	Values      adminreports.NewEmployee
	Errors      map[string]string
	Departments []string
	Reports     []Option
	Message     string
}

// Cards converts employees into grid cards.
func Cards(basePath string, list []adminreports.Employee) []Card {
	out := make([]Card, 0, len(list))
	for _, e := range list {
		out = append(out, Card{
			ID:         e.ID,
			Name:       e.Name,
			Initials:   helpers.Initials(e.Name),
			Position:   e.Position,
			Department: e.Department,
			Email:      e.Email,
			Href:       middleware.JoinBasePath(basePath, "/employees/"+url.PathEscape(e.ID)),
		})
	}
	return out
}

// BuildList assembles the employees page.
func BuildList(basePath string, list []adminreports.Employee) ListData {
	return ListData{
		Title:        "Employees",
		Description:  "Manage your employees and their information.",
		Breadcrumbs:  []partials.Breadcrumb{{Label: "Employees"}},
		NewHref:      middleware.JoinBasePath(basePath, "/employees/new"),
		Cards:        Cards(basePath, list),
		EmptyMessage: "No employees found",
	}
}

// BuildDetail assembles the employee detail page. Supervisor options come from
// the reports the employee belongs to, falling back to every supervisor.
func BuildDetail(basePath string, employee adminreports.Employee, memberOf []adminreports.Report, regions []adminreports.Region, candidates []adminreports.Supervisor) DetailData {
	links := make([]ReportLink, 0, len(memberOf))
	for _, r := range memberOf {
		links = append(links, ReportLink{
			ID:         r.ID,
			Name:       r.Name,
			RegionName: regionName(regions, r.Region),
			Href:       helpers.BuildQueryURL(middleware.JoinBasePath(basePath, "/reports"), map[string]string{"report": r.ID}),
		})
	}

	options := []Option{{Value: "", Label: "Select a supervisor", Selected: true}}
	for _, s := range candidates {
		options = append(options, Option{Value: s.ID, Label: s.Name + " (" + s.Department + ")"})
	}

	employeesPath := middleware.JoinBasePath(basePath, "/employees")
	return DetailData{
		Title:         "Employee Details",
		Breadcrumbs:   []partials.Breadcrumb{{Label: "Employees", Href: employeesPath}, {Label: employee.Name}},
		ID:            employee.ID,
		Name:          employee.Name,
		Initials:      helpers.Initials(employee.Name),
		Position:      employee.Position,
		Department:    employee.Department,
		Email:         employee.Email,
		Phone:         employee.Phone,
		BackHref:      employeesPath,
		Reports:       links,
		StatusURL:     middleware.JoinBasePath(basePath, "/actions/status"),
		SupervisorURL: middleware.JoinBasePath(basePath, "/actions/supervisors"),
		Supervisors:   options,
	}
}

// BuildForm assembles the add employee form, mapping a validation error onto field messages.
func BuildForm(basePath string, values adminreports.NewEmployee, err error, departments []string, reportList []adminreports.Report) FormData {
	data := FormData{
		Title: "Add Employee",
		Breadcrumbs: []partials.Breadcrumb{
			{Label: "Employees", Href: middleware.JoinBasePath(basePath, "/employees")},
			{Label: "Add Employee"},
		},
		ActionURL:   middleware.JoinBasePath(basePath, "/employees"),
		CancelHref:  middleware.JoinBasePath(basePath, "/employees"),
		Values:      values,
		Errors:      map[string]string{},
		Departments: departments,
	}

	data.Reports = append(data.Reports, Option{Value: "", Label: "No report", Selected: values.ReportID == ""})
	for _, r := range reportList {
		data.Reports = append(data.Reports, Option{Value: r.ID, Label: r.Name, Selected: r.ID == values.ReportID})
	}

	var verr *adminreports.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			if _, exists := data.Errors[f.Field]; !exists {
				data.Errors[f.Field] = FieldMessage(f.Rule)
			}
		}
		data.Message = "Please correct the highlighted fields."
	default:
		data.Message = "Failed to add employee. Please try again."
	}
	return data
}

// FieldMessage turns a validation rule into user-facing text.
func FieldMessage(rule string) string {
	switch rule {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "This value is too long."
	case "exists":
		return "Select an existing report."
	default:
		return "This value is invalid."
	}
}

func regionName(regions []adminreports.Region, id string) string {
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
