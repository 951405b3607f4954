package departments

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Card is one department summary.
type Card struct {
	Name          string
	EmployeeCount int
	Manager       string
	Supervisors   []string
	Reports       []ReportLink
	EmployeesHref string
}

// ReportLink points at a report touching the department.
type ReportLink struct {
	Label string
	Href  string
}

// PageData is the payload for the departments page.
type PageData struct {
	Title       string
	Description string
	Breadcrumbs []partials.Breadcrumb
	Cards       []Card
}

// Build converts summaries into cards. Report ids that do not resolve keep the raw id as label.
func Build(basePath string, summaries []adminreports.DepartmentSummary, reportList []adminreports.Report) PageData {
	names := make(map[string]string, len(reportList))
	for _, r := range reportList {
		names[r.ID] = r.Name
	}

	cards := make([]Card, 0, len(summaries))
	for _, s := range summaries {
		manager := s.Manager
		if manager == "" {
			manager = "Unassigned"
		}
		card := Card{
			Name:          s.Name,
			EmployeeCount: s.EmployeeCount,
			Manager:       manager,
			Supervisors:   s.Supervisors,
			EmployeesHref: helpers.BuildQueryURL(middleware.JoinBasePath(basePath, "/search"), map[string]string{"q": s.Name}),
		}
		for _, id := range s.ReportIDs {
			label, ok := names[id]
			if !ok {
				label = id
			}
			card.Reports = append(card.Reports, ReportLink{
				Label: label,
				Href:  helpers.BuildQueryURL(middleware.JoinBasePath(basePath, "/reports"), map[string]string{"report": id}),
			})
		}
		cards = append(cards, card)
	}

	return PageData{
		Title:       "Departments",
		Description: "View and manage your company departments.",
		Breadcrumbs: []partials.Breadcrumb{{Label: "Departments"}},
		Cards:       cards,
	}
}

// Index renders the departments page.
func Index(data PageData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       data.Title,
		Description: data.Description,
		Breadcrumbs: data.Breadcrumbs,
		Body: helpers.Component(func(ctx context.Context, m *helpers.Markup) {
			if len(data.Cards) == 0 {
				m.Render(ctx, partials.EmptyState("No departments found."))
				return
			}
			m.Open("div", "class", "grid grid-cols-1 gap-6 md:grid-cols-2")
			for _, c := range data.Cards {
				m.Render(ctx, card(c))
			}
			m.Close("div")
		}),
	})
}

func card(c Card) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("section", "class", "rounded-lg bg-white p-6 shadow", "data-department", c.Name)
		m.Open("div", "class", "flex items-start justify-between")
		m.Element("h2", c.Name, "class", "text-lg font-semibold")
		m.Element("a", "View employees", "href", c.EmployeesHref, "class", "text-sm text-slate-500 hover:underline")
		m.Close("div")
		m.Open("div", "class", "mt-4 grid grid-cols-2 gap-4")
		m.Open("div")
		m.Element("p", "Total Employees", "class", "text-sm text-slate-500")
		m.Element("p", strconv.Itoa(c.EmployeeCount), "class", "text-xl font-semibold", "data-employee-count", "")
		m.Close("div")
		m.Open("div")
		m.Element("p", "Manager", "class", "text-sm text-slate-500")
		m.Element("p", c.Manager, "class", "font-medium", "data-manager", "")
		m.Close("div")
		m.Close("div")
		if len(c.Supervisors) > 1 {
			m.Element("p", "Supervisors", "class", "mt-4 text-sm text-slate-500")
			m.Open("div", "class", "mt-1 flex flex-wrap gap-2")
			for _, s := range c.Supervisors {
				m.Render(ctx, partials.Badge(s, ""))
			}
			m.Close("div")
		}
		if len(c.Reports) > 0 {
			m.Element("p", "Reports", "class", "mt-4 text-sm text-slate-500")
			m.Open("ul", "class", "mt-1 flex flex-wrap gap-2")
			for _, r := range c.Reports {
				m.Open("li")
				m.Element("a", r.Label, "href", r.Href, "class", helpers.BadgeClass("info"), "data-department-report", "")
				m.Close("li")
			}
			m.Close("ul")
		}
		m.Close("section")
	})
}
