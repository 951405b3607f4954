package reports

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/orgchart"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	mappingstpl "finitefield.org/roster-admin/internal/admin/templates/mappings"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Index renders the reports page.
func Index(page PageData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       page.Title,
		Description: page.Description,
		Breadcrumbs: page.Breadcrumbs,
		Body:        body(page),
	})
}

func body(page PageData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("div", "class", "space-y-6")
		m.Open("nav", "class", "grid grid-cols-2 rounded-lg bg-slate-100 p-1 text-sm font-medium", "role", "tablist", "data-tabs", "")
		for _, tab := range page.Tabs {
			cls := "rounded-md px-3 py-2 text-center text-slate-600"
			if tab.Active {
				cls = "rounded-md bg-white px-3 py-2 text-center text-slate-900 shadow-sm"
			}
			m.Element("a", tab.Label, "href", tab.Href, "role", "tab", "class", cls, "aria-selected", strconv.FormatBool(tab.Active))
		}
		m.Close("nav")

		if page.Query.Tab == TabIncomplete && page.Incomplete != nil {
			m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
			m.Element("h2", "Incomplete Mappings", "class", "mb-2 text-xl font-semibold")
			m.Element("p", "Employees who are currently mapped to only one report. Add them to additional reports to complete their mappings.", "class", "mb-6 text-slate-600")
			m.Render(ctx, mappingstpl.Content(*page.Incomplete))
			m.Close("div")
			m.Close("div")
			return
		}

		m.Render(ctx, filterPanel(page))
		switch {
		case page.Detail != nil:
			m.Render(ctx, Detail(*page.Detail))
		case page.NotFound:
			m.Render(ctx, partials.Alert("The selected report could not be found."))
			m.Render(ctx, reportList(page.Cards))
		default:
			m.Render(ctx, reportList(page.Cards))
		}
		m.Close("div")
	})
}

func filterPanel(page PageData) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
		m.Element("h2", "Filter Reports", "class", "mb-4 text-xl font-semibold")
		m.Open("form", "method", "get", "action", page.FilterPath, "class", "grid grid-cols-1 gap-4 md:grid-cols-3", "data-report-filter", "",
			"hx-get", page.FilterPath, "hx-target", "#main", "hx-select", "#main", "hx-swap", "outerHTML", "hx-push-url", "true", "hx-trigger", "change")
		dropdown(m, "Region", "region", page.Regions)
		dropdown(m, "Report Name", "report", page.Reports)
		m.Open("div", "class", "flex items-end")
		m.Element("button", "Show", "type", "submit", "class", helpers.ButtonClass("primary"))
		m.Close("div")
		m.Close("form")
		m.Close("div")
	})
}

func dropdown(m *helpers.Markup, label, name string, options []Option) {
	id := "reports-" + name
	m.Open("div")
	m.Element("label", label, "for", id, "class", "mb-1 block text-sm font-medium text-slate-700")
	m.Open("select", "id", id, "name", name, "class", "w-full rounded-md border border-slate-300 px-3 py-2 text-sm")
	for _, opt := range options {
		m.Element("option", opt.Label, "value", opt.Value, "selected?", helpers.Bool(opt.Selected))
	}
	m.Close("select")
	m.Close("div")
}

func reportList(cards []ReportCard) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
		m.Element("h3", "Available Reports", "class", "mb-4 text-lg font-semibold")
		if len(cards) == 0 {
			m.Render(ctx, partials.EmptyState("No reports available for the selected region."))
			m.Close("div")
			return
		}
		m.Open("div", "class", "grid grid-cols-1 gap-4 md:grid-cols-2 lg:grid-cols-3")
		for _, c := range cards {
			m.Open("a", "href", c.Href, "class", "block rounded-lg border border-slate-200 p-4 hover:border-slate-400", "data-report-card", c.ID)
			m.Open("div", "class", "flex items-start justify-between gap-2")
			m.Element("h4", c.Name, "class", "font-medium")
			m.Element("span", c.RegionName, "class", helpers.BadgeClass(""))
			m.Close("div")
			m.Element("p", c.Description, "class", "mt-2 text-sm text-slate-500")
			m.Open("div", "class", "mt-3 flex justify-between text-xs text-slate-500")
			m.Element("span", helpers.Plural(c.Employees, "employee", "employees")+" · "+helpers.Plural(c.Supervisors, "supervisor", "supervisors"))
			m.Element("span", c.LastUpdated)
			m.Close("div")
			m.Close("a")
		}
		m.Close("div")
		m.Close("div")
	})
}

// Detail renders the selected report, its employees and the org chart.
func Detail(d DetailData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("div", "class", "space-y-6", "data-report-detail", d.ID)
		m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
		m.Element("a", "← Back to Reports", "href", d.BackHref, "class", helpers.ButtonClass("ghost")+" -ml-2 mb-4")
		m.Open("div", "class", "flex flex-col gap-4 md:flex-row md:items-center md:justify-between")
		m.Element("h2", d.Name, "class", "text-2xl font-semibold")
		m.Element("span", d.RegionName, "class", helpers.BadgeClass("info"), "data-region", "")
		m.Close("div")
		m.Element("h3", "Description", "class", "mt-6 mb-2 text-sm font-medium text-slate-500")
		m.Element("p", d.Description, "class", "text-slate-700")
		m.Open("div", "class", "mt-6 grid grid-cols-1 gap-6 md:grid-cols-2")
		m.Open("div")
		m.Element("h3", "Supervisors", "class", "mb-2 text-sm font-medium text-slate-500")
		m.Open("div", "class", "flex flex-wrap gap-2")
		for _, s := range d.Supervisors {
			m.Element("button", s.Name, "type", "button", "class", helpers.BadgeClass("")+" cursor-pointer",
				"hx-get", s.FragmentURL, "hx-target", "#supervisor-panel", "hx-swap", "innerHTML", "data-supervisor", s.Name)
		}
		m.Close("div")
		m.Open("div", "id", "supervisor-panel", "class", "mt-4")
		m.Close("div")
		m.Close("div")
		m.Open("div")
		m.Element("h3", "Last Updated", "class", "mb-2 text-sm font-medium text-slate-500")
		m.Element("p", d.LastUpdated, "class", "text-slate-700")
		m.Close("div")
		m.Close("div")
		m.Close("div")

		if len(d.Table.Rows) > 0 {
			m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
			m.Element("h3", "Employees Assigned to This Report", "class", "mb-4 text-lg font-semibold")
			m.Render(ctx, Table(d.Table))
			m.Close("div")

			m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
			m.Element("h3", "Organizational Chart", "class", "mb-4 text-lg font-semibold")
			m.Render(ctx, partials.Alert(d.OrgError))
			m.Render(ctx, OrgChart(d.OrgChart))
			m.Close("div")
		}
		m.Close("div")
	})
}

// Table renders the paginated employees table fragment.
func Table(t TableData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("div", "id", t.ID, "data-report-table", "")
		if len(t.Rows) == 0 {
			m.Render(ctx, partials.EmptyState(t.EmptyMessage))
			m.Close("div")
			return
		}
		m.Open("div", "class", "overflow-x-auto rounded-md border border-slate-200")
		m.Open("table", "class", "min-w-full divide-y divide-slate-200 text-sm")
		m.Open("thead", "class", "bg-slate-50")
		m.Open("tr")
		for _, h := range []string{"Employee", "Position", "Department", "Email"} {
			m.Element("th", h, "scope", "col", "class", "px-4 py-2 text-left font-medium text-slate-500")
		}
		m.Close("tr")
		m.Close("thead")
		m.Open("tbody", "class", "divide-y divide-slate-100")
		for _, row := range t.Rows {
			m.Open("tr", "data-employee-row", row.ID)
			m.Open("td", "class", "px-4 py-2")
			m.Open("a", "href", row.Href, "class", "flex items-center gap-2 hover:underline")
			m.Element("span", row.Initials, "class", "flex h-8 w-8 items-center justify-center rounded-full bg-slate-900 text-xs text-white", "aria-hidden", "true")
			m.Element("span", row.Name)
			m.Close("a")
			m.Close("td")
			m.Element("td", row.Position, "class", "px-4 py-2")
			m.Element("td", row.Department, "class", "px-4 py-2")
			m.Element("td", row.Email, "class", "px-4 py-2")
			m.Close("tr")
		}
		m.Close("tbody")
		m.Close("table")
		m.Close("div")
		m.Render(ctx, partials.Pager(t.Pagination))
		m.Close("div")
	})
}

// OrgChart renders supervisor nodes with their employees.
func OrgChart(nodes []orgchart.Node) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		if len(nodes) == 0 {
			m.Render(ctx, partials.EmptyState("No supervisors could be resolved for this report."))
			return
		}
		m.Open("ul", "class", "grid grid-cols-1 gap-6 md:grid-cols-2", "data-org-chart", "")
		for _, n := range nodes {
			m.Open("li", "class", "rounded-lg border border-slate-200 p-4", "data-org-node", n.ID)
			m.Element("p", n.Name, "class", "font-semibold")
			m.Element("p", n.Position+" · "+n.Department, "class", "text-xs text-slate-500")
			if len(n.Children) == 0 {
				m.Element("p", "No direct reports in this report.", "class", "mt-3 text-sm text-slate-400")
			} else {
				m.Open("ul", "class", "mt-3 space-y-2 border-l border-slate-200 pl-4")
				for _, c := range n.Children {
					m.Open("li", "data-org-child", c.ID)
					m.Element("span", c.Name, "class", "text-sm font-medium")
					m.Element("span", " "+c.Position, "class", "text-xs text-slate-500")
					m.Close("li")
				}
				m.Close("ul")
			}
			m.Close("li")
		}
		m.Close("ul")
	})
}

// SupervisorCard renders the supervisor profile fragment.
func SupervisorCard(s adminreports.Supervisor) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Open("div", "class", "rounded-lg border border-slate-200 bg-slate-50 p-4", "data-supervisor-card", s.ID)
		m.Open("div", "class", "flex items-center gap-3")
		m.Element("span", helpers.Initials(s.Name), "class", "flex h-12 w-12 items-center justify-center rounded-full bg-slate-900 text-white", "aria-hidden", "true")
		m.Open("div")
		m.Element("h4", s.Name, "class", "font-semibold")
		m.Element("p", s.Title, "class", "text-sm text-slate-500")
		m.Close("div")
		m.Close("div")
		m.Open("dl", "class", "mt-4 grid grid-cols-2 gap-3 text-sm")
		for _, pair := range [][2]string{
			{"Email", s.Email},
			{"Phone", s.Phone},
			{"Department", s.Department},
			{"Experience", helpers.Plural(s.YearsOfExperience, "year", "years")},
		} {
			m.Open("div")
			m.Element("dt", pair[0], "class", "text-slate-500")
			m.Element("dd", pair[1])
			m.Close("div")
		}
		m.Close("dl")
		if s.Bio != "" {
			m.Element("p", s.Bio, "class", "mt-4 text-sm text-slate-700")
		}
		m.Close("div")
	})
}

// SupervisorMissing renders the not-found state of the supervisor fragment.
func SupervisorMissing(name string) templ.Component {
	return partials.Alert("Supervisor " + name + " was not found.")
}
