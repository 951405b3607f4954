package mappings

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Index renders the incomplete mappings page.
func Index(page PageData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       page.Title,
		Description: page.Description,
		Breadcrumbs: page.Breadcrumbs,
		Body:        Content(page.Content),
	})
}

// Content renders the filter bar, active filter badges and employee cards.
func Content(data ContentData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("section", "id", "incomplete-mappings", "class", "space-y-6", "data-incomplete-mappings", "",
			"hx-get", data.RefreshURL, "hx-trigger", middleware.EventMappingsChanged+" from:body",
			"hx-select", "#incomplete-mappings", "hx-swap", "outerHTML")
		m.Render(ctx, filterForm(data))

		if len(data.Active) > 0 {
			m.Open("div", "class", "flex flex-wrap items-center gap-2", "data-active-filters", "")
			for _, f := range data.Active {
				m.Open("span", "class", helpers.BadgeClass("info")+" gap-1", "data-active-filter", f.Label)
				m.Textf("%s: %s", f.Label, f.Value)
				m.Element("a", "×", "href", f.RemoveHref, "aria-label", "Remove "+f.Label+" filter", "class", "ml-1 hover:text-slate-900")
				m.Close("span")
			}
			m.Element("a", "Clear all", "href", data.ClearHref, "class", "text-xs text-slate-500 underline", "data-clear-filters", "")
			m.Close("div")
		}

		m.Element("p", helpers.Plural(data.Total, "employee", "employees")+" mapped to a single report", "class", "text-sm text-slate-500", "data-result-count", "")

		if len(data.Cards) == 0 {
			m.Render(ctx, partials.EmptyState(data.EmptyMessage))
		} else {
			m.Open("div", "class", "grid grid-cols-1 gap-4 md:grid-cols-2 lg:grid-cols-3")
			for _, card := range data.Cards {
				m.Render(ctx, EmployeeCard(card, data.ActionURL))
			}
			m.Close("div")
		}
		m.Close("section")
	})
}

func filterForm(data ContentData) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Open("form", "method", "get", "action", data.FilterPath, "class", "grid grid-cols-1 gap-4 rounded-lg bg-white p-4 shadow md:grid-cols-4", "data-filter-form", "")
		for _, h := range data.Hidden {
			m.Void("input", "type", "hidden", "name", h.Name, "value", h.Value)
		}
		selectField(m, "Department", ParamDepartment, data.Filters.Departments)
		selectField(m, "Position", ParamPosition, data.Filters.Positions)
		selectField(m, "Report", ParamReport, data.Filters.Reports)
		m.Open("div", "class", "flex items-end")
		m.Element("button", "Apply filters", "type", "submit", "class", helpers.ButtonClass("primary"))
		m.Close("div")
		m.Close("form")
	})
}

func selectField(m *helpers.Markup, label, name string, options []Option) {
	id := "filter-" + name
	m.Open("div")
	m.Element("label", label, "for", id, "class", "mb-1 block text-sm font-medium text-slate-700")
	m.Open("select", "id", id, "name", name, "class", "w-full rounded-md border border-slate-300 px-3 py-2 text-sm")
	for _, opt := range options {
		m.Element("option", opt.Label, "value", opt.Value, "selected?", helpers.Bool(opt.Selected))
	}
	m.Close("select")
	m.Close("div")
}

// EmployeeCard renders a single-mapped employee and the add-to-report form.
func EmployeeCard(card Card, actionURL string) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Open("article", "class", "rounded-lg border border-slate-200 bg-white p-4 shadow-sm", "data-employee-card", card.EmployeeID)
		m.Open("div", "class", "flex items-start gap-4")
		m.Element("span", card.Initials, "class", "flex h-10 w-10 items-center justify-center rounded-full bg-slate-900 text-sm font-semibold text-white", "aria-hidden", "true")
		m.Open("div", "class", "space-y-1")
		m.Element("h4", card.Name, "class", "font-medium")
		m.Element("p", card.Position, "class", "text-sm text-slate-500")
		m.Element("p", card.Email, "class", "text-sm text-slate-500")
		m.Element("span", card.Department, "class", helpers.BadgeClass(""))
		m.Close("div")
		m.Close("div")

		m.Open("div", "class", "mt-4 border-t border-slate-100 pt-4")
		m.Element("h5", "Currently Mapped To:", "class", "mb-1 text-sm font-medium text-slate-500")
		m.Element("p", card.CurrentReportName, "class", "text-sm", "data-current-report", card.CurrentReportID)
		m.Close("div")

		if len(card.Targets) == 0 {
			m.Element("p", "No other reports available.", "class", "mt-4 text-sm text-slate-400")
			m.Close("article")
			return
		}

		selectID := "target-" + card.EmployeeID
		m.Open("form", "method", "post", "action", actionURL, "hx-post", actionURL, "hx-swap", "none",
			"class", "mt-4 flex items-end gap-2", "data-add-to-report", "")
		m.Void("input", "type", "hidden", "name", "employeeId", "value", card.EmployeeID)
		m.Open("div", "class", "flex-1")
		m.Element("label", "Add to report", "for", selectID, "class", "mb-1 block text-xs font-medium text-slate-500")
		m.Open("select", "id", selectID, "name", "reportId", "required", "", "class", "w-full rounded-md border border-slate-300 px-2 py-1.5 text-sm")
		m.Element("option", "Select a report", "value", "")
		for _, t := range card.Targets {
			m.Element("option", t.Label, "value", t.Value)
		}
		m.Close("select")
		m.Close("div")
		m.Element("button", "Add", "type", "submit", "class", helpers.ButtonClass("primary"))
		m.Close("form")
		m.Close("article")
	})
}
