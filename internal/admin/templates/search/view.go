package search

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/templates/employees"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Index renders the search page.
func Index(data PageData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       data.Title,
		Breadcrumbs: data.Breadcrumbs,
		Body: helpers.Component(func(ctx context.Context, m *helpers.Markup) {
			m.Open("form", "method", "get", "action", data.FormAction, "role", "search", "class", "mb-6 flex gap-2", "data-search-form", "",
				"hx-get", data.ResultsPath, "hx-target", "#"+ResultsID, "hx-swap", "outerHTML", "hx-push-url", data.FormAction,
				"hx-trigger", "submit, input changed delay:300ms from:find input")
			m.Void("input", "type", "search", "name", "q", "value", data.Query.Term, "placeholder", "Search employees...", "autocomplete", "off",
				"aria-label", "Search employees", "class", "w-full max-w-md rounded-md border border-slate-300 px-3 py-2 text-sm")
			m.Element("button", "Search", "type", "submit", "class", helpers.ButtonClass("primary"))
			m.Close("form")
			m.Render(ctx, Results(data.Results))
		}),
	})
}

// Results renders the results fragment.
func Results(data ResultsData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("div", "id", ResultsID, "class", "space-y-6", "data-search-results", "")
		m.Open("div", "class", "rounded-lg bg-white p-6 shadow")
		m.Element("h2", data.Heading, "class", "mb-2 text-xl font-semibold")
		m.Open("p", "class", "text-slate-600", "data-search-summary", "")
		m.Text(data.Message)
		if data.Summary.Duration != "" {
			m.Element("span", " ("+data.Summary.Duration+")", "class", "text-xs text-slate-400")
		}
		m.Close("p")
		m.Close("div")

		switch {
		case len(data.Cards) > 0:
			m.Open("div", "class", "grid grid-cols-1 gap-4 rounded-lg bg-white p-6 shadow md:grid-cols-2 lg:grid-cols-3")
			highlight := func(s string) templ.Component { return helpers.Highlight(s, data.Term) }
			for _, c := range data.Cards {
				m.Render(ctx, employees.CardView(c, highlight))
			}
			m.Close("div")
		case data.Term != "":
			m.Render(ctx, partials.EmptyState(data.EmptyMessage))
		}
		m.Close("div")
	})
}
