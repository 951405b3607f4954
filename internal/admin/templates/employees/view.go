package employees

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// List renders the employees page.
func List(data ListData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       data.Title,
		Description: data.Description,
		Breadcrumbs: data.Breadcrumbs,
		Actions: helpers.Component(func(_ context.Context, m *helpers.Markup) {
			m.Element("a", "Add Employee", "href", data.NewHref, "class", helpers.ButtonClass("primary"), "data-new-employee", "")
		}),
		Body: Grid(data.Cards, data.EmptyMessage),
	})
}

// Grid renders employee cards, or message when there are none.
func Grid(cards []Card, message string) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		if len(cards) == 0 {
			m.Render(ctx, partials.EmptyState(message))
			return
		}
		m.Open("div", "class", "grid grid-cols-1 gap-4 md:grid-cols-2 lg:grid-cols-3", "data-employee-grid", "")
		for _, c := range cards {
			m.Render(ctx, CardView(c, nil))
		}
		m.Close("div")
	})
}

// CardView renders a single employee card. highlight, when set, renders the name.
func CardView(c Card, highlight func(string) templ.Component) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("a", "href", c.Href, "class", "flex items-start gap-4 rounded-lg border border-slate-200 bg-white p-4 hover:border-slate-400", "data-employee", c.ID)
		m.Element("span", c.Initials, "class", "flex h-10 w-10 shrink-0 items-center justify-center rounded-full bg-slate-900 text-sm text-white", "aria-hidden", "true")
		m.Open("div", "class", "min-w-0")
		m.Open("p", "class", "font-medium", "data-employee-name", "")
		if highlight != nil {
			m.Render(ctx, highlight(c.Name))
		} else {
			m.Text(c.Name)
		}
		m.Close("p")
		field(ctx, m, c.Position, highlight)
		field(ctx, m, c.Department, highlight)
		field(ctx, m, c.Email, highlight)
		m.Close("div")
		m.Close("a")
	})
}

func field(ctx context.Context, m *helpers.Markup, value string, highlight func(string) templ.Component) {
	m.Open("p", "class", "truncate text-sm text-slate-500")
	if highlight != nil {
		m.Render(ctx, highlight(value))
	} else {
		m.Text(value)
	}
	m.Close("p")
}

// Detail renders the employee detail page.
func Detail(data DetailData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       data.Title,
		Breadcrumbs: data.Breadcrumbs,
		Body:        detailBody(data),
	})
}

func detailBody(data DetailData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("div", "class", "grid grid-cols-1 gap-6 lg:grid-cols-3", "data-employee-detail", data.ID)

		m.Open("section", "class", "rounded-lg bg-white p-6 shadow lg:col-span-2")
		m.Open("div", "class", "flex items-center gap-4")
		m.Element("span", data.Initials, "class", "flex h-16 w-16 items-center justify-center rounded-full bg-slate-900 text-lg text-white", "aria-hidden", "true")
		m.Open("div")
		m.Element("h2", data.Name, "class", "text-2xl font-semibold")
		m.Element("p", data.Position, "class", "text-slate-500")
		m.Close("div")
		m.Close("div")
		m.Open("dl", "class", "mt-6 grid grid-cols-1 gap-6 md:grid-cols-2")
		for _, pair := range [][2]string{
			{"Email", data.Email},
			{"Phone", data.Phone},
			{"Department", data.Department},
			{"Employee ID", data.ID},
		} {
			value := pair[1]
			if value == "" {
				value = "Not provided"
			}
			m.Open("div")
			m.Element("dt", pair[0], "class", "text-sm text-slate-500")
			m.Element("dd", value)
			m.Close("div")
		}
		m.Close("dl")
		m.Close("section")

		m.Open("section", "class", "rounded-lg bg-white p-6 shadow")
		m.Element("h3", "Assign Supervisor", "class", "mb-4 text-lg font-semibold")
		m.Open("form", "method", "post", "action", data.SupervisorURL, "hx-post", data.SupervisorURL, "hx-swap", "none", "class", "space-y-3", "data-assign-supervisor", "")
		m.Void("input", "type", "hidden", "name", "employeeId", "value", data.ID)
		m.Element("label", "Supervisor", "for", "supervisorId", "class", "block text-sm font-medium text-slate-700")
		m.Open("select", "id", "supervisorId", "name", "supervisorId", "required?", "true", "class", "w-full rounded-md border border-slate-300 px-3 py-2 text-sm")
		for _, opt := range data.Supervisors {
			m.Element("option", opt.Label, "value", opt.Value, "selected?", helpers.Bool(opt.Selected))
		}
		m.Close("select")
		m.Element("button", "Assign", "type", "submit", "class", helpers.ButtonClass("primary")+" w-full")
		m.Close("form")
		m.Close("section")

		m.Open("section", "class", "rounded-lg bg-white p-6 shadow lg:col-span-3")
		m.Element("h3", "Reports", "class", "mb-4 text-lg font-semibold")
		if len(data.Reports) == 0 {
			m.Render(ctx, partials.EmptyState("This employee is not mapped to any report."))
		} else {
			m.Open("ul", "class", "divide-y divide-slate-100")
			for _, r := range data.Reports {
				m.Open("li", "class", "flex flex-wrap items-center justify-between gap-3 py-3", "data-member-of", r.ID)
				m.Open("div", "class", "flex items-center gap-2")
				m.Element("a", r.Name, "href", r.Href, "class", "font-medium hover:underline")
				m.Render(ctx, partials.Badge(r.RegionName, "info"))
				m.Close("div")
				m.Open("form", "method", "post", "action", data.StatusURL, "hx-post", data.StatusURL, "hx-swap", "none", "class", "flex gap-2", "data-status-form", r.ID)
				m.Void("input", "type", "hidden", "name", "employeeId", "value", data.ID)
				m.Void("input", "type", "hidden", "name", "reportId", "value", r.ID)
				m.Element("button", "Mark Active", "type", "submit", "name", "isActive", "value", "true", "class", helpers.ButtonClass(""))
				m.Element("button", "Mark Inactive", "type", "submit", "name", "isActive", "value", "false", "class", helpers.ButtonClass("ghost"))
				m.Close("form")
				m.Close("li")
			}
			m.Close("ul")
		}
		m.Close("section")

		m.Close("div")
	})
}

// New renders the add employee form page.
func New(data FormData) templ.Component {
	return partials.Layout(partials.Page{
		Title:       data.Title,
		Description: "Enter the details of the new employee to add them to the system.",
		Breadcrumbs: data.Breadcrumbs,
		Body:        Form(data),
	})
}

// Form renders the add employee form.
func Form(data FormData) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("form", "method", "post", "action", data.ActionURL, "class", "mx-auto max-w-2xl space-y-6 rounded-lg bg-white p-6 shadow", "data-employee-form", "", "novalidate?", "true")
		m.Render(ctx, partials.Alert(data.Message))
		m.Open("div", "class", "grid grid-cols-1 gap-4 md:grid-cols-2")
		input(m, data, "name", "Full Name", "text", data.Values.Name, "John Smith")
		input(m, data, "email", "Email Address", "email", data.Values.Email, "john.smith@example.com")
		input(m, data, "phone", "Phone Number", "tel", data.Values.Phone, "(555) 123-4567")
		input(m, data, "position", "Position", "text", data.Values.Position, "Software Developer")
		input(m, data, "department", "Department", "text", data.Values.Department, "Sales", "list", "department-options")
		m.Open("datalist", "id", "department-options")
		for _, d := range data.Departments {
			m.Void("option", "value", d)
		}
		m.Close("datalist")

		m.Open("div", "class", "space-y-1")
		m.Element("label", "Report", "for", "reportId", "class", "block text-sm font-medium text-slate-700")
		m.Open("select", "id", "reportId", "name", "reportId", "class", "w-full rounded-md border border-slate-300 px-3 py-2 text-sm")
		for _, opt := range data.Reports {
			m.Element("option", opt.Label, "value", opt.Value, "selected?", helpers.Bool(opt.Selected))
		}
		m.Close("select")
		fieldError(m, data, "reportId")
		m.Close("div")
		m.Close("div")

		m.Open("div", "class", "flex justify-between")
		m.Element("a", "Cancel", "href", data.CancelHref, "class", helpers.ButtonClass("ghost"))
		m.Element("button", "Add Employee", "type", "submit", "class", helpers.ButtonClass("primary"))
		m.Close("div")
		m.Close("form")
	})
}

func input(m *helpers.Markup, data FormData, name, label, kind, value, placeholder string, extra ...string) {
	_, invalid := data.Errors[name]
	cls := "w-full rounded-md border border-slate-300 px-3 py-2 text-sm"
	if invalid {
		cls = "w-full rounded-md border border-rose-400 px-3 py-2 text-sm"
	}
	m.Open("div", "class", "space-y-1")
	m.Element("label", label, "for", name, "class", "block text-sm font-medium text-slate-700")
	attrs := []string{"id", name, "name", name, "type", kind, "value", value, "placeholder", placeholder, "class", cls}
	if invalid {
		attrs = append(attrs, "aria-invalid", "true", "aria-describedby", name+"-error")
	}
	m.Void("input", append(attrs, extra...)...)
	fieldError(m, data, name)
	m.Close("div")
}

func fieldError(m *helpers.Markup, data FormData, name string) {
	if msg, ok := data.Errors[name]; ok {
		m.Element("p", msg, "id", name+"-error", "class", "text-xs text-rose-600", "data-field-error", name)
	}
}
