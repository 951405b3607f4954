package about

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/content"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// Index renders a sanitised content page inside the layout.
func Index(page content.Page) templ.Component {
	return partials.Layout(partials.Page{
		Title:       page.Title,
		Description: page.Summary,
		Breadcrumbs: []partials.Breadcrumb{{Label: page.Title}},
		Body: helpers.Component(func(_ context.Context, m *helpers.Markup) {
			m.Open("article", "class", "prose max-w-none rounded-lg bg-white p-6 shadow", "data-content-page", page.Slug)
			// HTML has already been through the sanitising policy.
			m.Raw(page.HTML)
			m.Close("article")
		}),
	})
}
