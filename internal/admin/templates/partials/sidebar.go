package partials

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/navigation"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
)

// Sidebar renders the menu and highlights the current route.
func Sidebar(menu []navigation.MenuGroup) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("aside", "class", "hidden w-64 shrink-0 border-r border-slate-200 bg-white px-4 py-6 md:block", "data-sidebar", "")
		m.Element("a", "Report Admin", "href", helpers.Href(ctx, "/reports"), "class", "mb-6 block px-3 text-lg font-semibold")
		m.Open("nav", "aria-label", "Main")
		for _, group := range menu {
			if len(group.Items) == 0 {
				continue
			}
			m.Open("div", "class", "mb-6", "data-menu-group", group.Key)
			m.Element("p", group.Label, "class", "mb-2 px-3 text-xs font-semibold uppercase tracking-wide text-slate-400")
			m.Open("ul", "class", "space-y-1")
			for _, item := range group.Items {
				active := helpers.NavActive(ctx, item.Pattern, item.MatchPrefix)
				current := ""
				if active {
					current = "page"
				}
				m.Open("li")
				if current != "" {
					m.Element("a", item.Label, "href", item.Href, "class", helpers.NavClass(true), "aria-current", current)
				} else {
					m.Element("a", item.Label, "href", item.Href, "class", helpers.NavClass(false))
				}
				m.Close("li")
			}
			m.Close("ul")
			m.Close("div")
		}
		m.Close("nav")
		m.Close("aside")
	})
}
