package partials

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
)

// Topbar renders the environment badge, the search box and the export menu.
func Topbar() templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		env := middleware.EnvironmentFromContext(ctx)

		m.Open("div", "class", "sticky top-0 z-40 flex items-center justify-between gap-4 border-b border-slate-200 bg-white/90 px-6 py-3 backdrop-blur", "data-topbar", "")
		m.Open("span", "data-environment-badge", "", "title", env, "class", helpers.BadgeClass(environmentTone(env)))
		m.Element("span", middleware.EnvironmentBadge(env), "aria-hidden", "true")
		m.Element("span", env+" environment", "class", "sr-only")
		m.Close("span")

		m.Open("form", "method", "get", "action", helpers.Href(ctx, "/search"), "role", "search", "class", "flex flex-1 justify-center", "data-topbar-search", "")
		m.Element("label", "Search employees", "for", "topbar-search", "class", "sr-only")
		m.Void("input", "id", "topbar-search", "type", "search", "name", "q", "placeholder", "Search employees...",
			"class", "w-full max-w-md rounded-md border border-slate-300 px-3 py-1.5 text-sm")
		m.Close("form")

		m.Open("div", "class", "flex items-center gap-2", "data-export-menu", "")
		m.Element("a", "Export CSV", "href", helpers.Href(ctx, "/export.csv"), "class", helpers.ButtonClass(""), "hx-boost", "false", "download", "")
		m.Element("a", "Export Excel", "href", helpers.Href(ctx, "/export.xlsx"), "class", helpers.ButtonClass(""), "hx-boost", "false", "download", "")
		m.Close("div")
		m.Close("div")
	})
}

func environmentTone(env string) string {
	switch strings.ToLower(env) {
	case "production", "prod":
		return "danger"
	case "staging", "stg":
		return "warning"
	default:
		return "info"
	}
}
