package partials

import (
	"context"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/navigation"
	"finitefield.org/roster-admin/internal/admin/templates/helpers"
)

// Breadcrumb is one entry of the page trail. The last entry is rendered without a link.
type Breadcrumb struct {
	Label string
	Href  string
}

// Page describes the chrome around a page body.
type Page struct {
	Title       string
	Description string
	Breadcrumbs []Breadcrumb
	Actions     templ.Component
	Body        templ.Component
}

// Layout renders a full HTML document with sidebar, top bar and toast region.
func Layout(page Page) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		title := page.Title
		if title == "" {
			title = "Report Admin"
		} else {
			title += " | Report Admin"
		}

		m.Raw("<!DOCTYPE html>")
		m.Open("html", "lang", "en")
		m.Open("head")
		m.Void("meta", "charset", "utf-8")
		m.Void("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		m.Element("title", title)
		m.Void("link", "rel", "stylesheet", "href", "/public/static/admin.css")
		m.Open("script", "src", "https://unpkg.com/htmx.org@1.9.12", "defer?", "true")
		m.Close("script")
		m.Close("head")

		m.Open("body", "class", "min-h-screen bg-slate-50 text-slate-900", "hx-boost", "true")
		m.Open("div", "class", "flex min-h-screen")
		m.Render(ctx, Sidebar(navigation.BuildMenu(helpers.BasePath(ctx))))
		m.Open("div", "class", "flex min-w-0 flex-1 flex-col")
		m.Render(ctx, Topbar())
		m.Open("main", "id", "main", "class", "mx-auto w-full max-w-7xl flex-1 px-6 py-8")
		m.Render(ctx, Header(page))
		m.Render(ctx, page.Body)
		m.Close("main")
		m.Close("div")
		m.Close("div")
		m.Render(ctx, ToastRegion())
		m.Close("body")
		m.Close("html")
	})
}

// Header renders breadcrumbs, the page heading, description and actions.
func Header(page Page) templ.Component {
	return helpers.Component(func(ctx context.Context, m *helpers.Markup) {
		m.Open("header", "class", "mb-6 flex flex-wrap items-end justify-between gap-4")
		m.Open("div")
		if len(page.Breadcrumbs) > 0 {
			m.Render(ctx, Breadcrumbs(page.Breadcrumbs))
		}
		m.Element("h1", page.Title, "class", "text-2xl font-semibold tracking-tight")
		if page.Description != "" {
			m.Element("p", page.Description, "class", "mt-1 text-sm text-slate-500")
		}
		m.Close("div")
		if page.Actions != nil {
			m.Open("div", "class", "flex items-center gap-2", "data-page-actions", "")
			m.Render(ctx, page.Actions)
			m.Close("div")
		}
		m.Close("header")
	})
}

// Breadcrumbs renders a navigation trail.
func Breadcrumbs(items []Breadcrumb) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Open("nav", "aria-label", "Breadcrumb", "class", "mb-2 text-xs text-slate-500")
		m.Open("ol", "class", "flex items-center gap-1")
		for i, item := range items {
			m.Open("li")
			if i > 0 {
				m.Element("span", "/", "class", "mx-1", "aria-hidden", "true")
			}
			if item.Href != "" && i < len(items)-1 {
				m.Element("a", item.Label, "href", item.Href, "class", "hover:text-slate-900")
			} else {
				m.Element("span", item.Label, "aria-current", "page")
			}
			m.Close("li")
		}
		m.Close("ol")
		m.Close("nav")
	})
}

// ToastRegion is the container the client script fills from HX-Trigger toast events.
func ToastRegion() templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Open("div", "id", "toast-region", "data-toast-region", "", "aria-live", "polite", "class", "fixed bottom-4 right-4 z-50 flex flex-col gap-2")
		m.Close("div")
		m.Open("script")
		m.Raw(toastScript)
		m.Close("script")
	})
}

const toastScript = `document.body.addEventListener("toast",function(e){var d=e.detail||{};var r=document.getElementById("toast-region");if(!r||!d.message)return;var t=document.createElement("div");t.className="toast toast-"+(d.tone||"info");t.setAttribute("role","status");t.textContent=d.message;r.appendChild(t);setTimeout(function(){t.remove()},4000)});`
