package partials

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"finitefield.org/roster-admin/internal/admin/templates/helpers"
)

// Badge renders a pill.
func Badge(label, tone string) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Element("span", label, "class", helpers.BadgeClass(tone))
	})
}

// EmptyState renders a muted placeholder for empty collections.
func EmptyState(message string) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		m.Element("div", message, "class", "rounded-lg border border-dashed border-slate-300 p-8 text-center text-sm text-slate-500", "data-empty-state", "")
	})
}

// Alert renders an inline error message.
func Alert(message string) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		if message == "" {
			return
		}
		m.Element("div", message, "role", "alert", "class", "mb-4 rounded-md border border-rose-200 bg-rose-50 px-4 py-3 text-sm text-rose-700")
	})
}

// Pagination describes a page window over a list.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int
	PrevHref   string
	NextHref   string
	HxTarget   string
	PrevHxHref string
	NextHxHref string
}

// TotalPages returns at least one page.
func (p Pagination) TotalPages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Pager renders previous/next controls. With HxTarget set the links swap the target fragment.
func Pager(p Pagination) templ.Component {
	return helpers.Component(func(_ context.Context, m *helpers.Markup) {
		if p.TotalPages() <= 1 {
			return
		}
		m.Open("nav", "class", "mt-4 flex items-center justify-between text-sm", "aria-label", "Pagination", "data-pagination", "")
		m.Element("span", fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages()), "class", "text-slate-500")
		m.Open("div", "class", "flex gap-2")
		pagerLink(m, "Previous", p.PrevHref, p.PrevHxHref, p.HxTarget, "prev")
		pagerLink(m, "Next", p.NextHref, p.NextHxHref, p.HxTarget, "next")
		m.Close("div")
		m.Close("nav")
	})
}

func pagerLink(m *helpers.Markup, label, href, hxHref, target, rel string) {
	if href == "" {
		m.Element("span", label, "class", helpers.ButtonClass("")+" opacity-50", "aria-disabled", "true")
		return
	}
	if target != "" && hxHref != "" {
		m.Element("a", label, "href", href, "rel", rel, "class", helpers.ButtonClass(""),
			"hx-get", hxHref, "hx-target", "#"+target, "hx-swap", "outerHTML", "hx-push-url", href)
		return
	}
	m.Element("a", label, "href", href, "rel", rel, "class", helpers.ButtonClass(""))
}
