// Package navigation defines the sidebar menu.
package navigation

import "finitefield.org/roster-admin/internal/admin/httpserver/middleware"

// MenuItem is a single sidebar link.
type MenuItem struct {
	Key         string
	Label       string
	Href        string
	Pattern     string
	MatchPrefix bool
}

// MenuGroup is a titled block of links.
type MenuGroup struct {
	Key   string
	Label string
	Items []MenuItem
}

// BuildMenu returns the sidebar groups rooted at basePath.
func BuildMenu(basePath string) []MenuGroup {
	href := func(suffix string) string { return middleware.JoinBasePath(basePath, suffix) }
	return []MenuGroup{
		{
			Key:   "reports",
			Label: "Reports",
			Items: []MenuItem{
				{Key: "reports", Label: "Reports", Href: href("/reports"), Pattern: href("/reports"), MatchPrefix: true},
				{Key: "incomplete-mappings", Label: "Incomplete Mappings", Href: href("/incomplete-mappings"), Pattern: href("/incomplete-mappings")},
			},
		},
		{
			Key:   "people",
			Label: "People",
			Items: []MenuItem{
				{Key: "employees", Label: "Employees", Href: href("/employees"), Pattern: href("/employees"), MatchPrefix: true},
				{Key: "departments", Label: "Departments", Href: href("/departments"), Pattern: href("/departments")},
				{Key: "search", Label: "Search", Href: href("/search"), Pattern: href("/search")},
			},
		},
		{
			Key:   "about",
			Label: "Company",
			Items: []MenuItem{
				{Key: "about", Label: "About", Href: href("/about"), Pattern: href("/about")},
			},
		},
	}
}
