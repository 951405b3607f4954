package search

import (
	"fmt"
	"strings"
	"time"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	employeestpl "finitefield.org/roster-admin/internal/admin/templates/employees"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// ResultsID is the DOM id of the swappable results fragment.
const ResultsID = "search-results"

// PageData represents the payload for the full search page.
type PageData struct {
	Title       string
	Query       QueryState
	Breadcrumbs []partials.Breadcrumb
	FormAction  string
	ResultsPath string
	Results     ResultsData
}

// QueryState holds query parameters for rendering the form.
type QueryState struct {
	Term string
}

// Summary captures high level stats for the current query.
type Summary struct {
	TotalHits int
	Duration  string
}

// ResultsData represents the payload for the results fragment.
type ResultsData struct {
	Term         string
	Heading      string
	Message      string
	EmptyMessage string
	Cards        []employeestpl.Card
	Summary      Summary
}

// BuildResults assembles the results fragment for term.
func BuildResults(basePath, term string, hits []adminreports.Employee, elapsed time.Duration) ResultsData {
	term = strings.TrimSpace(term)
	data := ResultsData{Term: term}
	if term == "" {
		data.Heading = "Search for employees"
		data.Message = "Enter a search term to find employees by name, email, position, or department."
		return data
	}

	data.Heading = fmt.Sprintf("Search results for %q", term)
	suffix := "s"
	if len(hits) == 1 {
		suffix = ""
	}
	data.Message = fmt.Sprintf("Found %d employee%s matching your search.", len(hits), suffix)
	data.EmptyMessage = "No employees found matching your search."
	data.Cards = employeestpl.Cards(basePath, hits)
	data.Summary = Summary{TotalHits: len(hits), Duration: formatDuration(elapsed)}
	return data
}

// BuildPageData assembles the full search page payload.
func BuildPageData(basePath string, results ResultsData) PageData {
	return PageData{
		Title:       "Search Results",
		Query:       QueryState{Term: results.Term},
		Breadcrumbs: []partials.Breadcrumb{{Label: "Search"}},
		FormAction:  middleware.JoinBasePath(basePath, "/search"),
		ResultsPath: middleware.JoinBasePath(basePath, "/search/results"),
		Results:     results,
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	if d < time.Millisecond {
		return "<1ms"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
