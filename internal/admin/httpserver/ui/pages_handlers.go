package ui

import (
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/content"
	custommw "finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/observability"
	abouttpl "finitefield.org/roster-admin/internal/admin/templates/about"
	departmentstpl "finitefield.org/roster-admin/internal/admin/templates/departments"
	searchtpl "finitefield.org/roster-admin/internal/admin/templates/search"
)

// DepartmentsPage renders department summaries.
func (h *Handlers) DepartmentsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	basePath := custommw.BasePathFromContext(ctx)
	data := departmentstpl.Build(basePath, h.reports.Departments(ctx), h.reports.Reports(ctx))
	templ.Handler(departmentstpl.Index(data)).ServeHTTP(w, r)
}

// SearchPage renders the employee search page.
func (h *Handlers) SearchPage(w http.ResponseWriter, r *http.Request) {
	basePath := custommw.BasePathFromContext(r.Context())
	results := h.searchResults(r)
	templ.Handler(searchtpl.Index(searchtpl.BuildPageData(basePath, results))).ServeHTTP(w, r)
}

// SearchResults renders the results fragment for htmx requests.
func (h *Handlers) SearchResults(w http.ResponseWriter, r *http.Request) {
	basePath := custommw.BasePathFromContext(r.Context())
	results := h.searchResults(r)
	canonical := joinBasePath(basePath, "/search")
	if raw := custommw.RawQueryFromContext(r.Context()); raw != "" {
		canonical += "?" + raw
	}
	w.Header().Set("HX-Push-Url", canonical)
	templ.Handler(searchtpl.Results(results)).ServeHTTP(w, r)
}

func (h *Handlers) searchResults(r *http.Request) searchtpl.ResultsData {
	ctx := r.Context()
	term := r.URL.Query().Get("q")
	start := time.Now()
	hits := h.reports.SearchEmployees(ctx, term)
	return searchtpl.BuildResults(custommw.BasePathFromContext(ctx), term, hits, time.Since(start))
}

// AboutPage renders the embedded about page.
func (h *Handlers) AboutPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := h.content.Page("about")
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			h.renderNotFound(w, r, "Page not found", "The requested page does not exist.")
			return
		}
		observability.FromContext(ctx).Error("content: render about failed", zap.Error(err))
		http.Error(w, "Failed to render the page.", http.StatusInternalServerError)
		return
	}
	templ.Handler(abouttpl.Index(page)).ServeHTTP(w, r)
}
