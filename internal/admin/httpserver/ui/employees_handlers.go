package ui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/observability"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
	employeestpl "finitefield.org/roster-admin/internal/admin/templates/employees"
	"finitefield.org/roster-admin/internal/admin/templates/partials"
)

// EmployeesPage lists every employee.
func (h *Handlers) EmployeesPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	basePath := custommw.BasePathFromContext(ctx)
	data := employeestpl.BuildList(basePath, h.reports.Employees(ctx))
	templ.Handler(employeestpl.List(data)).ServeHTTP(w, r)
}

// EmployeeDetail renders a single employee with the reports it belongs to.
func (h *Handlers) EmployeeDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	basePath := custommw.BasePathFromContext(ctx)
	employeeID := strings.TrimSpace(chi.URLParam(r, "employeeID"))

	employee, err := h.reports.Employee(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, adminreports.ErrEmployeeNotFound) {
			observability.FromContext(ctx).Error("employees: load failed", zap.String("employee_id", employeeID), zap.Error(err))
		}
		h.renderNotFound(w, r, "Employee not found", "The requested employee does not exist.")
		return
	}

	memberOf := h.reports.ReportsForEmployee(ctx, employee.ID)
	candidates := make([]adminreports.Supervisor, 0)
	seen := make(map[string]struct{})
	for _, report := range memberOf {
		for _, sup := range h.reports.SupervisorsForReport(ctx, report.ID) {
			if _, ok := seen[sup.ID]; ok {
				continue
			}
			seen[sup.ID] = struct{}{}
			candidates = append(candidates, sup)
		}
	}
	if len(candidates) == 0 {
		candidates = h.reports.Snapshot(ctx).Supervisors
	}

	data := employeestpl.BuildDetail(basePath, employee, memberOf, h.reports.Regions(ctx), candidates)
	templ.Handler(employeestpl.Detail(data)).ServeHTTP(w, r)
}

// NewEmployeePage renders the add employee form.
func (h *Handlers) NewEmployeePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	basePath := custommw.BasePathFromContext(ctx)
	values := adminreports.NewEmployee{ReportID: strings.TrimSpace(r.URL.Query().Get("report"))}
	data := employeestpl.BuildForm(basePath, values, nil, h.reports.UniqueDepartments(ctx), h.reports.Reports(ctx))
	templ.Handler(employeestpl.New(data)).ServeHTTP(w, r)
}

// CreateEmployee handles the add employee form. Invalid input re-renders the form with 422.
func (h *Handlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	basePath := custommw.BasePathFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse the request.", http.StatusBadRequest)
		return
	}

	input := adminreports.NewEmployee{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		Position:   r.PostFormValue("position"),
		Department: r.PostFormValue("department"),
		ReportID:   r.PostFormValue("reportId"),
	}

	employee, err := h.reports.AddEmployee(ctx, input)
	if err != nil {
		status := http.StatusUnprocessableEntity
		var verr *adminreports.ValidationError
		if !errors.As(err, &verr) {
			status = http.StatusInternalServerError
			observability.FromContext(ctx).Error("employees: create failed", zap.Error(err))
		}
		data := employeestpl.BuildForm(basePath, input, err, h.reports.UniqueDepartments(ctx), h.reports.Reports(ctx))
		templ.Handler(employeestpl.New(data), templ.WithStatus(status)).ServeHTTP(w, r)
		return
	}

	custommw.TriggerToast(w, "Employee "+employee.Name+" added.", custommw.ToneSuccess)
	custommw.Redirect(w, r, joinBasePath(basePath, "/employees/"+url.PathEscape(employee.ID)))
}

func (h *Handlers) renderNotFound(w http.ResponseWriter, r *http.Request, title, message string) {
	component := partials.Layout(partials.Page{
		Title: title,
		Body:  partials.EmptyState(message),
	})
	templ.Handler(component, templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}
