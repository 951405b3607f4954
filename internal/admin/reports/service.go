package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Service exposes the report/employee relationships to the admin UI.
type Service interface {
	// Regions returns every region in stable order.
	Regions(ctx context.Context) []Region

	// Reports returns every report in collection order.
	Reports(ctx context.Context) []Report

	// ReportsByRegion returns reports whose region equals regionID. Empty or "all" returns every report.
	ReportsByRegion(ctx context.Context, regionID string) []Report

	// Report returns a single report.
	Report(ctx context.Context, id string) (Report, error)

	// Employees returns every employee in collection order.
	Employees(ctx context.Context) []Employee

	// Employee returns a single employee.
	Employee(ctx context.Context, id string) (Employee, error)

	// EmployeesByReport returns the employees mapped to the report. Unknown reports yield an empty slice.
	EmployeesByReport(ctx context.Context, reportID string) []Employee

	// ReportsForEmployee returns the reports whose mappings include the employee.
	ReportsForEmployee(ctx context.Context, employeeID string) []Report

	// SupervisorByName looks up a supervisor by exact, case-sensitive name.
	SupervisorByName(ctx context.Context, name string) (Supervisor, error)

	// SupervisorsForReport resolves the report's supervisor names, skipping unknown names.
	SupervisorsForReport(ctx context.Context, reportID string) []Supervisor

	// EmployeesBySupervisor returns employees mapped to any report the supervisor manages.
	EmployeesBySupervisor(ctx context.Context, supervisorID string) []Employee

	// UniqueDepartments returns the distinct employee departments in first-seen order.
	UniqueDepartments(ctx context.Context) []string

	// UniquePositions returns the distinct employee positions in first-seen order.
	UniquePositions(ctx context.Context) []string

	// Departments summarises employees and supervisors per department.
	Departments(ctx context.Context) []DepartmentSummary

	// SearchEmployees matches term case-insensitively against name, email, position and department.
	SearchEmployees(ctx context.Context, term string) []Employee

	// Snapshot returns a deep copy of the whole dataset.
	Snapshot(ctx context.Context) Dataset

	// AddEmployeeToReport appends the employee to the report's mappings when not already present.
	AddEmployeeToReport(ctx context.Context, employeeID, reportID string) (ActionResult, error)

	// UpdateEmployeeStatus records status changes. Only logged.
	UpdateEmployeeStatus(ctx context.Context, updates []StatusUpdate) (ActionResult, error)

	// AssignSupervisor records a supervisor assignment. Only logged.
	AssignSupervisor(ctx context.Context, employeeID, supervisorID string) (ActionResult, error)

	// AddEmployee creates an employee record and optionally maps it to a report.
	AddEmployee(ctx context.Context, input NewEmployee) (Employee, error)
}

var (
	// ErrReportNotFound indicates the requested report does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrEmployeeNotFound indicates the requested employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrSupervisorNotFound indicates no supervisor carries the requested name.
	ErrSupervisorNotFound = errors.New("supervisor not found")
	// ErrAlreadyMapped indicates the employee is already part of the report.
	ErrAlreadyMapped = errors.New("employee already mapped to report")
)

const addToReportFailure = "Failed to add employee to report"

// FieldError describes a single invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned when mutation input fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("reports: invalid input [%s]", strings.Join(names, ", "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
