// Package mappings finds employees that belong to exactly one report.
package mappings

import (
	"strings"

	"finitefield.org/roster-admin/internal/admin/reports"
)

// Any is the filter value that accepts every value on a dimension.
const Any = "all"

// Assignment pairs an employee with the only report it is mapped to.
type Assignment struct {
	Employee reports.Employee
	Report   reports.Report
}

// Filter narrows assignments. Empty or "all" fields accept everything.
type Filter struct {
	Department string
	Position   string
	ReportID   string
}

// Active reports whether any dimension constrains the result.
func (f Filter) Active() bool {
	return isSet(f.Department) || isSet(f.Position) || isSet(f.ReportID)
}

// Matches reports whether a satisfies every set dimension.
func (f Filter) Matches(a Assignment) bool {
	if isSet(f.Department) && a.Employee.Department != f.Department {
		return false
	}
	if isSet(f.Position) && a.Employee.Position != f.Position {
		return false
	}
	if isSet(f.ReportID) && a.Report.ID != f.ReportID {
		return false
	}
	return true
}

// FindSingle returns every employee mapped to exactly one report, paired with
// that report, in the order employee ids are first encountered while scanning
// reports then mappings. A report listing the same employee twice counts once.
// Pairs whose employee or report cannot be resolved are dropped.
func FindSingle(reportList []reports.Report, employeeList []reports.Employee) []Assignment {
	var order []string
	membership := make(map[string][]string)
	for _, r := range reportList {
		for _, employeeID := range r.Mappings {
			ids, seen := membership[employeeID]
			if !seen {
				order = append(order, employeeID)
			}
			if n := len(ids); n > 0 && ids[n-1] == r.ID {
				continue
			}
			membership[employeeID] = append(ids, r.ID)
		}
	}

	employeesByID := make(map[string]reports.Employee, len(employeeList))
	for _, e := range employeeList {
		employeesByID[e.ID] = e
	}
	reportsByID := make(map[string]reports.Report, len(reportList))
	for _, r := range reportList {
		if _, ok := reportsByID[r.ID]; !ok {
			reportsByID[r.ID] = r
		}
	}

	out := make([]Assignment, 0)
	for _, employeeID := range order {
		ids := membership[employeeID]
		if len(ids) != 1 {
			continue
		}
		employee, ok := employeesByID[employeeID]
		if !ok {
			continue
		}
		report, ok := reportsByID[ids[0]]
		if !ok {
			continue
		}
		out = append(out, Assignment{Employee: employee, Report: report})
	}
	return out
}

// Apply keeps the assignments matching filter, preserving order.
func Apply(assignments []Assignment, filter Filter) []Assignment {
	out := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// FindSingleFiltered is FindSingle followed by Apply.
func FindSingleFiltered(reportList []reports.Report, employeeList []reports.Employee, filter Filter) []Assignment {
	return Apply(FindSingle(reportList, employeeList), filter)
}

// AvailableReports lists the reports an assigned employee could be added to.
func AvailableReports(all []reports.Report, a Assignment) []reports.Report {
	out := make([]reports.Report, 0, len(all))
	for _, r := range all {
		if r.ID == a.Report.ID || r.HasEmployee(a.Employee.ID) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isSet(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && v != Any
}
