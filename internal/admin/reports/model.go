package reports

import (
	"slices"
	"time"
)

// AllRegions is the region filter value that disables region filtering.
const AllRegions = "all"

// Region is a geographic grouping referenced by reports.
type Region struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Employee is a person who can be mapped to reports.
type Employee struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Email      string `json:"email" yaml:"email"`
	Position   string `json:"position" yaml:"position"`
	Department string `json:"department" yaml:"department"`
	Phone      string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Supervisor oversees one or more reports. Reports reference supervisors by Name.
type Supervisor struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Email             string   `json:"email" yaml:"email"`
	Phone             string   `json:"phone" yaml:"phone"`
	Department        string   `json:"department" yaml:"department"`
	Title             string   `json:"title" yaml:"title"`
	Bio               string   `json:"bio" yaml:"bio"`
	YearsOfExperience int      `json:"yearsOfExperience" yaml:"yearsOfExperience"`
	ReportsManaged    []string `json:"reportsManaged" yaml:"reportsManaged"`
	ProfileImage      string   `json:"profileImage,omitempty" yaml:"profileImage,omitempty"`
}

// Report is a named grouping of employees within a region.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Region      string    `json:"region" yaml:"region"`
	Supervisors []string  `json:"supervisors" yaml:"supervisors"`
	Mappings    []string  `json:"mappings" yaml:"mappings"`
	Description string    `json:"description" yaml:"description"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

// HasEmployee reports whether employeeID is in the report's mappings.
func (r Report) HasEmployee(employeeID string) bool {
	return slices.Contains(r.Mappings, employeeID)
}

// Dataset is the complete in-memory data set backing the store.
type Dataset struct {
	Regions     []Region     `json:"regions" yaml:"regions"`
	Supervisors []Supervisor `json:"supervisors" yaml:"supervisors"`
	Reports     []Report     `json:"reports" yaml:"reports"`
	Employees   []Employee   `json:"employees" yaml:"employees"`
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Regions:     slices.Clone(d.Regions),
		Supervisors: make([]Supervisor, len(d.Supervisors)),
		Reports:     make([]Report, len(d.Reports)),
		Employees:   slices.Clone(d.Employees),
	}
	for i, sup := range d.Supervisors {
		out.Supervisors[i] = cloneSupervisor(sup)
	}
	for i, rep := range d.Reports {
		out.Reports[i] = cloneReport(rep)
	}
	return out
}

// DepartmentSummary aggregates employees and supervisors that share a department name.
type DepartmentSummary struct {
	Name          string
	EmployeeCount int
	Manager       string
	Supervisors   []string
	ReportIDs     []string
}

// StatusUpdate toggles an employee's active flag within a report.
type StatusUpdate struct {
	EmployeeID string `json:"employeeId"`
	IsActive   bool   `json:"isActive"`
	ReportID   string `json:"reportId"`
}

// NewEmployee is the input for creating an employee record.
type NewEmployee struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,max=40"`
	Position   string `json:"position" validate:"omitempty,max=120"`
	Department string `json:"department" validate:"required,max=120"`
	ReportID   string `json:"reportId" validate:"omitempty"`
}

// ActionResult mirrors the {success, error} shape returned by mutation actions.
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func cloneReport(r Report) Report {
	r.Supervisors = slices.Clone(r.Supervisors)
	r.Mappings = slices.Clone(r.Mappings)
	return r
}

func cloneSupervisor(s Supervisor) Supervisor {
	s.ReportsManaged = slices.Clone(s.ReportsManaged)
	return s
}
