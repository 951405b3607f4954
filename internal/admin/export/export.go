// Package export flattens report/employee mappings into downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"finitefield.org/roster-admin/internal/admin/reports"
)

// Format identifies an export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet holding the rows of an xlsx export.
const SheetName = "Mappings"

// Header is the column header shared by every format.
var Header = []string{
	"Report ID",
	"Report Name",
	"Report Region",
	"Employee ID",
	"Employee Name",
	"Employee Email",
	"Employee Position",
	"Employee Department",
}

// Row is one (report, employee) mapping.
type Row struct {
	ReportID           string
	ReportName         string
	ReportRegion       string
	EmployeeID         string
	EmployeeName       string
	EmployeeEmail      string
	EmployeePosition   string
	EmployeeDepartment string
}

func (r Row) values() []string {
	return []string{
		r.ReportID,
		r.ReportName,
		r.ReportRegion,
		r.EmployeeID,
		r.EmployeeName,
		r.EmployeeEmail,
		r.EmployeePosition,
		r.EmployeeDepartment,
	}
}

// Rows emits one row per mapping in report order then mapping order.
// Mapping ids without an employee record are skipped.
func Rows(ds reports.Dataset) []Row {
	employees := make(map[string]reports.Employee, len(ds.Employees))
	for _, e := range ds.Employees {
		employees[e.ID] = e
	}

	out := make([]Row, 0)
	for _, r := range ds.Reports {
		for _, id := range r.Mappings {
			e, ok := employees[id]
			if !ok {
				continue
			}
			out = append(out, Row{
				ReportID:           r.ID,
				ReportName:         r.Name,
				ReportRegion:       r.Region,
				EmployeeID:         e.ID,
				EmployeeName:       e.Name,
				EmployeeEmail:      e.Email,
				EmployeePosition:   e.Position,
				EmployeeDepartment: e.Department,
			})
		}
	}
	return out
}

// WriteCSV writes the header followed by rows.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.values()); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook with the header in row 1.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row.values()); err != nil {
			return err
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("export: freeze header: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("export: cell name: %w", err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("export: set row %d: %w", rowNum, err)
	}
	return nil
}

// Write dispatches to the writer for format.
func Write(w io.Writer, format Format, rows []Row) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	default:
		return fmt.Errorf("export: unsupported format %q", format)
	}
}

// ContentType returns the MIME type for format.
func ContentType(format Format) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns the download name for an export taken at now.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("employee-report-mappings-%s.%s", now.Format("2006-01-02"), format)
}
