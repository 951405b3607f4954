package ui

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	custommw "finitefield.org/roster-admin/internal/admin/httpserver/middleware"
	"finitefield.org/roster-admin/internal/admin/httpx"
	"finitefield.org/roster-admin/internal/admin/metrics"
	"finitefield.org/roster-admin/internal/admin/observability"
	adminreports "finitefield.org/roster-admin/internal/admin/reports"
)

const maxActionBody = 1 << 20

type mappingRequest struct {
	EmployeeID string `json:"employeeId"`
	ReportID   string `json:"reportId"`
}

type supervisorRequest struct {
	EmployeeID   string `json:"employeeId"`
	SupervisorID string `json:"supervisorId"`
}

// AddToReport maps an employee onto an additional report.
func (h *Handlers) AddToReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req mappingRequest
	if err := decodeAction(r, &req, func(form func(string) string) {
		req.EmployeeID = form("employeeId")
		req.ReportID = form("reportId")
	}); err != nil {
		h.metrics.MappingAction(metrics.ResultInvalid)
		writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Invalid request body"}, "")
		return
	}
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.ReportID = strings.TrimSpace(req.ReportID)
	if req.EmployeeID == "" || req.ReportID == "" {
		h.metrics.MappingAction(metrics.ResultInvalid)
		writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Employee and report are required"}, "")
		return
	}

	result, err := h.reports.AddEmployeeToReport(ctx, req.EmployeeID, req.ReportID)
	switch {
	case err == nil:
		h.metrics.MappingAction(metrics.ResultSuccess)
		writeAction(w, r, http.StatusOK, result, "Employee added to report.", custommw.EventMappingsChanged)
	case errors.Is(err, adminreports.ErrAlreadyMapped):
		h.metrics.MappingAction(metrics.ResultConflict)
		writeAction(w, r, http.StatusConflict, result, "")
	case errors.Is(err, adminreports.ErrReportNotFound), errors.Is(err, adminreports.ErrEmployeeNotFound):
		h.metrics.MappingAction(metrics.ResultNotFound)
		writeAction(w, r, http.StatusNotFound, result, "")
	default:
		h.metrics.MappingAction(metrics.ResultError)
		logger.Error("actions: add employee to report failed", zap.Error(err))
		if result.Error == "" {
			result = adminreports.ActionResult{Error: "Failed to add employee to report"}
		}
		writeAction(w, r, http.StatusInternalServerError, result, "")
	}
}

// UpdateStatus records employee status changes. JSON callers send an array of
// updates; form callers send a single update.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var updates []adminreports.StatusUpdate
	if isJSON(r) {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxActionBody)).Decode(&updates); err != nil {
			writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Invalid request body"}, "")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Invalid request body"}, "")
			return
		}
		active, ok := parseBool(r.PostFormValue("isActive"))
		if !ok {
			writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "isActive must be true or false"}, "")
			return
		}
		updates = []adminreports.StatusUpdate{{
			EmployeeID: strings.TrimSpace(r.PostFormValue("employeeId")),
			ReportID:   strings.TrimSpace(r.PostFormValue("reportId")),
			IsActive:   active,
		}}
	}
	for _, u := range updates {
		if strings.TrimSpace(u.EmployeeID) == "" {
			writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Employee is required"}, "")
			return
		}
	}

	result, err := h.reports.UpdateEmployeeStatus(ctx, updates)
	if err != nil {
		observability.FromContext(ctx).Error("actions: update status failed", zap.Error(err))
		writeAction(w, r, http.StatusInternalServerError, adminreports.ActionResult{Error: "Failed to update employee status"}, "")
		return
	}
	writeAction(w, r, http.StatusOK, result, "Employee status updated.")
}

// AssignSupervisor records a supervisor assignment for an employee.
func (h *Handlers) AssignSupervisor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req supervisorRequest
	if err := decodeAction(r, &req, func(form func(string) string) {
		req.EmployeeID = form("employeeId")
		req.SupervisorID = form("supervisorId")
	}); err != nil {
		writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Invalid request body"}, "")
		return
	}
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.SupervisorID = strings.TrimSpace(req.SupervisorID)
	if req.EmployeeID == "" || req.SupervisorID == "" {
		writeAction(w, r, http.StatusBadRequest, adminreports.ActionResult{Error: "Employee and supervisor are required"}, "")
		return
	}

	result, err := h.reports.AssignSupervisor(ctx, req.EmployeeID, req.SupervisorID)
	if err != nil {
		observability.FromContext(ctx).Error("actions: assign supervisor failed", zap.Error(err))
		writeAction(w, r, http.StatusInternalServerError, adminreports.ActionResult{Error: "Failed to assign supervisor"}, "")
		return
	}
	writeAction(w, r, http.StatusOK, result, "Supervisor assigned.")
}

// decodeAction fills dst from a JSON body, or calls fromForm with the parsed form values.
func decodeAction(r *http.Request, dst any, fromForm func(func(string) string)) error {
	if isJSON(r) {
		return json.NewDecoder(io.LimitReader(r.Body, maxActionBody)).Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(r.PostFormValue)
	return nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// writeAction answers with the ActionResult JSON. htmx callers also get a toast;
// failures reuse the result's error message.
func writeAction(w http.ResponseWriter, r *http.Request, status int, result adminreports.ActionResult, successMessage string, events ...string) {
	if custommw.IsHTMXRequest(r.Context()) {
		if result.Success {
			custommw.TriggerToast(w, successMessage, custommw.ToneSuccess, events...)
		} else {
			message := result.Error
			if message == "" {
				message = "Something went wrong. Please try again."
			}
			tone := custommw.ToneDanger
			if status == http.StatusConflict {
				tone = custommw.ToneWarning
			}
			custommw.TriggerToast(w, message, tone)
		}
	}
	httpx.WriteJSON(w, status, result)
}
