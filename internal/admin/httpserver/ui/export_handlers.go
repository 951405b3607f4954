package ui

import (
	"bytes"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/export"
	"finitefield.org/roster-admin/internal/admin/httpx"
	"finitefield.org/roster-admin/internal/admin/observability"
)

// ExportCSV downloads every report mapping as CSV.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.serveExport(w, r, export.FormatCSV)
}

// ExportXLSX downloads every report mapping as an xlsx workbook.
func (h *Handlers) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.serveExport(w, r, export.FormatXLSX)
}

// serveExport renders into memory so a failed render never sends a partial
// attachment. The archive copy is written after the response and only logged on failure.
func (h *Handlers) serveExport(w http.ResponseWriter, r *http.Request, format export.Format) {
	ctx := r.Context()
	logger := observability.FromContext(ctx).With(zap.String("format", string(format)))

	rows := export.Rows(h.reports.Snapshot(ctx))
	var buf bytes.Buffer
	if err := export.Write(&buf, format, rows); err != nil {
		logger.Error("export: render failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("export_failed", "Failed to generate the export.", http.StatusInternalServerError).
			WithDetails(map[string]any{"format": string(format)}))
		return
	}

	now := h.now()
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(format, now)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("export: write response failed", zap.Error(err))
		return
	}
	h.metrics.Export(string(format))
	logger.Info("export: served", zap.Int("rows", len(rows)), zap.Int("bytes", buf.Len()))

	if h.archiver == nil {
		return
	}
	name, err := h.archiver.Archive(ctx, format, buf.Bytes())
	if err != nil {
		logger.Error("export: archive failed", zap.Error(err))
		return
	}
	logger.Info("export: archived", zap.String("object", name))
}
