package importshandler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"rosterimport/internal/domain/roster"
	"rosterimport/internal/platform/excel"
	"rosterimport/internal/platform/metrics"
	"rosterimport/internal/transport/http/api"
	"rosterimport/internal/transport/http/middleware"
)

type Handler struct {
	Parser  *roster.Parser
	Metrics *metrics.Collector
}

func NewHandler(parser *roster.Parser, collector *metrics.Collector) *Handler {
	return &Handler{Parser: parser, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/imports", func(r chi.Router) {
		r.Post("/roster", h.handleImportRoster)
		r.Post("/roster/report", h.handleRosterReport)
		r.Post("/employees", h.handleImportEmployees)
	})
}

func (h *Handler) handleImportRoster(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	rows, ok := h.readUpload(w, r, reqID)
	if !ok {
		return
	}

	result, issues := h.Parser.ParseRoster(rows)
	h.recordImport(len(result.Entries), issues)

	api.Success(w, map[string]any{
		"result": result,
		"issues": issues,
	}, reqID)
}

func (h *Handler) handleImportEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	rows, ok := h.readUpload(w, r, reqID)
	if !ok {
		return
	}

	entries, issues := h.Parser.ParseEmployees(rows)
	h.recordImport(len(entries), issues)

	api.Success(w, map[string]any{
		"entries": entries,
		"issues":  issues,
	}, reqID)
}

func (h *Handler) handleRosterReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	rows, ok := h.readUpload(w, r, reqID)
	if !ok {
		return
	}

	result, issues := h.Parser.ParseRoster(rows)
	h.recordImport(len(result.Entries), issues)

	pdf := buildSummaryPDF(result, issues)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="roster-summary.pdf"`)
	if err := pdf.Output(w); err != nil {
		slog.Error("pdf output failed", "err", err, "requestId", reqID)
	}
}

// readUpload pulls the workbook out of a multipart form and converts it
// to raw rows. It writes the failure response itself and reports success
// through the bool.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, reqID string) ([]roster.RawRow, bool) {
	file, header, ok := h.formFile(w, r, reqID)
	if !ok {
		return nil, false
	}
	defer file.Close()

	rows, err := excel.ReadRowsFrom(file, r.FormValue("sheet"))
	if err != nil {
		switch {
		case errors.Is(err, excel.ErrSheetNotFound):
			api.Fail(w, http.StatusBadRequest, "sheet_not_found", err.Error(), reqID)
		default:
			api.Fail(w, http.StatusBadRequest, "unsupported_format", err.Error(), reqID)
		}
		slog.Warn("upload rejected", "err", err, "file", header.Filename, "requestId", reqID)
		return nil, false
	}
	return rows, true
}

func (h *Handler) formFile(w http.ResponseWriter, r *http.Request, reqID string) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_form", "file too large or invalid form", reqID)
		return nil, nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "missing_file", "no file provided", reqID)
		return nil, nil, false
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		file.Close()
		api.Fail(w, http.StatusBadRequest, "unsupported_format",
			fmt.Sprintf("expected an .xlsx upload, got %q", ext), reqID)
		return nil, nil, false
	}
	return file, header, true
}

func (h *Handler) recordImport(accepted int, issues []roster.Issue) {
	if h.Metrics == nil {
		return
	}
	rejected, warnings := 0, 0
	for _, issue := range issues {
		switch issue.Severity {
		case roster.SeverityError:
			if issue.Row > 0 {
				rejected++
			}
		case roster.SeverityWarning:
			warnings++
		}
	}
	h.Metrics.RecordImport(accepted, rejected, warnings)
}

func buildSummaryPDF(result roster.RosterParseResult, issues []roster.Issue) *gofpdf.Fpdf {
	errCount, warnCount := 0, 0
	for _, issue := range issues {
		if issue.Severity == roster.SeverityError {
			errCount++
		} else {
			warnCount++
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Roster Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	if start, ok := result.WeekStartDate(); ok {
		end, _ := result.WeekEndDate()
		pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Shifts: %d", result.TotalShifts()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total hours: %.2f", result.TotalHours()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Unique employees: %d", result.UniqueEmployees()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issues: %d errors, %d warnings", errCount, warnCount))
	return pdf
}
