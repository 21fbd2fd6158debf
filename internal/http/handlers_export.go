package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"expensecast/internal/core"
	applog "expensecast/internal/log"
	"expensecast/internal/report"
)

// buildReport assembles a report for the requested category, or the
// company-wide one when no category is given. Error responses are
// written by this method.
func (s *Server) buildReport(w http.ResponseWriter, r *http.Request) (report.Report, bool) {
	g := s.dataset()
	if g == nil {
		errorJSON(w, http.StatusConflict, "no dataset loaded")
		return report.Report{}, false
	}

	periods := periodsParam(r, s.forecastPeriods)
	category := sanitizeInput(r.URL.Query().Get("category"))
	if category == "" || category == core.CombinedCategory {
		return report.Build(s.title, g, periods), true
	}
	rep, err := report.BuildCategory(s.title, g, category, periods)
	if err != nil {
		if errors.Is(err, core.ErrUnknownCategory) {
			errorJSON(w, http.StatusNotFound, "unknown category: "+category)
		} else {
			errorJSON(w, http.StatusInternalServerError, "could not build the report")
		}
		return report.Report{}, false
	}
	return rep, true
}

func exportFilename(base, ext string) string {
	return base + "-" + time.Now().Format("2006-01-02") + "." + ext
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}

	out, err := s.pdf.Render(rep)
	if err != nil {
		if errors.Is(err, report.ErrNoFont) {
			errorJSON(w, http.StatusServiceUnavailable, "pdf reports are disabled: no font configured")
			return
		}
		s.logger.LogError(r.Context(), "pdf render failed", err,
			applog.ComponentReport, applog.OpRender, applog.NewFields())
		errorJSON(w, http.StatusInternalServerError, "could not render the report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename("expense-report", "pdf")+`"`)
	_, _ = w.Write(out)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rep); err != nil {
		s.logger.LogError(r.Context(), "csv export failed", err,
			applog.ComponentReport, applog.OpExport, applog.NewFields())
		errorJSON(w, http.StatusInternalServerError, "could not export the data")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename("monthly-data", "csv")+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}

	out, err := report.RenderXLSX(rep)
	if err != nil {
		s.logger.LogError(r.Context(), "xlsx export failed", err,
			applog.ComponentReport, applog.OpExport, applog.NewFields())
		errorJSON(w, http.StatusInternalServerError, "could not export the workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename("expense-report", "xlsx")+`"`)
	_, _ = w.Write(out)
}
