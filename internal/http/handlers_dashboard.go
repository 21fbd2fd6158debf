package http

import (
	"net/http"

	"expensecast/internal/core"
	applog "expensecast/internal/log"
)

// handleDashboard renders the single-page dashboard shell. The page
// fetches its data from the JSON API.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if s.templates == nil {
		errorJSON(w, http.StatusInternalServerError, "templates not loaded")
		return
	}

	data := struct {
		Title            string
		Combined         string
		Categories       []string
		DefaultPeriods   int
		DatasetLoaded    bool
		TransactionCount int
	}{
		Title:          s.title,
		Combined:       core.CombinedCategory,
		DefaultPeriods: s.forecastPeriods,
	}
	if g := s.dataset(); g != nil {
		data.Categories = g.Names()
		data.DatasetLoaded = true
		data.TransactionCount = g.Len()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.logger.LogError(r.Context(), "dashboard template execution failed", err,
			applog.ComponentTemplate, applog.OpRender, applog.NewFields())
	}
}
