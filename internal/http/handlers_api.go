package http

import (
	"errors"
	"net/http"

	"expensecast/internal/analysis"
	"expensecast/internal/core"
)

type categoryInfo struct {
	Name         string  `json:"name"`
	Transactions int     `json:"transactions"`
	Total        float64 `json:"total"`
	SharePct     float64 `json:"share_pct"`
}

type monthPoint struct {
	Month     string   `json:"month"`
	Label     string   `json:"label"`
	Index     int      `json:"index"`
	Total     float64  `json:"total"`
	Count     int      `json:"count"`
	Average   float64  `json:"average"`
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	GrowthPct *float64 `json:"growth_pct"`
}

type summaryResponse struct {
	Category          string   `json:"category"`
	Valid             bool     `json:"valid"`
	TotalSpent        float64  `json:"total_spent"`
	AvgMonthly        float64  `json:"avg_monthly"`
	PeakMonth         string   `json:"peak_month"`
	PeakAmount        float64  `json:"peak_amount"`
	PeakSharePct      float64  `json:"peak_share_pct"`
	TroughMonth       string   `json:"trough_month"`
	TroughAmount      float64  `json:"trough_amount"`
	GrowthRate        *float64 `json:"growth_rate"`
	Variance          float64  `json:"variance"`
	EfficiencyScore   float64  `json:"efficiency_score"`
	Trend             string   `json:"trend"`
	TrendIcon         string   `json:"trend_icon"`
	TrendDescription  string   `json:"trend_description"`
	EfficiencyComment string   `json:"efficiency_comment"`
	TransactionCount  int      `json:"transaction_count"`
	MonthCount        int      `json:"month_count"`
	PeriodStart       string   `json:"period_start"`
	PeriodEnd         string   `json:"period_end"`
}

type forecastResponse struct {
	Category       string          `json:"category"`
	Periods        int             `json:"periods"`
	Points         []forecastPoint `json:"points"`
	ProjectedTotal float64         `json:"projected_total"`
	Message        string          `json:"message,omitempty"`
}

type forecastPoint struct {
	Month  string  `json:"month"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// resolve looks up the analysis result for the request's category,
// writing the error response itself when that is not possible.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (analysis.Result, bool) {
	category := categoryParam(r)
	res, err := s.analyzeCached(category, periodsParam(r, s.forecastPeriods))
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, core.ErrUnknownCategory):
		errorJSON(w, http.StatusNotFound, "unknown category: "+category)
	default:
		errorJSON(w, http.StatusConflict, "no dataset loaded")
	}
	return analysis.Result{}, false
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	g := s.dataset()
	if g == nil {
		errorJSON(w, http.StatusConflict, "no dataset loaded")
		return
	}

	shares := g.Shares()
	grand := 0.0
	for _, share := range shares {
		grand += share.Total.InexactFloat64()
	}

	out := make([]categoryInfo, 0, len(shares)+1)
	out = append(out, categoryInfo{
		Name:         core.CombinedCategory,
		Transactions: g.Len(),
		Total:        grand,
		SharePct:     100,
	})
	for _, share := range shares {
		txs, _ := g.Transactions(share.Name)
		out = append(out, categoryInfo{
			Name:         share.Name,
			Transactions: len(txs),
			Total:        share.Total.InexactFloat64(),
			SharePct:     share.Share * 100,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}

	snap := res.Snapshot
	resp := summaryResponse{
		Category:          res.Category,
		Valid:             snap.Valid,
		TotalSpent:        snap.TotalSpent,
		AvgMonthly:        snap.AvgMonthly,
		PeakMonth:         string(snap.PeakMonth),
		PeakAmount:        snap.PeakAmount,
		PeakSharePct:      snap.PeakSharePct,
		TroughMonth:       string(snap.TroughMonth),
		TroughAmount:      snap.TroughAmount,
		Variance:          snap.Variance,
		EfficiencyScore:   snap.EfficiencyScore,
		Trend:             snap.Trend,
		TrendIcon:         snap.TrendIcon,
		TrendDescription:  snap.TrendDescription,
		EfficiencyComment: snap.EfficiencyComment,
		TransactionCount:  snap.TransactionCount,
		MonthCount:        snap.MonthCount,
		PeriodStart:       string(snap.PeriodStart),
		PeriodEnd:         string(snap.PeriodEnd),
	}
	if snap.GrowthDefined {
		rate := snap.GrowthRate
		resp.GrowthRate = &rate
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}

	points := make([]monthPoint, 0, len(res.Buckets))
	for _, b := range res.Buckets {
		points = append(points, monthPoint{
			Month:     string(b.Month),
			Label:     b.Month.Label(),
			Index:     b.Index,
			Total:     b.TotalAmount,
			Count:     b.Count,
			Average:   b.Average,
			Min:       b.Min,
			Max:       b.Max,
			GrowthPct: b.GrowthPct,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": res.Category,
		"months":   points,
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}

	periods := periodsParam(r, s.forecastPeriods)
	resp := forecastResponse{
		Category: res.Category,
		Periods:  periods,
		Points:   []forecastPoint{},
	}
	if len(res.Forecast) == 0 {
		resp.Message = "not enough history to forecast yet: at least two months are needed"
		writeJSON(w, http.StatusOK, resp)
		return
	}
	for _, p := range res.Forecast {
		resp.Points = append(resp.Points, forecastPoint{
			Month:  string(p.Month),
			Label:  p.Month.Label(),
			Amount: p.Amount,
		})
		resp.ProjectedTotal += p.Amount
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": res.Category,
		"valid":    res.Snapshot.Valid,
		"insights": res.Insights,
	})
}
