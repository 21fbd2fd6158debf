// Package report renders analysis results as downloadable documents:
// an executive PDF, an XLSX workbook and a flat CSV.
package report

import (
	"time"

	"expensecast/internal/analysis"
	"expensecast/internal/core"
)

// Report is the input to every renderer. Sections are ordered with the
// company-wide view first, followed by one section per group.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Sections    []analysis.Result
	Shares      []core.CategoryShare
}

// Build analyzes every group plus the combined view and assembles the
// full company-wide report.
func Build(title string, g *core.Groups, periods int) Report {
	shares := g.Shares()
	sections := make([]analysis.Result, 0, len(g.Names())+1)
	sections = append(sections, analysis.Analyze(core.CombinedCategory, g.All(), shares, periods))
	for _, name := range g.Names() {
		txs, _ := g.Transactions(name)
		heads, _ := g.HeadShares(name)
		sections = append(sections, analysis.Analyze(name, txs, heads, periods))
	}
	return Report{
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Sections:    sections,
		Shares:      shares,
	}
}

// BuildCategory analyzes a single group and assembles a one-section
// report with that group's expense-head breakdown. Unknown groups yield
// core.ErrUnknownCategory.
func BuildCategory(title string, g *core.Groups, category string, periods int) (Report, error) {
	txs, err := g.Transactions(category)
	if err != nil {
		return Report{}, err
	}
	heads, _ := g.HeadShares(category)
	return Report{
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Sections:    []analysis.Result{analysis.Analyze(category, txs, heads, periods)},
		Shares:      heads,
	}, nil
}

// Lead returns the first section, which carries the headline metrics.
func (r Report) Lead() (analysis.Result, bool) {
	if len(r.Sections) == 0 {
		return analysis.Result{}, false
	}
	return r.Sections[0], true
}

// insightLines flattens the insight struct into printable bullet lines,
// skipping empty entries.
func insightLines(ins analysis.Insights) []string {
	var out []string
	for _, s := range []string{ins.Patterns, ins.Optimization, ins.Forecasting, ins.Risk, ins.Seasonal} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
