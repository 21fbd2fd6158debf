package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/signintech/gopdf"

	"expensecast/internal/analysis"
)

// ErrNoFont is returned when PDF rendering is requested without a TTF
// font configured. gopdf cannot draw text without one.
var ErrNoFont = errors.New("pdf rendering requires a TTF font (set PDF_FONT_PATH)")

// PDFWriter renders reports as A4 PDF documents.
type PDFWriter struct {
	FontPath string
	FontName string
}

const (
	pageWidth    = 595.0
	pageBottom   = 790.0
	leftMargin   = 40.0
	barMaxWidth  = 220.0
	maxBreakdown = 8
)

type pdfDoc struct {
	pdf  *gopdf.GoPdf
	font string
	y    float64
}

// Render produces the PDF bytes for a report.
func (w PDFWriter) Render(rep Report) ([]byte, error) {
	if w.FontPath == "" {
		return nil, ErrNoFont
	}
	font := w.FontName
	if font == "" {
		font = "report"
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFont(font, w.FontPath); err != nil {
		return nil, fmt.Errorf("loading font %s: %w", w.FontPath, err)
	}
	pdf.AddPage()

	d := &pdfDoc{pdf: pdf, font: font}
	d.header(rep)

	lead, ok := rep.Lead()
	if !ok || !lead.Snapshot.Valid {
		d.setFont(13)
		d.text(leftMargin, d.y, "Not enough data to analyze yet. Upload transactions to get started.")
	} else {
		d.executiveSummary(lead)
		d.keyInsights(lead)
		d.breakdown(rep)
		d.trendTable(lead)
		d.forecastTable(lead)
		if len(rep.Sections) > 1 {
			d.groupOverview(rep.Sections[1:])
		}
		d.recommendationsSection()
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *pdfDoc) setFont(size float64) {
	d.pdf.SetFont(d.font, "", size)
}

func (d *pdfDoc) text(x, y float64, s string) {
	d.pdf.SetX(x)
	d.pdf.SetY(y)
	d.pdf.Cell(nil, s)
}

// ensure starts a new page when the next block of the given height would
// run past the bottom margin.
func (d *pdfDoc) ensure(height float64) {
	if d.y+height > pageBottom {
		d.pdf.AddPage()
		d.y = 50
	}
}

func (d *pdfDoc) heading(title string) {
	d.ensure(60)
	d.y += 14
	d.pdf.SetTextColor(33, 47, 61)
	d.setFont(15)
	d.text(leftMargin, d.y, title)
	d.y += 26
}

func (d *pdfDoc) header(rep Report) {
	d.pdf.SetFillColor(33, 47, 61)
	d.pdf.RectFromUpperLeftWithStyle(0, 0, pageWidth, 105, "F")

	d.pdf.SetTextColor(255, 255, 255)
	d.setFont(24)
	d.text(leftMargin, 28, rep.Title)

	d.setFont(12)
	d.text(leftMargin, 62, "Financial Analysis Report")
	d.text(leftMargin, 80, "Generated: "+rep.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	d.pdf.SetTextColor(33, 47, 61)
	d.y = 130
}

func (d *pdfDoc) executiveSummary(lead analysis.Result) {
	snap := lead.Snapshot
	d.heading("Executive Summary: " + lead.Category)

	growth := "n/a"
	if snap.GrowthDefined {
		growth = fmt.Sprintf("%+.1f%% (%s)", snap.GrowthRate, snap.Trend)
	}
	rows := [][2]string{
		{"Total Expenditure", fmt.Sprintf("%.2f", snap.TotalSpent)},
		{"Monthly Average", fmt.Sprintf("%.2f", snap.AvgMonthly)},
		{"Growth Rate", growth},
		{"Efficiency Score", fmt.Sprintf("%.1f / 10 (%s)", snap.EfficiencyScore, snap.EfficiencyComment)},
		{"Analysis Period", fmt.Sprintf("%s to %s (%d months)", snap.PeriodStart.Label(), snap.PeriodEnd.Label(), snap.MonthCount)},
	}

	d.setFont(11)
	for i, row := range rows {
		d.ensure(22)
		if i%2 == 0 {
			d.pdf.SetFillColor(240, 243, 246)
			d.pdf.RectFromUpperLeftWithStyle(leftMargin-8, d.y-4, pageWidth-2*(leftMargin-8), 20, "F")
		}
		d.text(leftMargin, d.y, row[0])
		d.text(250, d.y, row[1])
		d.y += 20
	}
}

func (d *pdfDoc) keyInsights(lead analysis.Result) {
	lines := insightLines(lead.Insights)
	if len(lines) == 0 {
		return
	}
	d.heading("Key Insights")
	d.setFont(11)
	for _, line := range lines {
		d.ensure(20)
		d.text(leftMargin, d.y, "- "+line)
		d.y += 18
	}
}

func (d *pdfDoc) breakdown(rep Report) {
	if len(rep.Shares) == 0 {
		return
	}
	d.heading("Spending Breakdown")
	d.setFont(11)
	for i, share := range rep.Shares {
		if i >= maxBreakdown {
			break
		}
		d.ensure(22)
		d.text(leftMargin, d.y, share.Name)

		barWidth := share.Share * barMaxWidth
		if barWidth < 4 {
			barWidth = 4
		}
		d.pdf.SetFillColor(91, 132, 177)
		d.pdf.RectFromUpperLeftWithStyle(210, d.y+1, barWidth, 12, "F")

		d.text(450, d.y, fmt.Sprintf("%.1f%% (%s)", share.Share*100, share.Total.StringFixed(2)))
		d.y += 20
	}
}

func (d *pdfDoc) trendTable(lead analysis.Result) {
	if len(lead.Buckets) == 0 {
		return
	}
	d.heading("Monthly Trend")
	d.tableHeader([]colSpec{{leftMargin, "Month"}, {180, "Total"}, {300, "Transactions"}, {420, "MoM Growth"}})
	d.setFont(11)
	for _, b := range lead.Buckets {
		d.ensure(20)
		growth := "-"
		if b.GrowthPct != nil {
			growth = fmt.Sprintf("%+.1f%%", *b.GrowthPct)
		}
		d.text(leftMargin, d.y, b.Month.Label())
		d.text(180, d.y, b.Total.StringFixed(2))
		d.text(300, d.y, fmt.Sprintf("%d", b.Count))
		d.text(420, d.y, growth)
		d.y += 18
	}
}

func (d *pdfDoc) forecastTable(lead analysis.Result) {
	if len(lead.Forecast) == 0 {
		return
	}
	d.heading(fmt.Sprintf("Forecast (next %d months)", len(lead.Forecast)))
	d.tableHeader([]colSpec{{leftMargin, "Month"}, {180, "Projected"}})
	d.setFont(11)
	total := 0.0
	for _, p := range lead.Forecast {
		d.ensure(20)
		d.text(leftMargin, d.y, p.Month.Label())
		d.text(180, d.y, fmt.Sprintf("%.2f", p.Amount))
		total += p.Amount
		d.y += 18
	}
	d.ensure(20)
	d.setFont(12)
	d.text(leftMargin, d.y, "Projected total")
	d.text(180, d.y, fmt.Sprintf("%.2f", total))
	d.y += 18
}

func (d *pdfDoc) groupOverview(sections []analysis.Result) {
	d.heading("Group Overview")
	d.tableHeader([]colSpec{{leftMargin, "Group"}, {180, "Total"}, {290, "Avg/Month"}, {390, "Growth"}, {480, "Trend"}})
	d.setFont(11)
	for _, sec := range sections {
		d.ensure(20)
		snap := sec.Snapshot
		if !snap.Valid {
			d.text(leftMargin, d.y, sec.Category)
			d.text(180, d.y, "no data")
			d.y += 18
			continue
		}
		growth := "n/a"
		if snap.GrowthDefined {
			growth = fmt.Sprintf("%+.1f%%", snap.GrowthRate)
		}
		d.text(leftMargin, d.y, sec.Category)
		d.text(180, d.y, fmt.Sprintf("%.2f", snap.TotalSpent))
		d.text(290, d.y, fmt.Sprintf("%.2f", snap.AvgMonthly))
		d.text(390, d.y, growth)
		d.text(480, d.y, snap.Trend)
		d.y += 18
	}
}

// recommendation is one strategic advice block in the closing section.
type recommendation struct {
	Title   string
	Bullets []string
}

// recommendations returns the standing advice printed at the end of
// every report.
func recommendations() []recommendation {
	return []recommendation{
		{
			Title: "1. Implement proactive budget controls",
			Bullets: []string{
				"Set monthly spending limits with 15% contingency",
				"Establish weekly expense review cadence",
				"Implement variance threshold alerts",
			},
		},
		{
			Title: "2. Optimize cost structure",
			Bullets: []string{
				"Focus on highest-spend categories for maximum impact",
				"Renegotiate vendor contracts annually",
				"Implement process efficiency improvements",
			},
		},
		{
			Title: "3. Enhance forecasting accuracy",
			Bullets: []string{
				"Use predictive analytics for budget planning",
				"Monitor leading indicators for trend changes",
				"Adjust forecasts based on actual performance",
			},
		},
		{
			Title: "4. Drive efficiency improvements",
			Bullets: []string{
				"Target 8+ efficiency score in next quarter",
				"Reduce monthly variance below 25%",
				"Implement continuous improvement program",
			},
		},
	}
}

func (d *pdfDoc) recommendationsSection() {
	d.heading("Strategic Recommendations")
	for _, rec := range recommendations() {
		d.ensure(26 + float64(len(rec.Bullets))*18)
		d.setFont(12)
		d.text(leftMargin, d.y, rec.Title)
		d.y += 20
		d.setFont(11)
		for _, b := range rec.Bullets {
			d.text(leftMargin+14, d.y, "- "+b)
			d.y += 18
		}
		d.y += 6
	}
}

type colSpec struct {
	x     float64
	title string
}

func (d *pdfDoc) tableHeader(cols []colSpec) {
	d.ensure(24)
	d.pdf.SetFillColor(33, 47, 61)
	d.pdf.RectFromUpperLeftWithStyle(leftMargin-8, d.y-4, pageWidth-2*(leftMargin-8), 20, "F")
	d.pdf.SetTextColor(255, 255, 255)
	d.setFont(11)
	for _, c := range cols {
		d.text(c.x, d.y, c.title)
	}
	d.pdf.SetTextColor(33, 47, 61)
	d.y += 22
}
