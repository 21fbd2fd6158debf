package report

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"expensecast/internal/core"
)

func testGroups(t *testing.T) *core.Groups {
	t.Helper()
	mk := func(year int, month time.Month, amount float64, head string) core.Transaction {
		return core.Transaction{
			Date:        time.Date(year, month, 5, 0, 0, 0, 0, time.UTC),
			Description: "test",
			Amount:      decimal.NewFromFloat(amount),
			Category:    head,
		}
	}
	return core.NewGroups(map[string][]core.Transaction{
		"Operations": {
			mk(2024, time.January, 1000, "Rent"),
			mk(2024, time.February, 1200, "Rent"),
			mk(2024, time.March, 900, "Cleaning"),
		},
		"Marketing": {
			mk(2024, time.January, 400, "Ads"),
			mk(2024, time.February, 500, "Ads"),
		},
	})
}

func TestBuildSections(t *testing.T) {
	rep := Build("Acme", testGroups(t), 3)

	if len(rep.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(rep.Sections))
	}
	lead, ok := rep.Lead()
	if !ok || lead.Category != core.CombinedCategory {
		t.Fatalf("lead = %q, ok=%v", lead.Category, ok)
	}
	if !lead.Snapshot.Valid {
		t.Fatal("combined snapshot should be valid")
	}
	if got := lead.Snapshot.TotalSpent; got != 4000 {
		t.Fatalf("combined total = %v, want 4000", got)
	}
	if len(rep.Shares) != 2 || rep.Shares[0].Name != "Operations" {
		t.Fatalf("shares = %+v", rep.Shares)
	}
	if len(lead.Forecast) != 3 {
		t.Fatalf("forecast length = %d, want 3", len(lead.Forecast))
	}
}

func TestBuildCategory(t *testing.T) {
	rep, err := BuildCategory("Acme", testGroups(t), "Marketing", 2)
	if err != nil {
		t.Fatalf("expected Marketing to exist, got %v", err)
	}
	if len(rep.Sections) != 1 || rep.Sections[0].Category != "Marketing" {
		t.Fatalf("sections = %+v", rep.Sections)
	}
	// Shares carry the expense-head breakdown for a single group.
	if len(rep.Shares) != 1 || rep.Shares[0].Name != "Ads" {
		t.Fatalf("head shares = %+v", rep.Shares)
	}

	if _, err := BuildCategory("Acme", testGroups(t), "Missing", 2); !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("missing group error = %v, want ErrUnknownCategory", err)
	}
}

func TestWriteCSV(t *testing.T) {
	rep := Build("Acme", testGroups(t), 3)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "group,month,total,transactions,growth_pct" {
		t.Fatalf("header = %q", lines[0])
	}
	// combined (3 months) + Marketing (2) + Operations (3)
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if !strings.Contains(buf.String(), "All Categories,2024-01,1400.00,2,") {
		t.Fatalf("missing combined January row in:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Operations,2024-02,1200.00,1,20.00") {
		t.Fatalf("missing Operations growth row in:\n%s", buf.String())
	}
}

func TestRenderXLSX(t *testing.T) {
	rep := Build("Acme", testGroups(t), 3)

	out, err := RenderXLSX(rep)
	if err != nil {
		t.Fatalf("RenderXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Monthly Data" || sheets[1] != "Summary" {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows("Monthly Data")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header + 8 data rows
	if len(rows) != 9 {
		t.Fatalf("got %d data rows, want 9", len(rows))
	}
	if rows[1][0] != "All Categories" || rows[1][1] != "2024-01" {
		t.Fatalf("first data row = %v", rows[1])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("GetRows summary: %v", err)
	}
	if summary[1][0] != "Group" {
		t.Fatalf("summary header = %v", summary[1])
	}
}

func TestRenderPDFRequiresFont(t *testing.T) {
	_, err := PDFWriter{}.Render(Build("Acme", testGroups(t), 3))
	if err != ErrNoFont {
		t.Fatalf("err = %v, want ErrNoFont", err)
	}
}

func TestRenderPDF(t *testing.T) {
	fontPath := os.Getenv("PDF_FONT_PATH")
	if fontPath == "" {
		t.Skip("PDF_FONT_PATH not set")
	}

	w := PDFWriter{FontPath: fontPath, FontName: "report"}
	out, err := w.Render(Build("Acme", testGroups(t), 6))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", out[:8])
	}
}

func TestRecommendations(t *testing.T) {
	recs := recommendations()
	if len(recs) != 4 {
		t.Fatalf("got %d recommendation blocks, want 4", len(recs))
	}
	wantTitles := []string{
		"budget controls",
		"cost structure",
		"forecasting accuracy",
		"efficiency improvements",
	}
	for i, rec := range recs {
		if !strings.Contains(strings.ToLower(rec.Title), wantTitles[i]) {
			t.Errorf("block %d title %q does not mention %q", i, rec.Title, wantTitles[i])
		}
		if len(rec.Bullets) != 3 {
			t.Errorf("block %d has %d bullets, want 3", i, len(rec.Bullets))
		}
	}
	if !strings.Contains(recs[3].Bullets[0], "8+") {
		t.Errorf("efficiency target bullet = %q", recs[3].Bullets[0])
	}
}

func TestRenderPDFEmptyReport(t *testing.T) {
	fontPath := os.Getenv("PDF_FONT_PATH")
	if fontPath == "" {
		t.Skip("PDF_FONT_PATH not set")
	}

	w := PDFWriter{FontPath: fontPath}
	rep := Report{Title: "Acme", GeneratedAt: time.Now()}
	if _, err := w.Render(rep); err != nil {
		t.Fatalf("Render empty: %v", err)
	}
}
