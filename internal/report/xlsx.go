package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet    = "Monthly Data"
	summarySheet = "Summary"
)

// RenderXLSX produces a workbook with one row per analyzed month on the
// data sheet and headline metrics per group on the summary sheet.
func RenderXLSX(rep Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", dataSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#212F3D"}, Pattern: 1},
	})
	numberStyle, _ := f.NewStyle(&excelize.Style{
		NumFmt: 2, // 0.00
	})

	if err := writeDataSheet(f, rep, headerStyle, numberStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, rep, headerStyle, numberStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDataSheet(f *excelize.File, rep Report, headerStyle, numberStyle int) error {
	headers := []string{"Group", "Month", "Total", "Transactions", "Average", "Min", "Max", "MoM Growth %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(dataSheet, cell, h)
	}
	f.SetCellStyle(dataSheet, "A1", "H1", headerStyle)

	row := 2
	for _, sec := range rep.Sections {
		for _, b := range sec.Buckets {
			f.SetCellValue(dataSheet, fmt.Sprintf("A%d", row), sec.Category)
			f.SetCellValue(dataSheet, fmt.Sprintf("B%d", row), string(b.Month))
			f.SetCellValue(dataSheet, fmt.Sprintf("C%d", row), b.TotalAmount)
			f.SetCellValue(dataSheet, fmt.Sprintf("D%d", row), b.Count)
			f.SetCellValue(dataSheet, fmt.Sprintf("E%d", row), b.Average)
			f.SetCellValue(dataSheet, fmt.Sprintf("F%d", row), b.Min)
			f.SetCellValue(dataSheet, fmt.Sprintf("G%d", row), b.Max)
			if b.GrowthPct != nil {
				f.SetCellValue(dataSheet, fmt.Sprintf("H%d", row), *b.GrowthPct)
			}
			f.SetCellStyle(dataSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), numberStyle)
			row++
		}
	}
	f.SetColWidth(dataSheet, "A", "A", 22)
	f.SetColWidth(dataSheet, "B", "H", 14)
	return nil
}

func writeSummarySheet(f *excelize.File, rep Report, headerStyle, numberStyle int) error {
	f.MergeCell(summarySheet, "A1", "G1")
	f.SetCellValue(summarySheet, "A1", rep.Title+" - generated "+rep.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	headers := []string{"Group", "Total", "Avg/Month", "Growth %", "Efficiency", "Trend", "Period"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(summarySheet, cell, h)
	}
	f.SetCellStyle(summarySheet, "A2", "G2", headerStyle)

	row := 3
	for _, sec := range rep.Sections {
		snap := sec.Snapshot
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), sec.Category)
		if snap.Valid {
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), snap.TotalSpent)
			f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), snap.AvgMonthly)
			if snap.GrowthDefined {
				f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), snap.GrowthRate)
			}
			f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), snap.EfficiencyScore)
			f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), snap.Trend)
			f.SetCellValue(summarySheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%s to %s", snap.PeriodStart, snap.PeriodEnd))
			f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("C%d", row), numberStyle)
		} else {
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), "no data")
		}
		row++
	}

	// Share table next to the metrics.
	row++
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Breakdown")
	f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	row++
	for _, share := range rep.Shares {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), share.Name)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), share.Total.InexactFloat64())
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), share.Share*100)
		row++
	}

	f.SetColWidth(summarySheet, "A", "A", 22)
	f.SetColWidth(summarySheet, "B", "G", 15)
	return nil
}
