package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV streams one row per analyzed month: group, month, total,
// transaction count and month-over-month growth.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"group", "month", "total", "transactions", "growth_pct"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, sec := range rep.Sections {
		for _, b := range sec.Buckets {
			growth := ""
			if b.GrowthPct != nil {
				growth = strconv.FormatFloat(*b.GrowthPct, 'f', 2, 64)
			}
			row := []string{
				sec.Category,
				string(b.Month),
				b.Total.StringFixed(2),
				strconv.Itoa(b.Count),
				growth,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
