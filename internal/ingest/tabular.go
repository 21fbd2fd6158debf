package ingest

import (
	"strings"
	"time"

	"expensecast/internal/core"
)

// Column headers recognized after normalization. "Expense Head" carries the
// free-text category label used for breakdown insights; it and the
// description column are optional.
const (
	headerDate   = "date"
	headerAmount = "amount"
	headerHead   = "expense head"
)

var (
	headAliases = []string{headerHead, "category", "head", "expense category"}
	descAliases = []string{"description", "notes", "details", "memo"}
)

// dateLayouts are tried in order when a cell is not an Excel serial number.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"2-Jan-06",
	"02 Jan 2006",
	"January 2, 2006",
	"2006/01/02",
}

// Columns locates the relevant columns in a header row. Ok is false when
// either required column is missing.
type Columns struct {
	Date   int
	Amount int
	Head   int // -1 when absent
	Desc   int // -1 when absent
}

// FindColumns matches headers case-insensitively after trimming.
func FindColumns(headers []string) (Columns, bool) {
	cols := Columns{Date: -1, Amount: -1, Head: -1, Desc: -1}
	for i, h := range headers {
		switch normalizeHeader(h) {
		case headerDate:
			if cols.Date == -1 {
				cols.Date = i
			}
		case headerAmount:
			if cols.Amount == -1 {
				cols.Amount = i
			}
		default:
			if cols.Head == -1 && isHeadHeader(h) {
				cols.Head = i
			} else if cols.Desc == -1 && isDescHeader(h) {
				cols.Desc = i
			}
		}
	}
	return cols, cols.Date != -1 && cols.Amount != -1
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func isHeadHeader(h string) bool {
	n := normalizeHeader(h)
	for _, alias := range headAliases {
		if n == alias {
			return true
		}
	}
	return false
}

func isDescHeader(h string) bool {
	n := normalizeHeader(h)
	for _, alias := range descAliases {
		if n == alias {
			return true
		}
	}
	return false
}

// ParseRows coerces data rows into transactions. The first return is the
// kept transactions, the second the number of dropped rows. A row is
// dropped when its date or amount does not parse or the record fails
// validation; a missing head label is fine.
func ParseRows(cols Columns, rows [][]string) ([]core.Transaction, int) {
	var out []core.Transaction
	dropped := 0
	for _, row := range rows {
		date, ok := ParseDate(cell(row, cols.Date))
		if !ok {
			dropped++
			continue
		}
		amount, err := core.ParseAmount(cell(row, cols.Amount))
		if err != nil {
			dropped++
			continue
		}
		label := ""
		if cols.Head != -1 {
			label = strings.TrimSpace(cell(row, cols.Head))
		}
		desc := ""
		if cols.Desc != -1 {
			desc = strings.TrimSpace(cell(row, cols.Desc))
		}
		tx := core.Transaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Category:    label,
		}
		if err := tx.Validate(); err != nil {
			dropped++
			continue
		}
		out = append(out, tx)
	}
	return out, dropped
}

// ParseDate accepts the common spreadsheet date layouts and Excel serial
// numbers (days since 1899-12-30).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if serial, ok := parseSerial(s); ok {
		return serial, true
	}
	return time.Time{}, false
}

// parseSerial interprets a numeric cell as an Excel date serial. Serials
// below 61 predate the 1900 leap-year bug window and are not worth
// supporting; anything through year 9999 is.
func parseSerial(s string) (time.Time, bool) {
	days := 0.0
	for _, r := range s {
		if r == '.' {
			break
		}
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
		days = days*10 + float64(r-'0')
	}
	if days < 61 || days > 2958465 {
		return time.Time{}, false
	}
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, int(days)), true
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
