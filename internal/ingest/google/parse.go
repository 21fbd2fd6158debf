package google

import (
	"fmt"
	"strconv"

	"expensecast/internal/core"
	"expensecast/internal/ingest"
)

// parseMatrix converts a values matrix (as returned by the Sheets API)
// into transactions. The second return is true when the header row lacks
// the required columns and the sheet should be skipped.
func parseMatrix(values [][]interface{}) ([]core.Transaction, bool) {
	if len(values) < 2 {
		return nil, false
	}
	headers := toStrings(values[0])
	cols, ok := ingest.FindColumns(headers)
	if !ok {
		return nil, true
	}

	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		rows = append(rows, toStrings(raw))
	}
	txs, _ := ingest.ParseRows(cols, rows)
	return txs, false
}

// toStrings renders an API row to cell strings. Numeric cells keep full
// precision so amounts and date serials survive the round trip.
func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch t := v.(type) {
		case string:
			out[i] = t
		case float64:
			out[i] = strconv.FormatFloat(t, 'f', -1, 64)
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprint(t)
		}
	}
	return out
}
