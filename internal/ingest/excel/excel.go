// Package excel reads transaction groups from a multi-sheet .xlsx
// workbook. Each sheet is one category group; the first row carries the
// headers.
package excel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"expensecast/internal/core"
	"expensecast/internal/ingest"
)

type Source struct {
	path string
}

var _ ingest.TransactionSource = (*Source)(nil)

// New creates a source backed by a workbook on disk.
func New(path string) *Source {
	return &Source{path: path}
}

// Load opens the workbook and parses every sheet.
func (s *Source) Load(ctx context.Context) (map[string][]core.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return Parse(ctx, f)
}

// Parse reads a workbook from a stream and returns transactions grouped
// by sheet name. Sheets without the required Date and Amount columns are
// skipped; rows failing date or amount coercion are dropped and counted.
func Parse(ctx context.Context, r io.Reader) (map[string][]core.Transaction, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer book.Close()

	groups := make(map[string][]core.Transaction)
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}

		cols, ok := ingest.FindColumns(rows[0])
		if !ok {
			slog.WarnContext(ctx, "Sheet skipped: missing Date or Amount column",
				"sheet", sheet, "headers", rows[0])
			continue
		}

		txs, dropped := ingest.ParseRows(cols, rows[1:])
		if dropped > 0 {
			slog.DebugContext(ctx, "Dropped unparseable rows",
				"sheet", sheet, "dropped", dropped, "kept", len(txs))
		}
		if len(txs) > 0 {
			groups[sheet] = txs
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("workbook has no parseable sheets: %w", core.ErrNoTransactions)
	}
	return groups, nil
}
