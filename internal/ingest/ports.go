// Package ingest loads categorized transactions from spreadsheet-shaped
// sources. Each backend produces one transaction group per sheet; rows
// failing date or amount coercion are dropped at this boundary so the
// analysis engine can assume clean input.
package ingest

import (
	"context"

	"expensecast/internal/core"
)

// TransactionSource is the inbound port every data backend implements.
type TransactionSource interface {
	// Load reads the whole source and returns transactions grouped by
	// sheet name.
	Load(ctx context.Context) (map[string][]core.Transaction, error)
}
