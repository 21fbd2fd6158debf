// Package memory provides a deterministic in-memory transaction source
// for demos and tests. The data covers a full year across four groups so
// every dashboard view has something to show.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"expensecast/internal/core"
	"expensecast/internal/ingest"
)

type Store struct {
	mu     sync.Mutex
	groups map[string][]core.Transaction
}

var _ ingest.TransactionSource = (*Store)(nil)

// Seed amounts per group, one value per month January..December. The
// shapes are intentional: Operations is flat, Marketing grows, Travel is
// seasonal with a summer spike, Utilities declines slowly.
var seed = map[string][12]float64{
	"Operations": {2400, 2400, 2400, 2400, 2400, 2400, 2400, 2400, 2400, 2400, 2400, 2400},
	"Marketing":  {800, 900, 1000, 1100, 1250, 1380, 1500, 1650, 1800, 1950, 2100, 2300},
	"Travel":     {300, 250, 400, 500, 900, 1800, 2400, 2100, 700, 400, 350, 600},
	"Utilities":  {620, 600, 580, 560, 540, 520, 500, 490, 480, 470, 460, 450},
}

// heads cycle through each group's transactions to give the breakdown
// insight something to chew on.
var heads = map[string][]string{
	"Operations": {"Payroll Support", "Office Rent", "Software"},
	"Marketing":  {"Online Ads", "Events", "Content"},
	"Travel":     {"Flights", "Hotels", "Local Transport"},
	"Utilities":  {"Electricity", "Water", "Internet"},
}

func New() *Store {
	return &Store{groups: build(time.Now().UTC().Year() - 1)}
}

// NewForYear pins the dataset to a specific year, for tests.
func NewForYear(year int) *Store {
	return &Store{groups: build(year)}
}

// Load returns a fresh copy so callers can never mutate the seed data.
func (s *Store) Load(_ context.Context) (map[string][]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]core.Transaction, len(s.groups))
	for name, txs := range s.groups {
		out[name] = append([]core.Transaction(nil), txs...)
	}
	return out, nil
}

func build(year int) map[string][]core.Transaction {
	groups := make(map[string][]core.Transaction, len(seed))
	for name, amounts := range seed {
		labels := heads[name]
		var txs []core.Transaction
		for m := 0; m < 12; m++ {
			// Split each month's total in three dated records.
			total := amounts[m]
			parts := []float64{total * 0.5, total * 0.3, total * 0.2}
			for i, p := range parts {
				txs = append(txs, core.Transaction{
					Date:     time.Date(year, time.Month(m+1), 1+i*9, 0, 0, 0, 0, time.UTC),
					Amount:   decimal.NewFromFloat(p).Round(2),
					Category: labels[i%len(labels)],
				})
			}
		}
		groups[name] = txs
	}
	return groups
}
