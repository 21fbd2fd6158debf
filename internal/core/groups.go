package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Groups holds a loaded dataset keyed by group name. Each ingestion source
// produces one group per sheet; the group name is what the dashboard calls
// a category, while Transaction.Category carries the per-row expense head.
type Groups struct {
	byName map[string][]Transaction
	names  []string
}

// NewGroups builds a Groups from an ingestion result. Group names are
// trimmed and groups without transactions are dropped.
func NewGroups(m map[string][]Transaction) *Groups {
	g := &Groups{byName: make(map[string][]Transaction, len(m))}
	for name, txs := range m {
		name = strings.TrimSpace(name)
		if name == "" || len(txs) == 0 {
			continue
		}
		g.byName[name] = txs
	}
	g.names = make([]string, 0, len(g.byName))
	for name := range g.byName {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	return g
}

// Names returns the group names in sorted order.
func (g *Groups) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Transactions returns one group's records, or every record when name is
// CombinedCategory. Unknown names yield ErrUnknownCategory.
func (g *Groups) Transactions(name string) ([]Transaction, error) {
	if name == CombinedCategory {
		return g.All(), nil
	}
	txs, ok := g.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCategory)
	}
	return txs, nil
}

// All returns every transaction across groups, in group-name order.
func (g *Groups) All() []Transaction {
	var out []Transaction
	for _, name := range g.names {
		out = append(out, g.byName[name]...)
	}
	return out
}

// Len returns the total number of transactions.
func (g *Groups) Len() int {
	n := 0
	for _, txs := range g.byName {
		n += len(txs)
	}
	return n
}

// Shares computes each group's fraction of company-wide spending, sorted
// by descending total.
func (g *Groups) Shares() []CategoryShare {
	grand := decimal.Zero
	totals := make(map[string]decimal.Decimal, len(g.names))
	for name, txs := range g.byName {
		sum := decimal.Zero
		for _, tx := range txs {
			sum = sum.Add(tx.Amount)
		}
		totals[name] = sum
		grand = grand.Add(sum)
	}

	out := make([]CategoryShare, 0, len(totals))
	grandF, _ := grand.Float64()
	for name, total := range totals {
		share := 0.0
		if grandF > 0 {
			tf, _ := total.Float64()
			share = tf / grandF
		}
		out = append(out, CategoryShare{Name: name, Total: total, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Name < out[j].Name
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// HeadShares computes the expense-head breakdown within one group, or
// across every group for CombinedCategory.
func (g *Groups) HeadShares(name string) ([]CategoryShare, error) {
	txs, err := g.Transactions(name)
	if err != nil {
		return nil, err
	}
	return NewDataset(txs).Shares(), nil
}
