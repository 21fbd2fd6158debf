package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CombinedCategory is the pseudo-category holding every transaction from
// every category, used for the portfolio-wide view.
const CombinedCategory = "All Categories"

// CategoryShare is a category's contribution to total spending.
type CategoryShare struct {
	Name  string
	Total decimal.Decimal
	Share float64 // fraction of the grand total, 0..1
}

// Dataset holds all loaded transactions grouped by category name.
type Dataset struct {
	byCategory map[string][]Transaction
	names      []string
}

// NewDataset groups transactions by category. Category names are trimmed;
// records with an empty category are dropped.
func NewDataset(txs []Transaction) *Dataset {
	ds := &Dataset{byCategory: make(map[string][]Transaction)}
	for _, tx := range txs {
		name := strings.TrimSpace(tx.Category)
		if name == "" {
			continue
		}
		tx.Category = name
		ds.byCategory[name] = append(ds.byCategory[name], tx)
	}
	ds.names = make([]string, 0, len(ds.byCategory))
	for name := range ds.byCategory {
		ds.names = append(ds.names, name)
	}
	sort.Strings(ds.names)
	return ds
}

// Categories returns the category names in sorted order.
func (ds *Dataset) Categories() []string {
	out := make([]string, len(ds.names))
	copy(out, ds.names)
	return out
}

// Transactions returns the records for one category, or all records when
// name is CombinedCategory. The second return reports whether the category
// exists.
func (ds *Dataset) Transactions(name string) ([]Transaction, bool) {
	if name == CombinedCategory {
		return ds.All(), true
	}
	txs, ok := ds.byCategory[name]
	return txs, ok
}

// All returns every transaction across categories.
func (ds *Dataset) All() []Transaction {
	var out []Transaction
	for _, name := range ds.names {
		out = append(out, ds.byCategory[name]...)
	}
	return out
}

// Len returns the total number of transactions.
func (ds *Dataset) Len() int {
	n := 0
	for _, txs := range ds.byCategory {
		n += len(txs)
	}
	return n
}

// Shares computes each category's fraction of the grand total, sorted by
// descending total. Categories contribute zero share when the grand total
// is zero.
func (ds *Dataset) Shares() []CategoryShare {
	grand := decimal.Zero
	totals := make(map[string]decimal.Decimal, len(ds.names))
	for name, txs := range ds.byCategory {
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
