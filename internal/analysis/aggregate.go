// Package analysis implements the monthly aggregation and metrics engine:
// bucketing transactions by calendar month, deriving headline metrics,
// fitting a linear trend forecast and mapping the numbers to plain-language
// insights. Everything in this package is a pure function of its input.
package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"expensecast/internal/core"
)

// MonthlyBucket is one calendar month's aggregated statistics.
//
// Index is the dense 1-based position of the bucket in the chronological
// sequence. It is the regression x-axis: calendar gaps are not filled, so
// a missing month compresses the index axis rather than producing a zero
// bucket.
type MonthlyBucket struct {
	Month core.MonthKey
	Index int

	Total       decimal.Decimal // exact sum of amounts
	TotalAmount float64         // Total as float64, for statistics
	Average     float64
	StdDev      float64
	Min         float64
	Max         float64
	Count       int

	// GrowthPct is the month-over-month change in TotalAmount versus the
	// previous bucket, in percent. Nil for the first bucket and when the
	// previous total is zero.
	GrowthPct *float64
}

// Aggregate groups transactions by calendar month and computes per-month
// statistics. The result is ordered ascending by month with Index 1..N.
// An empty input yields a nil slice, not an error.
func Aggregate(txs []core.Transaction) []MonthlyBucket {
	if len(txs) == 0 {
		return nil
	}

	type acc struct {
		total   decimal.Decimal
		amounts []float64
	}
	groups := make(map[core.MonthKey]*acc)
	for _, tx := range txs {
		key := tx.MonthKey()
		g, ok := groups[key]
		if !ok {
			g = &acc{total: decimal.Zero}
			groups[key] = g
		}
		g.total = g.total.Add(tx.Amount)
		f, _ := tx.Amount.Float64()
		g.amounts = append(g.amounts, f)
	}

	keys := make([]core.MonthKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buckets := make([]MonthlyBucket, 0, len(keys))
	for i, key := range keys {
		g := groups[key]
		total, _ := g.total.Float64()

		b := MonthlyBucket{
			Month:       key,
			Index:       i + 1,
			Total:       g.total,
			TotalAmount: total,
			Count:       len(g.amounts),
			Min:         g.amounts[0],
			Max:         g.amounts[0],
		}
		sum := 0.0
		for _, a := range g.amounts {
			sum += a
			if a < b.Min {
				b.Min = a
			}
			if a > b.Max {
				b.Max = a
			}
		}
		b.Average = sum / float64(len(g.amounts))
		b.StdDev = stddev(g.amounts, b.Average)

		if i > 0 {
			prev := buckets[i-1].TotalAmount
			if prev != 0 {
				growth := (total - prev) / prev * 100
				b.GrowthPct = &growth
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// stddev is the population standard deviation around a known mean.
func stddev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// totalsOf extracts the per-month totals in sequence order.
func totalsOf(buckets []MonthlyBucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.TotalAmount
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
