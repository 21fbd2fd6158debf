package analysis

import (
	"expensecast/internal/core"
)

// DefaultForecastPeriods is the horizon used when a caller does not ask
// for a specific one. The dashboard offers 3 to 12.
const DefaultForecastPeriods = 6

// Result bundles everything one analysis pass produces for a category.
type Result struct {
	Category string
	Buckets  []MonthlyBucket
	Snapshot Snapshot
	Forecast []ForecastPoint
	Insights Insights
}

// Analyze runs the full pipeline for one transaction group: aggregation,
// metrics, forecast and insights. Shares describe the category breakdown
// of the whole dataset and feed the optimization insight; pass nil when a
// breakdown is not available.
func Analyze(category string, txs []core.Transaction, shares []core.CategoryShare, periods int) Result {
	if periods < 1 {
		periods = DefaultForecastPeriods
	}
	buckets := Aggregate(txs)
	snap := ComputeSnapshot(buckets)
	return Result{
		Category: category,
		Buckets:  buckets,
		Snapshot: snap,
		Forecast: Forecast(buckets, periods),
		Insights: BuildInsights(buckets, shares, snap),
	}
}
