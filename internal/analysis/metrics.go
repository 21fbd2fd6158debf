package analysis

import (
	"math"

	"github.com/shopspring/decimal"

	"expensecast/internal/core"
)

// Efficiency score penalty weights. The score starts at 10 and loses
// variancePenalty points per unit of coefficient of variation plus one
// point per growthPenaltyDivisor percent of absolute growth, clamped to
// [0, 10].
const (
	variancePenalty       = 5.0
	growthPenaltyDivisor  = 10.0
	efficiencyScoreCeil   = 10.0
	criticalCategoryShare = 0.40
)

// Snapshot is the read-only set of headline metrics derived from one
// monthly bucket sequence. Valid is false when the sequence was empty;
// callers must render that as "insufficient data", not as a failure.
type Snapshot struct {
	Valid bool

	Total      decimal.Decimal
	TotalSpent float64
	AvgMonthly float64

	PeakMonth    core.MonthKey
	PeakAmount   float64
	PeakSharePct float64
	TroughMonth  core.MonthKey
	TroughAmount float64

	// GrowthRate is (last-first)/first*100 over bucket totals. When the
	// first month's total is zero the rate is undefined: GrowthDefined is
	// false and GrowthRate is 0.
	GrowthRate    float64
	GrowthDefined bool

	// Variance is the coefficient of variation of monthly totals
	// (stddev/mean), 0 for a single bucket.
	Variance        float64
	EfficiencyScore float64

	Trend             string
	TrendIcon         string
	TrendDescription  string
	EfficiencyComment string

	TransactionCount int
	PeriodStart      core.MonthKey
	PeriodEnd        core.MonthKey
	MonthCount       int
}

// ComputeSnapshot derives a Snapshot from an ordered bucket sequence. The
// input is not mutated. An empty sequence yields a zero Snapshot with
// Valid=false.
func ComputeSnapshot(buckets []MonthlyBucket) Snapshot {
	if len(buckets) == 0 {
		return Snapshot{}
	}

	snap := Snapshot{
		Valid:         true,
		Total:         decimal.Zero,
		GrowthDefined: true,
		PeriodStart:   buckets[0].Month,
		PeriodEnd:     buckets[len(buckets)-1].Month,
		MonthCount:    len(buckets),
	}

	totals := totalsOf(buckets)
	peak, trough := 0, 0
	for i, b := range buckets {
		snap.Total = snap.Total.Add(b.Total)
		snap.TransactionCount += b.Count
		if totals[i] > totals[peak] {
			peak = i
		}
		if totals[i] < totals[trough] {
			trough = i
		}
	}
	snap.TotalSpent, _ = snap.Total.Float64()
	snap.AvgMonthly = mean(totals)

	snap.PeakMonth = buckets[peak].Month
	snap.PeakAmount = totals[peak]
	snap.TroughMonth = buckets[trough].Month
	snap.TroughAmount = totals[trough]
	if snap.TotalSpent != 0 {
		snap.PeakSharePct = snap.PeakAmount / snap.TotalSpent * 100
	}

	if len(buckets) >= 2 {
		first, last := totals[0], totals[len(totals)-1]
		if first == 0 {
			snap.GrowthDefined = false
		} else {
			snap.GrowthRate = (last - first) / first * 100
		}
	}

	if len(buckets) >= 2 && snap.AvgMonthly != 0 {
		snap.Variance = stddev(totals, snap.AvgMonthly) / snap.AvgMonthly
	}

	snap.EfficiencyScore = clamp(0, efficiencyScoreCeil,
		efficiencyScoreCeil-snap.Variance*variancePenalty-math.Abs(snap.GrowthRate)/growthPenaltyDivisor)

	snap.Trend, snap.TrendIcon, snap.TrendDescription = classifyTrend(snap.GrowthRate)
	snap.EfficiencyComment = efficiencyComment(snap.EfficiencyScore)
	return snap
}

// classifyTrend buckets the growth rate into one of four classes,
// evaluated in priority order.
func classifyTrend(growthRate float64) (label, icon, description string) {
	switch {
	case growthRate > 5:
		return "strong growth", "🚀", "Spending is rising quickly"
	case growthRate > 0:
		return "moderate growth", "📈", "Spending is rising gradually"
	case growthRate > -5:
		return "stable", "➡️", "Spending is holding steady"
	default:
		return "declining", "📉", "Spending is trending downward"
	}
}

func efficiencyComment(score float64) string {
	switch {
	case score >= 8:
		return "Excellent expense control"
	case score >= 6:
		return "Good expense management"
	case score >= 4:
		return "Moderate control, room to improve"
	default:
		return "Needs optimization"
	}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
