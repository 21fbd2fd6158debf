package analysis

import (
	"math"

	"expensecast/internal/core"
)

// minForecastBuckets is the shortest history a trend fit accepts.
const minForecastBuckets = 2

// ForecastPoint is one projected future month.
type ForecastPoint struct {
	Month  core.MonthKey
	Amount float64
}

// TrendLine is a fitted least-squares line over (bucket index, total).
type TrendLine struct {
	Slope     float64
	Intercept float64
}

// FitTrend computes the closed-form ordinary least-squares line of bucket
// totals against the bucket index. With a zero denominator (all indexes
// equal) the line is flat at the mean.
func FitTrend(buckets []MonthlyBucket) TrendLine {
	if len(buckets) == 0 {
		return TrendLine{}
	}
	totals := totalsOf(buckets)
	xSum := 0.0
	for _, b := range buckets {
		xSum += float64(b.Index)
	}
	xMean := xSum / float64(len(buckets))
	yMean := mean(totals)

	num, den := 0.0, 0.0
	for i, b := range buckets {
		dx := float64(b.Index) - xMean
		num += dx * (totals[i] - yMean)
		den += dx * dx
	}
	if den == 0 {
		return TrendLine{Slope: 0, Intercept: yMean}
	}
	slope := num / den
	return TrendLine{Slope: slope, Intercept: yMean - slope*xMean}
}

// At evaluates the line at an index.
func (t TrendLine) At(index int) float64 {
	return t.Slope*float64(index) + t.Intercept
}

// Forecast projects monthly totals for the requested number of periods.
//
// Fewer than two buckets, or a non-positive periods value, yields an empty
// series; that is a normal outcome, not an error. Projected months follow
// the last bucket's calendar month consecutively, even when the historical
// series had gaps. Every value is clamped at zero and rounded to two
// decimal places.
func Forecast(buckets []MonthlyBucket, periods int) []ForecastPoint {
	if len(buckets) < minForecastBuckets || periods < 1 {
		return nil
	}

	line := FitTrend(buckets)
	last := buckets[len(buckets)-1]

	out := make([]ForecastPoint, 0, periods)
	month := last.Month
	for step := 1; step <= periods; step++ {
		month = month.Next()
		v := line.At(last.Index + step)
		if v < 0 {
			v = 0
		}
		out = append(out, ForecastPoint{Month: month, Amount: round2(v)})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
