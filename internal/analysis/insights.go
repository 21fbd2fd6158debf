package analysis

import (
	"fmt"
	"time"

	"expensecast/internal/core"
)

// Volatility tiers on the coefficient of variation. Below lowVolatility
// spending is treated as predictable, above highVolatility as volatile.
const (
	lowVolatility  = 0.2
	highVolatility = 0.4
)

// Minimum history per insight.
const (
	minSeasonalBuckets   = 6
	minSeasonalMonths    = 3
	minPatternBuckets    = 4
	minForecastingMonths = 3
	minRiskBuckets       = 2
)

// Insights holds one plain-language sentence per insight category. The
// mapping from numbers to sentences is a fixed threshold table with no
// randomness: identical input always yields identical strings.
type Insights struct {
	Patterns     string `json:"patterns"`
	Optimization string `json:"optimization"`
	Forecasting  string `json:"forecasting"`
	Risk         string `json:"risk"`
	Seasonal     string `json:"seasonal"`
}

// BuildInsights maps the monthly series, category shares and snapshot onto
// canned insight sentences.
func BuildInsights(buckets []MonthlyBucket, shares []core.CategoryShare, snap Snapshot) Insights {
	return Insights{
		Patterns:     patternInsight(buckets),
		Optimization: optimizationInsight(shares),
		Forecasting:  forecastingInsight(buckets, snap.Variance),
		Risk:         riskInsight(buckets, snap.Variance),
		Seasonal:     SeasonalInsight(buckets),
	}
}

// SeasonalInsight reports the calendar months with the highest and lowest
// average spend. It needs at least six monthly buckets spanning three
// distinct calendar months to make the claim.
func SeasonalInsight(buckets []MonthlyBucket) string {
	if len(buckets) < minSeasonalBuckets {
		return "We're still learning your patterns. As we get more months of data, we'll spot your seasonal spending habits."
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, b := range buckets {
		t, err := b.Month.Time()
		if err != nil {
			continue
		}
		sums[t.Month()] += b.TotalAmount
		counts[t.Month()]++
	}
	if len(sums) < minSeasonalMonths {
		return "Keep tracking your expenses - we're starting to see some monthly patterns emerge."
	}

	var peak, low time.Month
	var peakAvg, lowAvg float64
	first := true
	for m := time.January; m <= time.December; m++ {
		c, ok := counts[m]
		if !ok {
			continue
		}
		avg := sums[m] / float64(c)
		if first {
			peak, low, peakAvg, lowAvg = m, m, avg, avg
			first = false
			continue
		}
		if avg > peakAvg {
			peak, peakAvg = m, avg
		}
		if avg < lowAvg {
			low, lowAvg = m, avg
		}
	}
	return fmt.Sprintf("We noticed you tend to spend most in %s and least in %s. Plan your budget around these patterns!",
		peak, low)
}

// patternInsight compares the fitted trend slope against ten percent of
// the mean monthly total.
func patternInsight(buckets []MonthlyBucket) string {
	if len(buckets) < minPatternBuckets {
		return "We're still learning your spending patterns. More data will help us provide better insights."
	}
	line := FitTrend(buckets)
	threshold := mean(totalsOf(buckets)) * 0.1
	switch {
	case line.Slope > threshold:
		return "Your expenses are growing steadily month-over-month. This could be due to business growth or price increases."
	case line.Slope < -threshold:
		return "Great news! Your expenses are trending downward, showing good cost control."
	default:
		return "Your spending is quite stable month-to-month, which is excellent for budget planning."
	}
}

func optimizationInsight(shares []core.CategoryShare) string {
	if len(shares) == 0 {
		return "Regular expense reviews can help identify savings opportunities. Consider setting monthly budget targets."
	}
	top := shares[0]
	if top.Share > criticalCategoryShare {
		return fmt.Sprintf("%s is your biggest expense area (%.1f%%). Small savings here could make a big difference to your bottom line.",
			top.Name, top.Share*100)
	}
	return "Your spending is well distributed. Look for small savings across all categories rather than focusing on one area."
}

func forecastingInsight(buckets []MonthlyBucket, variance float64) string {
	if len(buckets) < minForecastingMonths {
		return "We're building a better understanding of your future expenses as we collect more data."
	}
	switch {
	case variance < lowVolatility:
		return "Your spending is very predictable! This makes budget planning reliable and straightforward."
	case variance < highVolatility:
		return "Your spending varies somewhat month-to-month. Budget plans should leave a little headroom."
	default:
		return "Your spending varies a lot month-to-month. Consider setting aside extra funds for unpredictable months."
	}
}

// riskInsight rates spending stability. Variance is meaningless below
// two buckets, so short histories report missing data instead of a
// rating.
func riskInsight(buckets []MonthlyBucket, variance float64) string {
	if len(buckets) < minRiskBuckets {
		return "We're still checking your expense stability. A few more data points will let us judge spending risk."
	}
	switch {
	case variance < lowVolatility:
		return "Excellent expense management! Your spending patterns are stable and well-controlled."
	case variance < highVolatility:
		return "Good expense control. Some monthly variation, but overall well managed."
	default:
		return "Higher spending variation detected. Regular monitoring can help smooth out the fluctuations."
	}
}
