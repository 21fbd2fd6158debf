package analysis

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensecast/internal/core"
)

func TestSnapshotEmpty(t *testing.T) {
	snap := ComputeSnapshot(nil)
	if snap.Valid {
		t.Fatalf("empty series must yield an invalid snapshot")
	}
}

func TestSnapshotScenarioThreeMonths(t *testing.T) {
	// Jan 1000, Feb 1200, Mar 900.
	buckets := Aggregate([]core.Transaction{
		monthTx(2024, time.January, 1000),
		monthTx(2024, time.February, 1200),
		monthTx(2024, time.March, 900),
	})
	snap := ComputeSnapshot(buckets)

	if !snap.Valid {
		t.Fatalf("expected valid snapshot")
	}
	if !almost(snap.GrowthRate, -10) {
		t.Errorf("growth rate %v, want -10", snap.GrowthRate)
	}
	if math.Abs(snap.AvgMonthly-1033.33) > 0.01 {
		t.Errorf("avg monthly %v, want 1033.33", snap.AvgMonthly)
	}
	if snap.PeakMonth != "2024-02" || !almost(snap.PeakAmount, 1200) {
		t.Errorf("peak %s/%v, want 2024-02/1200", snap.PeakMonth, snap.PeakAmount)
	}
	if snap.TroughMonth != "2024-03" || !almost(snap.TroughAmount, 900) {
		t.Errorf("trough %s/%v, want 2024-03/900", snap.TroughMonth, snap.TroughAmount)
	}
	if want := 1200.0 / 3100.0 * 100; !almost(snap.PeakSharePct, want) {
		t.Errorf("peak share %v, want %v", snap.PeakSharePct, want)
	}
	if snap.PeriodStart != "2024-01" || snap.PeriodEnd != "2024-03" || snap.MonthCount != 3 {
		t.Errorf("period %s..%s over %d months", snap.PeriodStart, snap.PeriodEnd, snap.MonthCount)
	}
}

func TestSnapshotSingleBucket(t *testing.T) {
	snap := ComputeSnapshot(Aggregate([]core.Transaction{monthTx(2024, time.January, 500)}))
	if !snap.Valid {
		t.Fatalf("expected valid snapshot")
	}
	if snap.GrowthRate != 0 || !snap.GrowthDefined {
		t.Errorf("single bucket growth: %v defined=%v, want 0/true", snap.GrowthRate, snap.GrowthDefined)
	}
	if snap.Variance != 0 {
		t.Errorf("single bucket variance %v, want 0", snap.Variance)
	}
}

func TestSnapshotFlatSeries(t *testing.T) {
	// Five equal months: both efficiency penalties are zero.
	var txs []core.Transaction
	for m := time.January; m <= time.May; m++ {
		txs = append(txs, monthTx(2024, m, 500))
	}
	snap := ComputeSnapshot(Aggregate(txs))
	if snap.Variance != 0 || snap.GrowthRate != 0 {
		t.Fatalf("variance=%v growth=%v, want 0/0", snap.Variance, snap.GrowthRate)
	}
	if !almost(snap.EfficiencyScore, 10) {
		t.Fatalf("efficiency %v, want 10", snap.EfficiencyScore)
	}
	if snap.Trend != "stable" {
		t.Fatalf("trend %q, want stable", snap.Trend)
	}
}

func TestSnapshotZeroBaselineGrowth(t *testing.T) {
	snap := ComputeSnapshot(Aggregate([]core.Transaction{
		monthTx(2024, time.January, 0),
		monthTx(2024, time.February, 100),
	}))
	if snap.GrowthDefined {
		t.Fatalf("growth over a zero first month must be undefined")
	}
	if snap.GrowthRate != 0 {
		t.Fatalf("undefined growth must report 0, got %v", snap.GrowthRate)
	}
	if math.IsNaN(snap.EfficiencyScore) || math.IsInf(snap.EfficiencyScore, 0) {
		t.Fatalf("efficiency must stay finite, got %v", snap.EfficiencyScore)
	}
}

func TestSnapshotPeakTieStable(t *testing.T) {
	snap := ComputeSnapshot(Aggregate([]core.Transaction{
		monthTx(2024, time.January, 700),
		monthTx(2024, time.February, 700),
		monthTx(2024, time.March, 100),
		monthTx(2024, time.April, 100),
	}))
	if snap.PeakMonth != "2024-01" {
		t.Errorf("peak tie must keep first occurrence, got %s", snap.PeakMonth)
	}
	if snap.TroughMonth != "2024-03" {
		t.Errorf("trough tie must keep first occurrence, got %s", snap.TroughMonth)
	}
}

func TestEfficiencyScoreBounds(t *testing.T) {
	cases := [][]float64{
		{100, 100, 100},
		{0, 1000, 0, 1000},
		{1, 2, 4, 8, 16, 32},
		{500, 499, 501, 500},
		{1000, 1},
	}
	for i, totals := range cases {
		var txs []core.Transaction
		month := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
		for _, v := range totals {
			txs = append(txs, core.Transaction{Date: month, Amount: decimal.NewFromFloat(v), Category: "t"})
			month = month.AddDate(0, 1, 0)
		}
		snap := ComputeSnapshot(Aggregate(txs))
		if snap.EfficiencyScore < 0 || snap.EfficiencyScore > 10 {
			t.Errorf("case %d: efficiency %v out of [0,10]", i, snap.EfficiencyScore)
		}
	}
}

func TestTrendClassification(t *testing.T) {
	cases := []struct {
		growth float64
		want   string
	}{
		{12, "strong growth"},
		{5.01, "strong growth"},
		{5, "moderate growth"},
		{0.1, "moderate growth"},
		{0, "stable"},
		{-4.9, "stable"},
		{-5, "declining"},
		{-30, "declining"},
	}
	for _, tc := range cases {
		got, _, _ := classifyTrend(tc.growth)
		if got != tc.want {
			t.Errorf("growth %v: got %q, want %q", tc.growth, got, tc.want)
		}
	}
}

func TestEfficiencyComment(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10, "Excellent expense control"},
		{8, "Excellent expense control"},
		{7.9, "Good expense management"},
		{6, "Good expense management"},
		{5, "Moderate control, room to improve"},
		{3.9, "Needs optimization"},
	}
	for _, tc := range cases {
		if got := efficiencyComment(tc.score); got != tc.want {
			t.Errorf("score %v: got %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSnapshotIdempotent(t *testing.T) {
	buckets := Aggregate([]core.Transaction{
		monthTx(2024, time.January, 100),
		monthTx(2024, time.February, 230),
		monthTx(2024, time.April, 180),
	})
	a := ComputeSnapshot(buckets)
	b := ComputeSnapshot(buckets)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("snapshot not deterministic:\n%+v\n%+v", a, b)
	}
}
