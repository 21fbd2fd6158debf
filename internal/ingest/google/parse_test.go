package google

import (
	"testing"
)

func TestParseMatrix(t *testing.T) {
	values := [][]interface{}{
		{"Date", "Amount", "Expense Head", "Notes"},
		{"2024-01-15", 1250.50, "Rent", "january rent"},
		{"2024-01-20", "310,75", "Groceries", ""},
		{"2024-02-03", 99.0, "Utilities"},
		{"not a date", 50.0, "Broken"},
		{"2024-02-10", "oops", "Broken"},
	}
	txs, skipped := parseMatrix(values)
	if skipped {
		t.Fatalf("headers present, sheet must not be skipped")
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 parsed rows, got %d", len(txs))
	}
	if txs[0].Category != "Rent" || txs[0].Amount.String() != "1250.5" {
		t.Fatalf("first row: %+v", txs[0])
	}
	if txs[1].Amount.String() != "310.75" {
		t.Fatalf("comma amount: %s", txs[1].Amount)
	}
	if got := txs[2].MonthKey(); got != "2024-02" {
		t.Fatalf("third row month: %s", got)
	}
}

func TestParseMatrixMissingColumns(t *testing.T) {
	values := [][]interface{}{
		{"When", "How Much"},
		{"2024-01-15", 10.0},
	}
	if _, skipped := parseMatrix(values); !skipped {
		t.Fatalf("sheet without Date/Amount headers must be flagged")
	}
}

func TestParseMatrixEmpty(t *testing.T) {
	if txs, skipped := parseMatrix(nil); txs != nil || skipped {
		t.Fatalf("empty matrix: txs=%v skipped=%v", txs, skipped)
	}
}

func TestToStrings(t *testing.T) {
	row := []interface{}{"a", 1.5, nil, 45292.0, true}
	got := toStrings(row)
	want := []string{"a", "1.5", "", "45292", "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: %q, want %q", i, got[i], want[i])
		}
	}
}
