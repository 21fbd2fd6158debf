package ingest

import (
	"strings"
	"testing"
	"time"
)

func TestFindColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Columns
		ok      bool
	}{
		{
			name:    "canonical",
			headers: []string{"Date", "Amount", "Expense Head"},
			want:    Columns{Date: 0, Amount: 1, Head: 2, Desc: -1},
			ok:      true,
		},
		{
			name:    "case and whitespace",
			headers: []string{" date ", "AMOUNT", "  expense   head "},
			want:    Columns{Date: 0, Amount: 1, Head: 2, Desc: -1},
			ok:      true,
		},
		{
			name:    "head alias",
			headers: []string{"Category", "Date", "Amount"},
			want:    Columns{Date: 1, Amount: 2, Head: 0, Desc: -1},
			ok:      true,
		},
		{
			name:    "description column",
			headers: []string{"Date", "Amount", "Expense Head", "Description"},
			want:    Columns{Date: 0, Amount: 1, Head: 2, Desc: 3},
			ok:      true,
		},
		{
			name:    "no head column",
			headers: []string{"Date", "Amount", "Notes"},
			want:    Columns{Date: 0, Amount: 1, Head: -1, Desc: 2},
			ok:      true,
		},
		{
			name:    "missing amount",
			headers: []string{"Date", "Description"},
			ok:      false,
		},
		{
			name:    "empty",
			headers: nil,
			ok:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindColumns(tt.headers)
			if ok != tt.ok {
				t.Fatalf("ok=%v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("columns %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15", "2024-03-15", true},
		{"2024-03-15 10:30:00", "2024-03-15", true},
		{"15/03/2024", "2024-03-15", true},
		{"15-03-2024", "2024-03-15", true},
		{"2-Jan-24", "2024-01-02", true},
		{"02 Jan 2024", "2024-01-02", true},
		{"January 2, 2024", "2024-01-02", true},
		{"45292", "2024-01-01", true}, // Excel serial
		{"45292.5", "2024-01-01", true},
		{"", "", false},
		{"soon", "", false},
		{"13/13/2024", "", false},
		{"60", "", false}, // serials below the supported window
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("%q: ok=%v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format(time.DateOnly) != tt.want {
			t.Errorf("%q: %s, want %s", tt.in, got.Format(time.DateOnly), tt.want)
		}
	}
}

func TestParseRows(t *testing.T) {
	cols := Columns{Date: 0, Amount: 1, Head: 2, Desc: -1}
	rows := [][]string{
		{"2024-01-05", "120.50", "Rent"},
		{"2024-01-20", "€ 45,90", "Groceries"},
		{"2024-02-01", "80", ""},
		{"bad date", "10", "X"},
		{"2024-02-02", "not a number", "X"},
		{"2024-02-03"}, // short row: no amount cell
	}
	txs, dropped := ParseRows(cols, rows)
	if len(txs) != 3 || dropped != 3 {
		t.Fatalf("kept=%d dropped=%d, want 3/3", len(txs), dropped)
	}
	if txs[1].Amount.String() != "45.9" || txs[1].Category != "Groceries" {
		t.Fatalf("second row: %+v", txs[1])
	}
	if txs[2].Category != "" {
		t.Fatalf("missing head label must stay empty, got %q", txs[2].Category)
	}
}

func TestParseRowsKeepsRefunds(t *testing.T) {
	cols := Columns{Date: 0, Amount: 1, Head: 2, Desc: -1}
	rows := [][]string{
		{"2024-01-05", "120.50", "Rent"},
		{"2024-01-12", "-50.00", "Rent"}, // refund rows carry negative amounts
	}
	txs, dropped := ParseRows(cols, rows)
	if dropped != 0 || len(txs) != 2 {
		t.Fatalf("kept=%d dropped=%d, want 2/0", len(txs), dropped)
	}
	if txs[1].Amount.String() != "-50" {
		t.Fatalf("refund amount %s, want -50", txs[1].Amount)
	}
	sum := txs[0].Amount.Add(txs[1].Amount)
	if sum.String() != "70.5" {
		t.Fatalf("net total %s, want 70.5", sum)
	}
}

func TestParseRowsNoHeadColumn(t *testing.T) {
	cols := Columns{Date: 0, Amount: 1, Head: -1, Desc: -1}
	txs, dropped := ParseRows(cols, [][]string{{"2024-01-05", "10"}})
	if dropped != 0 || len(txs) != 1 || txs[0].Category != "" {
		t.Fatalf("txs=%v dropped=%d", txs, dropped)
	}
}

func TestParseRowsValidatesRecords(t *testing.T) {
	cols := Columns{Date: 0, Amount: 1, Head: 2, Desc: 3}
	rows := [][]string{
		{"2024-01-05", "10", "Rent", "January rent"},
		{"2024-01-06", "20", "Rent", strings.Repeat("x", 300)},
	}
	txs, dropped := ParseRows(cols, rows)
	if len(txs) != 1 || dropped != 1 {
		t.Fatalf("kept=%d dropped=%d, want 1/1", len(txs), dropped)
	}
	if txs[0].Description != "January rent" {
		t.Fatalf("description %q", txs[0].Description)
	}
}
