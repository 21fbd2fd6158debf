package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"€ 1.234,56", "1234.56", true},
		{"$1,234.56", "1234.56", true},
		{"1.234.567", "1234567", true},
		{"1,234", "1.234", true}, // single comma reads as decimal separator
		{"0", "0", true},
		{"EUR 12", "12", true},
		{"-1", "-1", true},
		{"-50.00", "-50", true},
		{"-€ 45,90", "-45.9", true},
		{"$-1,234.56", "-1234.56", true},
		{"+12.50", "12.5", true},
		{"(1.00)", "", false},
		{"-", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{"€", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s", tc.in, tc.out, got)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %s", tc.in, got)
		}
	}
}
