// Package core provides the domain types shared across ingestion,
// analysis and reporting.
//
// This file contains parsing of monetary amounts from user input and
// spreadsheet cells.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a monetary string into a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading sign, an optional currency symbol or code
// prefix/suffix, and thousands separators when the grouping is well
// formed ("1.234,56" and "1,234.56" both parse to 1234.56). Amounts are
// signed: refunds and credits carry a leading minus.
//
// Examples:
//
//	ParseAmount("12.34")      -> 12.34, nil
//	ParseAmount("12,34")      -> 12.34, nil
//	ParseAmount("€ 1.234,56") -> 1234.56, nil
//	ParseAmount("-$50.00")    -> -50, nil
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = stripCurrency(s)

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "+"):
		s = strings.TrimSpace(s[1:])
	}
	// Sign may precede the currency marker ("-$50").
	s = stripCurrency(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	s, ok := normalizeSeparators(s)
	if !ok {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// stripCurrency removes a leading or trailing currency marker (symbol or
// three-letter code) and surrounding whitespace.
func stripCurrency(s string) string {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"€", "$", "£", "EUR", "USD", "GBP"} {
		s = strings.TrimPrefix(s, sym)
		s = strings.TrimSuffix(s, sym)
	}
	return strings.TrimSpace(s)
}

// normalizeSeparators rewrites the amount with '.' as the decimal separator
// and no grouping separators. It returns false when the separator layout is
// not a valid grouping.
func normalizeSeparators(s string) (string, bool) {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// The rightmost separator is the decimal one, the other groups.
		if lastComma > lastDot {
			intPart, ok := ungroup(s[:lastComma], ".")
			if !ok {
				return "", false
			}
			return intPart + "." + s[lastComma+1:], true
		}
		intPart, ok := ungroup(s[:lastDot], ",")
		if !ok {
			return "", false
		}
		return intPart + "." + s[lastDot+1:], true

	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return ungroup(s, ",")
		}
		return s[:lastComma] + "." + s[lastComma+1:], true

	case strings.Count(s, ".") > 1:
		// "1.234.567" style grouping.
		return ungroup(s, ".")
	}
	return s, true
}

// ungroup strips thousands separators, requiring three-digit groups.
func ungroup(s, sep string) (string, bool) {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		if i == 0 {
			if p == "" || len(p) > 3 {
				return "", false
			}
			continue
		}
		if len(p) != 3 {
			return "", false
		}
	}
	return strings.Join(parts, ""), true
}

// Round2 rounds an amount to two decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
