package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// maxDescriptionLen bounds free-text descriptions coming from
// spreadsheet cells.
const maxDescriptionLen = 200

type (
	// MonthKey identifies a calendar month as "YYYY-MM".
	MonthKey string

	// Transaction is a single spending record attributed to a category.
	Transaction struct {
		Date        time.Time
		Description string
		Amount      decimal.Decimal
		Category    string
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoTransactions  = errors.New("no transactions")
)

// MonthKeyOf returns the calendar-month key for a point in time.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// NewMonthKey builds a key directly from year and month.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

// Time returns the first instant of the month, or an error for a malformed key.
func (k MonthKey) Time() (time.Time, error) {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Next returns the key of the following calendar month.
func (k MonthKey) Next() MonthKey {
	t, err := k.Time()
	if err != nil {
		return k
	}
	return MonthKeyOf(t.AddDate(0, 1, 0))
}

// Label renders the key for display, e.g. "Jan 2024".
func (k MonthKey) Label() string {
	t, err := k.Time()
	if err != nil {
		return string(k)
	}
	return t.Format("Jan 2006")
}

// Validate checks the fields ingestion cannot guarantee by construction.
// Category stays optional: rows without an expense head are legal.
func (tx Transaction) Validate() error {
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(tx.Description) > maxDescriptionLen {
		return fmt.Errorf("description longer than %d characters", maxDescriptionLen)
	}
	return nil
}

// MonthKey returns the calendar-month key of the transaction date.
func (tx Transaction) MonthKey() MonthKey {
	return MonthKeyOf(tx.Date)
}
