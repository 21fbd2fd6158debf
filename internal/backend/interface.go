// Package backend selects and constructs the configured transaction
// source.
package backend

import (
	"context"

	"expensecast/internal/ingest"
)

// Factory creates transaction sources based on configuration
type Factory interface {
	// CreateSource creates a source instance for the given backend type
	CreateSource(ctx context.Context, cfg Config) (ingest.TransactionSource, error)
}

// Config holds configuration for source creation
type Config struct {
	Type BackendType

	// Excel specific
	ExcelPath string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleCredFile      string
	GoogleCredJSON      string
}

// BackendType represents the type of data backend
type BackendType string

const (
	ExcelBackend  BackendType = "excel"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case ExcelBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
