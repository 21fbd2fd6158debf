package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expensecast/internal/ingest"
	"expensecast/internal/ingest/excel"
	"expensecast/internal/ingest/google"
	"expensecast/internal/ingest/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(ctx context.Context, cfg Config) (ingest.TransactionSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case ExcelBackend:
		f.logger.Info("Initialized excel backend", "path", cfg.ExcelPath)
		return excel.New(cfg.ExcelPath), nil

	case SheetsBackend:
		client, err := google.New(ctx, google.Config{
			SpreadsheetID: cfg.GoogleSpreadsheetID,
			CredFile:      cfg.GoogleCredFile,
			CredJSON:      cfg.GoogleCredJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sheets backend: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return client, nil

	case MemoryBackend:
		f.logger.Info("Initialized in-memory demo backend")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
