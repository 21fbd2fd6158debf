package backend

import (
	"fmt"

	"expensecast/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		ExcelPath: appConfig.ExcelPath,

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleCredFile:      appConfig.GoogleCredFile,
		GoogleCredJSON:      appConfig.GoogleCredJSON,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case ExcelBackend:
		if c.ExcelPath == "" {
			return fmt.Errorf("excel file path is required for excel backend")
		}

	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
		if c.GoogleCredFile == "" && c.GoogleCredJSON == "" {
			return fmt.Errorf("either GoogleCredFile or GoogleCredJSON must be provided for sheets backend")
		}

	case MemoryBackend:
		// Memory backend doesn't require additional configuration
	}

	return nil
}
