package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Data source
	DataBackend string // excel | sheets | memory
	ExcelPath   string // seed workbook for the excel backend

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleCredFile      string
	GoogleCredJSON      string

	// Reports
	PDFFontPath string
	PDFFontName string

	// Analysis
	ForecastPeriods int

	// Upload handling
	MaxUploadBytes int64
	CacheTTL       time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
		ExcelPath:   getEnv("EXCEL_PATH", ""),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleCredFile:      getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredJSON:      getEnv("GOOGLE_CREDENTIALS_JSON", ""),

		PDFFontPath: getEnv("PDF_FONT_PATH", ""),
		PDFFontName: getEnv("PDF_FONT_NAME", "report"),

		ForecastPeriods: getEnvInt("FORECAST_PERIODS", 6),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		CacheTTL:       getEnvDuration("CACHE_TTL", 15*time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "excel", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate excel configuration if backend is excel
	if c.DataBackend == "excel" {
		if c.ExcelPath == "" {
			errors = append(errors, "EXCEL_PATH is required when using excel backend")
		} else if _, err := os.Stat(c.ExcelPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("excel file does not exist: %s", c.ExcelPath))
		}
	}

	// Validate Google Sheets configuration if backend is sheets
	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}

		hasCredFile := c.GoogleCredFile != ""
		hasCredJSON := c.GoogleCredJSON != ""
		if !hasCredFile && !hasCredJSON {
			errors = append(errors, "either GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON must be provided for sheets backend")
		}
		if hasCredFile {
			if _, err := os.Stat(c.GoogleCredFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredFile))
			}
		}
	}

	// Validate PDF font if configured; without one the PDF report
	// endpoint is disabled.
	if c.PDFFontPath != "" {
		if _, err := os.Stat(c.PDFFontPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("PDF font file does not exist: %s", c.PDFFontPath))
		}
		if c.PDFFontName == "" {
			errors = append(errors, "PDF_FONT_NAME cannot be empty when PDF_FONT_PATH is set")
		}
	}

	// Validate analysis configuration
	if c.ForecastPeriods < 1 {
		errors = append(errors, fmt.Sprintf("invalid forecast periods %d: must be at least 1", c.ForecastPeriods))
	} else if c.ForecastPeriods > 36 {
		errors = append(errors, fmt.Sprintf("invalid forecast periods %d: must be at most 36", c.ForecastPeriods))
	}

	if c.MaxUploadBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1KiB", c.MaxUploadBytes))
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
