// Package export writes match and insight reports to Google Sheets so
// agencies can share them outside the CLI.
package export

import (
	"fmt"
	"os"
	"time"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
)

// Config holds the configuration for the Google Sheets exporter.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads credentials from environment variables.
func (c *Config) LoadFromEnv() {
	c.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")
	if c.SpreadsheetID == "" {
		c.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
}

// Validate checks that one authentication method is configured.
func (c *Config) Validate() error {
	if c.ServiceAccountPath != "" {
		return nil
	}
	if c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "" {
		return nil
	}
	return fmt.Errorf("either a service account path or OAuth2 credentials are required: %w", common.ErrMissingConfig)
}
