// Package sheets exports labeled reviews to Google Sheets.
package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
)

// DefaultSpreadsheetName is the title of spreadsheets created by an export.
const DefaultSpreadsheetName = "Museum Reviews"

// Tab names written by an export.
const (
	ReviewsTab  = "Reviews"
	OverviewTab = "Overview"
)

// AuthMethod identifies how the writer authenticates with Google.
type AuthMethod string

// Supported authentication methods.
const (
	AuthNone           AuthMethod = ""
	AuthOAuth2         AuthMethod = "oauth2"
	AuthServiceAccount AuthMethod = "service_account"
)

// Config holds the configuration for the Google Sheets writer. Exactly one
// of the OAuth2 triple (ClientID, ClientSecret, RefreshToken) or
// ServiceAccountPath must be set.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string // empty creates a new spreadsheet
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config for the museum's time zone with header
// formatting on.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "America/New_York",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// AuthMethod reports which credentials are configured. It returns AuthNone
// when none or both are present.
func (c *Config) AuthMethod() AuthMethod {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""
	switch {
	case hasOAuth && !hasServiceAccount:
		return AuthOAuth2
	case hasServiceAccount && !hasOAuth:
		return AuthServiceAccount
	default:
		return AuthNone
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.AuthMethod() == AuthNone {
		if c.ServiceAccountPath != "" {
			return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
		}
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}
	switch {
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive", common.ErrInvalidConfig)
	case c.RetryAttempts < 0:
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
