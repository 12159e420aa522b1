package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "oauth credentials",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:     "test-client",
				RefreshToken: "test-token",
				BatchSize:    100,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods",
		},
		{
			name: "zero retry delay is valid",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
		},
		{
			name: "zero batch size",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, DefaultSpreadsheetName, c.SpreadsheetName)
	assert.Equal(t, 1000, c.BatchSize)
	assert.True(t, c.EnableFormatting)
}

func TestConfigAuthMethod(t *testing.T) {
	oauth := Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "token"}
	assert.Equal(t, AuthOAuth2, oauth.AuthMethod())

	sa := Config{ServiceAccountPath: "/key.json"}
	assert.Equal(t, AuthServiceAccount, sa.AuthMethod())

	both := oauth
	both.ServiceAccountPath = "/key.json"
	assert.Equal(t, AuthNone, both.AuthMethod())

	assert.Equal(t, AuthNone, (&Config{ClientID: "id"}).AuthMethod())

	err := (&Config{BatchSize: 1}).Validate()
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
