package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, overrides map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t, nil))
	require.NoError(t, err)

	assert.Equal(t, ThresholdStrict, cfg.Labeler.ThresholdPolicy)
	assert.Equal(t, EmotionProviderLexicon, cfg.Emotion.Provider)
	assert.Equal(t, 10*time.Second, cfg.Emotion.Timeout)
	assert.Equal(t, ":8050", cfg.Server.Addr)
	assert.Equal(t, 256, cfg.Server.CacheSize)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, time.Duration(0), cfg.Data.ReloadInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		overrides map[string]any
		wantErr   error
		name      string
	}{
		{
			name:      "unknown threshold policy",
			overrides: map[string]any{"labeler.threshold_policy": "fuzzy"},
			wantErr:   common.ErrInvalidConfig,
		},
		{
			name:      "unknown emotion provider",
			overrides: map[string]any{"emotion.provider": "oracle"},
			wantErr:   common.ErrInvalidConfig,
		},
		{
			name:      "remote provider without url",
			overrides: map[string]any{"emotion.provider": "remote", "emotion.url": ""},
			wantErr:   common.ErrMissingConfig,
		},
		{
			name:      "zero cache size",
			overrides: map[string]any{"server.cache_size": 0},
			wantErr:   common.ErrInvalidConfig,
		},
		{
			name:      "zero top n",
			overrides: map[string]any{"report.top_n": 0},
			wantErr:   common.ErrInvalidConfig,
		},
		{
			name:      "bad log level",
			overrides: map[string]any{"logging.level": "loud"},
			wantErr:   common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.overrides))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_DeadbandAndRemote(t *testing.T) {
	cfg, err := Load(newViper(t, map[string]any{
		"labeler.threshold_policy": "deadband",
		"emotion.provider":         "remote",
		"emotion.url":              "http://emotions:9000",
		"data.reload_interval":     "30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, ThresholdDeadband, cfg.Labeler.ThresholdPolicy)
	assert.Equal(t, "http://emotions:9000", cfg.Emotion.URL)
	assert.Equal(t, 30*time.Second, cfg.Data.ReloadInterval)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PULSE_TEST_DOTENV=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PULSE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-file", os.Getenv("PULSE_TEST_DOTENV"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PULSE_TEST_DIR", "/srv/reviews")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/data/reviews.csv", want: filepath.Join(home, "data/reviews.csv")},
		{name: "env var", in: "$PULSE_TEST_DIR/reviews.csv", want: "/srv/reviews/reviews.csv"},
		{name: "plain", in: "./reviews.csv", want: "./reviews.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg-test")
	assert.Equal(t, filepath.Join("/etc/xdg-test", AppName), Dir())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", AppName), Dir())
}
