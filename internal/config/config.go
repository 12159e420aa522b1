package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable viper reads.
const EnvPrefix = "PULSE"

// Emotion providers.
const (
	EmotionProviderLexicon = "lexicon"
	EmotionProviderRemote  = "remote"
	EmotionProviderNone    = "none"
)

// Threshold policies for the sentiment label.
const (
	ThresholdStrict   = "strict"
	ThresholdDeadband = "deadband"
)

// Config is the typed view of the application configuration.
type Config struct {
	Logging LoggingConfig
	Data    DataConfig
	Labeler LabelerConfig
	Emotion EmotionConfig
	Server  ServerConfig
	Report  ReportConfig
}

// LoggingConfig controls the global slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// DataConfig points at the review source file.
type DataConfig struct {
	Path           string
	ReloadInterval time.Duration
}

// LabelerConfig selects the labeling policies.
type LabelerConfig struct {
	ThresholdPolicy string
}

// EmotionConfig selects and configures the emotion scorer.
type EmotionConfig struct {
	Provider string
	URL      string
	Timeout  time.Duration
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string
	CacheSize int
}

// ReportConfig configures dashboard projections.
type ReportConfig struct {
	TopN int
}

// SetDefaults registers default values for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("data.path", "./data/reviews.csv")
	v.SetDefault("data.reload_interval", time.Duration(0))
	v.SetDefault("labeler.threshold_policy", ThresholdStrict)
	v.SetDefault("emotion.provider", EmotionProviderLexicon)
	v.SetDefault("emotion.url", "http://localhost:8000")
	v.SetDefault("emotion.timeout", 10*time.Second)
	v.SetDefault("server.addr", ":8050")
	v.SetDefault("server.cache_size", 256)
	v.SetDefault("report.top_n", 10)
}

// Load reads the typed configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Data: DataConfig{
			Path:           ExpandPath(v.GetString("data.path")),
			ReloadInterval: v.GetDuration("data.reload_interval"),
		},
		Labeler: LabelerConfig{
			ThresholdPolicy: v.GetString("labeler.threshold_policy"),
		},
		Emotion: EmotionConfig{
			Provider: v.GetString("emotion.provider"),
			URL:      v.GetString("emotion.url"),
			Timeout:  v.GetDuration("emotion.timeout"),
		},
		Server: ServerConfig{
			Addr:      v.GetString("server.addr"),
			CacheSize: v.GetInt("server.cache_size"),
		},
		Report: ReportConfig{
			TopN: v.GetInt("report.top_n"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	switch c.Labeler.ThresholdPolicy {
	case ThresholdStrict, ThresholdDeadband:
	default:
		return fmt.Errorf("%w: labeler.threshold_policy must be %q or %q, got %q",
			common.ErrInvalidConfig, ThresholdStrict, ThresholdDeadband, c.Labeler.ThresholdPolicy)
	}

	switch c.Emotion.Provider {
	case EmotionProviderLexicon, EmotionProviderNone:
	case EmotionProviderRemote:
		if c.Emotion.URL == "" {
			return fmt.Errorf("%w: emotion.url is required for the remote provider", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown emotion.provider %q", common.ErrInvalidConfig, c.Emotion.Provider)
	}

	if c.Emotion.Timeout < 0 {
		return fmt.Errorf("%w: emotion.timeout cannot be negative", common.ErrInvalidConfig)
	}
	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("%w: data.reload_interval cannot be negative", common.ErrInvalidConfig)
	}
	if c.Server.CacheSize <= 0 {
		return fmt.Errorf("%w: server.cache_size must be positive", common.ErrInvalidConfig)
	}
	if c.Report.TopN <= 0 {
		return fmt.Errorf("%w: report.top_n must be positive", common.ErrInvalidConfig)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

// LoadDotEnv loads environment variables from the given .env files. Files
// that do not exist are skipped; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(ExpandPath(p)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
