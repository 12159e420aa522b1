package tui

import (
	"io"

	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/Veraticus/museum-pulse/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Page      report.Page
	TopN      int
	Width     int
	Height    int
	AltScreen bool
	// LogOutput receives slog records while the dashboard owns the terminal.
	LogOutput io.Writer
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Page:      report.PageOverview,
		TopN:      report.DefaultTopN,
		Width:     100,
		Height:    30,
		AltScreen: true,
		LogOutput: io.Discard,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithPage selects the page shown first. PageAll is treated as the
// overview.
func WithPage(page report.Page) Option {
	return func(c *Config) {
		if page != "" && page != report.PageAll {
			c.Page = page
		}
	}
}

// WithTopN sets the length of top-N lists.
func WithTopN(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithLogOutput sends log records written while the dashboard runs to w.
// A nil writer discards them.
func WithLogOutput(w io.Writer) Option {
	return func(c *Config) {
		if w == nil {
			w = io.Discard
		}
		c.LogOutput = w
	}
}
