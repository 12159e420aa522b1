// Package config loads and validates museum-pulse configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user configuration directory.
const AppName = "pulse"

// Dir returns the per-user configuration directory: $XDG_CONFIG_HOME/pulse
// when set, otherwise ~/.config/pulse. It is "" when no home is known.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// ExpandPath resolves a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
