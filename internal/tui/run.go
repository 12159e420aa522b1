package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits or ctx is
// canceled. The default logger is pointed at the configured log output for
// the life of the program so background reloads cannot write over the
// screen.
func Run(ctx context.Context, source Source, opts ...Option) error {
	m := New(ctx, source, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	restore := redirectLogs(m.config.LogOutput)
	defer restore()

	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// redirectLogs swaps the default logger for a text logger writing to w at
// the level the current logger accepts, and returns a func restoring it.
func redirectLogs(w io.Writer) (restore func()) {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: enabledLevel(prev.Handler()),
	})))
	return func() { slog.SetDefault(prev) }
}

// enabledLevel returns the lowest standard level h accepts.
func enabledLevel(h slog.Handler) slog.Level {
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if h.Enabled(context.Background(), level) {
			return level
		}
	}
	return slog.LevelError
}
