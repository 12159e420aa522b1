package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/Veraticus/museum-pulse/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [page]",
		Short: "Explore reviews in an interactive terminal dashboard",
		Long: `Open the terminal dashboard.

Keys:
  tab/shift+tab  switch page
  [ and ]        move between facets
  h/l            move within a facet
  space          toggle the selected value
  /              search by keyword
  c              clear filters
  r              reload the source file
  q              quit`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: pageNames(),
		RunE:      runDashboard,
	}

	cmd.Flags().Bool("inline", false, "Render inline instead of in the alternate screen")
	cmd.Flags().String("log-file", "", "Append logs written while the dashboard runs to this file (default: discard)")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	page := report.PageOverview
	if len(args) == 1 {
		p, err := report.ParsePage(args[0])
		if err != nil {
			return err
		}
		page = p
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithPage(page),
		tui.WithTopN(cfg.Report.TopN),
	}
	if inline, _ := cmd.Flags().GetBool("inline"); inline {
		opts = append(opts, tui.WithAltScreen(false))
	}
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		opts = append(opts, tui.WithLogOutput(f))
	}

	return tui.Run(cmd.Context(), store, opts...)
}
