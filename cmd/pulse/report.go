package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [page]",
		Short: "Print a dashboard page for a filtered view",
		Long: `Print one dashboard page (overview, words, sentiment, emotion, negative)
or all of them for the reviews matching the filter flags.

Filters combine with AND across facets and OR within a facet:
  pulse report sentiment --year 2019,2020 --tourist Foreign
  pulse report --keyword "long lines" --output json

The negative page ignores --sentiment and can be narrowed by emotion:
  pulse report negative --year 2019 --emotion anger`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: pageNames(),
		RunE:      runReport,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", report.FormatText, "Output format (text, json, yaml)")
	cmd.Flags().Int("top", 0, "Number of entries in top-N lists (default: report.top_n)")

	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("output"))

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	page := report.PageAll
	if len(args) == 1 {
		p, err := report.ParsePage(args[0])
		if err != nil {
			return err
		}
		page = p
	}

	format := strings.ToLower(viper.GetString("report.format"))
	switch format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	topN := cfg.Report.TopN
	if n, _ := cmd.Flags().GetInt("top"); n > 0 {
		topN = n
	}

	store, err := openStore(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}

	spec := filterFromFlags(cmd)
	dashboard := store.Current().Dashboard(spec, report.Options{Page: page, TopN: topN})
	slog.Debug("Filtered view", "filter", spec.Key(), "reviews", dashboard.Total)

	if err := report.Write(cmd.OutOrStdout(), dashboard, format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func pageNames() []string {
	names := []string{string(report.PageAll)}
	for _, p := range report.Pages {
		names = append(names, string(p))
	}
	return names
}
