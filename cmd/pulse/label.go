package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/Veraticus/museum-pulse/internal/dataset"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/spf13/cobra"
)

func labelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Label reviews and write the labeled table",
		Long: `Label every review in the input file with city, region, country,
tourist type, polarity scores, sentiment and emotion.

The output format follows the --output extension (.csv or .json) unless
--format is given. Without --output the table is written to stdout.`,
		RunE: runLabel,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("format", "", "Output format (csv, json)")

	return cmd
}

func runLabel(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(os.Stderr, "Labeling")
	ctx := handler.HandleInterrupts(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	format, err = labelFormat(output, format)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg, true)
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return err
	}
	snap := store.Current()

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		file, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				slog.Warn("Failed to close output file", "path", output, "error", cerr)
			}
		}()
		w = file
	}

	if err := writeLabeled(w, snap.Reviews(), format); err != nil {
		return err
	}

	if output != "" {
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Labeled %d reviews to %s", snap.Len(), output)))
	}
	return nil
}

// labelFormat resolves the output format from the flag or the file extension.
func labelFormat(output, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch format {
	case "", "csv":
		return "csv", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use csv or json)", format)
	}
}

func writeLabeled(w io.Writer, reviews []model.LabeledReview, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reviews)
	}
	return dataset.WriteCSV(w, reviews)
}
