package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/report"
)

// Writer exports a filtered view to a spreadsheet.
type Writer struct {
	api    spreadsheetAPI
	logger *slog.Logger
	config Config
}

// NewWriter creates a Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	api, err := newGoogleAPI(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return newWriter(api, config, logger), nil
}

func newWriter(api spreadsheetAPI, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{api: api, config: config, logger: logger}
}

// Export writes reviews to the Reviews tab and the overview to the Overview
// tab, replacing their previous contents. It returns the spreadsheet ID.
func (w *Writer) Export(ctx context.Context, reviews []model.LabeledReview, overview *report.Overview) (string, error) {
	w.logger.Info("Starting export", "reviews", len(reviews))

	retryOpts := common.RetryOptions{
		MaxAttempts:  max(1, w.config.RetryAttempts),
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var tabs map[string]int64
	var spreadsheetID string
	err := common.WithRetry(ctx, func() error {
		var err error
		spreadsheetID, tabs, err = w.getOrCreateSpreadsheet(ctx)
		return err
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	tables := []struct {
		name   string
		values [][]any
	}{
		{ReviewsTab, ReviewRows(reviews)},
		{OverviewTab, OverviewRows(overview)},
	}

	for _, table := range tables {
		err := common.WithRetry(ctx, func() error {
			if err := w.api.Clear(ctx, spreadsheetID, table.name); err != nil {
				return err
			}
			return w.writeData(ctx, spreadsheetID, table.name, table.values)
		}, retryOpts)
		if err != nil {
			return "", fmt.Errorf("failed to write %s: %w", table.name, err)
		}
	}

	if w.config.EnableFormatting {
		if sheetID, ok := tabs[ReviewsTab]; ok {
			err := common.WithRetry(ctx, func() error {
				return w.api.FormatHeader(ctx, spreadsheetID, sheetID, len(reviewHeader))
			}, retryOpts)
			if err != nil {
				w.logger.Warn("Failed to apply formatting", "error", err)
			}
		}
	}

	w.logger.Info("Export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(reviews))
	return spreadsheetID, nil
}

// getOrCreateSpreadsheet opens the configured spreadsheet, adding missing
// tabs, or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	id := w.config.SpreadsheetID
	if id == "" {
		name := w.config.SpreadsheetName
		if name == "" {
			name = DefaultSpreadsheetName
		}
		created, url, err := w.api.Create(ctx, name, w.config.TimeZone, []string{ReviewsTab, OverviewTab})
		if err != nil {
			return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
		}
		w.logger.Info("Created new spreadsheet", "id", created, "url", url)
		id = created
	}

	tabs, err := w.api.Tabs(ctx, id)
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
	}

	var missing []string
	for _, tab := range []string{ReviewsTab, OverviewTab} {
		if _, ok := tabs[tab]; !ok {
			missing = append(missing, tab)
		}
	}
	if len(missing) > 0 {
		if err := w.api.AddTabs(ctx, id, missing); err != nil {
			return "", nil, fmt.Errorf("unable to add tabs %v: %w", missing, err)
		}
		if tabs, err = w.api.Tabs(ctx, id); err != nil {
			return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
		}
	}
	return id, tabs, nil
}

// writeData writes values in batches to avoid API limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))
		rangeStr := fmt.Sprintf("%s!A%d", tab, i+1)
		if err := w.api.Update(ctx, spreadsheetID, rangeStr, values[i:end]); err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}
		w.logger.Debug("Wrote batch", "tab", tab, "start_row", i+1, "rows", end-i)
	}
	return nil
}
