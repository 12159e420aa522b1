package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/storage"
	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [statement]",
		Short: "Run read-only SQL over the labeled reviews",
		Long: `Load the labeled reviews into a SQLite table named "reviews" and run a
single SELECT or WITH statement against it.

Without a statement an interactive shell starts; statements end with ";".

Columns: id, title, text, review_text, hometown, city, region, country,
tourist_type, rating, year, month, day, date, emotion, sentiment,
textblob_score, vader_score, composite_score.

Examples:
  pulse query "SELECT sentiment, COUNT(*) FROM reviews GROUP BY sentiment"
  pulse query --database reviews.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format (table, json)")
	cmd.Flags().String("database", "", "Also keep the table in this SQLite file instead of memory")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("output")
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported output format %q (use table or json)", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg, true)
	if err != nil {
		return err
	}
	reviews := store.Current().Reviews()

	dbPath, _ := cmd.Flags().GetString("database")
	var db *storage.SQLiteStorage
	if dbPath == "" {
		db, err = storage.OpenMemory(ctx, reviews)
	} else {
		db, err = openDatabase(cmd, dbPath, reviews)
	}
	if err != nil {
		return fmt.Errorf("failed to build reviews table: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("Failed to close database", "error", cerr)
		}
	}()

	if len(args) == 1 {
		return runStatement(cmd, db, args[0], format)
	}
	return runShell(cmd, db, format)
}

func openDatabase(cmd *cobra.Command, path string, reviews []model.LabeledReview) (*storage.SQLiteStorage, error) {
	ctx := cmd.Context()
	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.SaveReviews(ctx, reviews); err != nil {
		_ = db.Close()
		return nil, err
	}
	count, err := db.GetReviewCount(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Info("Reviews table saved", "path", path, "rows", count)
	return db, nil
}

func runShell(cmd *cobra.Command, db *storage.SQLiteStorage, format string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Query shell")
	ctx := handler.HandleInterrupts(cmd.Context())
	reader := cli.NewStatementReader(cmd.InOrStdin())
	out := cmd.ErrOrStderr()

	_, _ = fmt.Fprintln(out, cli.FormatTitle(cli.MuseumIcon+"  reviews shell (end statements with ';', Ctrl+D to exit)"))
	prompt := func(continuation bool) {
		if continuation {
			_, _ = fmt.Fprint(out, "   ...> ")
			return
		}
		_, _ = fmt.Fprint(out, "pulse> ")
	}

	for {
		statement, err := reader.ReadStatement(ctx, prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) {
				_, _ = fmt.Fprintln(out)
				return nil
			}
			return err
		}
		if err := runStatement(cmd, db, statement, format); err != nil {
			if errors.Is(err, common.ErrReadOnlyQuery) {
				_, _ = fmt.Fprintln(out, cli.FormatWarning("only SELECT and WITH statements are allowed"))
				continue
			}
			_, _ = fmt.Fprintln(out, cli.FormatError(err.Error()))
		}
	}
}

func runStatement(cmd *cobra.Command, db *storage.SQLiteStorage, statement, format string) error {
	result, err := db.Query(cmd.Context(), statement)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), result, format)
}

func writeResult(w io.Writer, result *storage.Result, format string) error {
	if format == "json" {
		records := make([]map[string]any, 0, len(result.Rows))
		for _, row := range result.Rows {
			record := make(map[string]any, len(result.Columns))
			for i, col := range result.Columns {
				record[col] = row[i]
			}
			records = append(records, record)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	if _, err := fmt.Fprintln(w, cli.RenderTable(result.Columns, rows)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, cli.SubtleStyle.Render(fmt.Sprintf("(%d rows)", len(rows))))
	return err
}
