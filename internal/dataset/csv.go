// Package dataset loads review files and serves immutable labeled snapshots.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
)

// Required source columns, matched case-insensitively.
const (
	ColTitle    = "title"
	ColText     = "text"
	ColRating   = "rating"
	ColYear     = "year"
	ColMonth    = "month"
	ColDay      = "day"
	ColHometown = "hometown"
)

var requiredColumns = []string{ColTitle, ColText, ColRating, ColYear, ColMonth, ColDay, ColHometown}

// LoadStats counts what happened to the rows of a source file.
type LoadStats struct {
	Rows     int `json:"rows" yaml:"rows"`
	Accepted int `json:"accepted" yaml:"accepted"`
	Skipped  int `json:"skipped" yaml:"skipped"`
}

// ReadCSV parses reviews from r. Columns are located by header name, so
// extra columns and any column order are accepted. Rows with a missing or
// invalid rating, year, month or day are skipped and counted; a missing
// required column fails the whole read.
func ReadCSV(r io.Reader) ([]model.RawReview, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, LoadStats{}, fmt.Errorf("%w: empty file", common.ErrMissingColumn)
		}
		return nil, LoadStats{}, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var (
		reviews []model.RawReview
		stats   LoadStats
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read row %d: %w", stats.Rows+1, err)
		}

		id := stats.Rows
		stats.Rows++
		line, _ := reader.FieldPos(0)

		review, err := parseRow(record, index, id)
		if err != nil {
			stats.Skipped++
			slog.Warn("Skipping malformed row", "line", line, "error", err)
			continue
		}
		stats.Accepted++
		reviews = append(reviews, review)
	}

	return reviews, stats, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(record []string, index map[string]int, id int) (model.RawReview, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	review := model.RawReview{
		ID:       id,
		Title:    textCell(cell(ColTitle)),
		Text:     textCell(cell(ColText)),
		Hometown: textCell(cell(ColHometown)),
	}

	var err error
	if review.Rating, err = intCell(ColRating, cell(ColRating)); err != nil {
		return review, err
	}
	if review.Rating < 1 || review.Rating > 5 {
		return review, fmt.Errorf("%w: rating %d out of range", common.ErrMalformedRow, review.Rating)
	}
	if review.Year, err = intCell(ColYear, cell(ColYear)); err != nil {
		return review, err
	}
	if review.Month, err = intCell(ColMonth, cell(ColMonth)); err != nil {
		return review, err
	}
	if review.Month < 1 || review.Month > 12 {
		return review, fmt.Errorf("%w: month %d out of range", common.ErrMalformedRow, review.Month)
	}
	if review.Day, err = intCell(ColDay, cell(ColDay)); err != nil {
		return review, err
	}
	if review.Day < 1 || review.Day > 31 {
		return review, fmt.Errorf("%w: day %d out of range", common.ErrMalformedRow, review.Day)
	}

	return review, nil
}

// textCell maps the placeholders spreadsheet exports use for missing text to "".
func textCell(s string) string {
	switch strings.ToLower(s) {
	case "nan", "none", "null", "n/a":
		return ""
	}
	return s
}

// intCell accepts integers and integral floats such as "4.0".
func intCell(col, s string) (int, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, fmt.Errorf("%w: missing %s", common.ErrMalformedRow, col)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: invalid %s %q", common.ErrMalformedRow, col, s)
	}
	return int(f), nil
}
