package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// LabeledHeader is the column order of a labeled review file.
var LabeledHeader = []string{
	"id", ColTitle, ColText, "review_text", ColRating, ColYear, ColMonth, ColDay,
	ColHometown, "city", "region", "country", "tourist_type",
	"textblob_score", "vader_score", "composite_score", "sentiment", "emotion",
}

// WriteCSV writes labeled reviews with a header row. Labeled files are a
// superset of the input columns, so they can be read back with ReadCSV.
func WriteCSV(w io.Writer, reviews []model.LabeledReview) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LabeledHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range reviews {
		record := []string{
			strconv.Itoa(r.ID),
			r.Title,
			r.Text,
			r.ReviewText,
			strconv.Itoa(r.Rating),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Day),
			r.Hometown,
			r.City,
			r.Region,
			r.Country,
			string(r.TouristType),
			formatScore(r.TextBlobScore),
			formatScore(r.VaderScore),
			formatScore(r.CompositeScore),
			string(r.Sentiment),
			r.Emotion,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write review %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
