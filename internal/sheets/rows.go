package sheets

import (
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/report"
)

var reviewHeader = []any{
	"ID", "Year", "Month", "Day", "Rating", "Title", "Review", "Hometown",
	"City", "Region", "Country", "Tourist Type", "Sentiment", "Emotion",
	"TextBlob", "VADER", "Composite",
}

// ReviewRows lays out reviews as a header row followed by one row each.
func ReviewRows(reviews []model.LabeledReview) [][]any {
	rows := make([][]any, 0, len(reviews)+1)
	rows = append(rows, reviewHeader)
	for _, r := range reviews {
		rows = append(rows, []any{
			r.ID, r.Year, r.Month, r.Day, r.Rating, r.Title, r.ReviewText, r.Hometown,
			r.City, r.Region, r.Country, string(r.TouristType), string(r.Sentiment), r.Emotion,
			r.TextBlobScore, r.VaderScore, r.CompositeScore,
		})
	}
	return rows
}

// OverviewRows lays out the overview page as labeled blocks separated by
// empty rows.
func OverviewRows(o *report.Overview) [][]any {
	if o == nil {
		return [][]any{{"Museum Review Overview"}, {"Total Reviews", 0}}
	}

	values := [][]any{
		{"Museum Review Overview"},
		{},
		{"Total Reviews", o.Total},
		{"Mean Rating", o.MeanRating},
		{"Median Rating", o.MedianRating},
	}

	block := func(title string, header []any, counts []report.Count) {
		values = append(values, []any{}, []any{title}, header)
		for _, c := range counts {
			values = append(values, []any{c.Label, c.Count})
		}
	}
	block("Rating Distribution", []any{"Rating", "Reviews"}, o.RatingDistribution)
	block("Tourist Types", []any{"Tourist Type", "Reviews"}, o.TouristTypes)
	block("Reviews per Year", []any{"Year", "Reviews"}, o.PerYear)
	block("Top Cities", []any{"City", "Reviews"}, o.TopCities)
	block("Top Countries", []any{"Country", "Reviews"}, o.TopCountries)

	values = append(values, []any{}, []any{"Average Rating by Month"}, []any{"Month", "Reviews", "Average"})
	for _, m := range o.MonthlyAverageRating {
		values = append(values, []any{m.Month, m.Reviews, m.Average})
	}
	return values
}
