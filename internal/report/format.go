package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/Veraticus/museum-pulse/internal/words"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const barWidth = 30

// Write renders d to w in the given format.
func Write(w io.Writer, d *Dashboard, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		_, err := io.WriteString(w, Text(d))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Text renders d as styled terminal boxes, one per page.
func Text(d *Dashboard) string {
	var sections []string
	sections = append(sections, cli.FormatTitle(fmt.Sprintf("Museum reviews: %d in view", d.Total)))

	if o := d.Overview; o != nil {
		sections = append(sections,
			cli.RenderBox("Overview", fmt.Sprintf("Reviews: %d\nMean rating: %.2f\nMedian rating: %.1f",
				o.Total, o.MeanRating, o.MedianRating)),
			cli.RenderBox("Rating distribution", countBars(o.RatingDistribution)),
			cli.RenderBox("Tourist types", countBars(o.TouristTypes)),
			cli.RenderBox("Reviews per year", countBars(o.PerYear)),
			cli.RenderBox("Reviews per month", countBars(o.PerMonth)),
			cli.RenderBox("Average rating by month", monthBars(o.MonthlyAverageRating)),
			cli.RenderBox("Top cities", countBars(o.TopCities)),
			cli.RenderBox("Top countries", countBars(o.TopCountries)),
		)
	}
	if wd := d.Words; wd != nil {
		sections = append(sections,
			cli.RenderBox("Top words", termBars(wd.Unigrams)),
			cli.RenderBox("Top phrases", termBars(wd.Bigrams)),
		)
	}
	if s := d.Sentiment; s != nil {
		var years strings.Builder
		for _, y := range s.MeanScores {
			fmt.Fprintf(&years, "%d  textblob %+.3f  vader %+.3f  composite %+.3f\n",
				y.Year, y.TextBlob, y.Vader, y.Composite)
		}
		sections = append(sections,
			cli.RenderBox("Sentiment", countBars(s.Distribution)),
			cli.RenderBox("Mean scores by year", strings.TrimRight(years.String(), "\n")),
		)
	}
	if e := d.Emotion; e != nil {
		body := countBars(e.Distribution)
		if !e.Available {
			body = cli.SubtleStyle.Render("no emotion labels in view")
		}
		sections = append(sections, cli.RenderBox("Emotions", body))
	}
	if n := d.Negative; n != nil {
		title := fmt.Sprintf("Negative reviews: %d", n.Total)
		if n.Emotion != "" {
			title = fmt.Sprintf("Negative reviews (%s): %d", n.Emotion, n.Total)
		}
		sections = append(sections, cli.RenderBox(title, termBars(n.TopWords)))
	}
	return strings.Join(sections, "\n") + "\n"
}

func countBars(counts []Count) string {
	bars := make([]cli.Bar, len(counts))
	for i, c := range counts {
		bars[i] = cli.Bar{Label: c.Label, Value: float64(c.Count)}
	}
	return cli.RenderBars(bars, barWidth, "%.0f")
}

func termBars(terms []words.Term) string {
	bars := make([]cli.Bar, len(terms))
	for i, t := range terms {
		bars[i] = cli.Bar{Label: t.Term, Value: float64(t.Count)}
	}
	return cli.RenderBars(bars, barWidth, "%.0f")
}

func monthBars(months []MonthAverage) string {
	bars := make([]cli.Bar, len(months))
	for i, m := range months {
		bars[i] = cli.Bar{Label: fmt.Sprintf("%02d", m.Month), Value: m.Average}
	}
	return cli.RenderBars(bars, barWidth, "%.2f")
}
