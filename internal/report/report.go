// Package report projects a filtered review view onto the dashboard pages.
package report

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/words"
	"gonum.org/v1/gonum/stat"
)

// Page names one dashboard page.
type Page string

// Dashboard pages.
const (
	PageAll       Page = "all"
	PageOverview  Page = "overview"
	PageWords     Page = "words"
	PageSentiment Page = "sentiment"
	PageEmotion   Page = "emotion"
	PageNegative  Page = "negative"
)

// Pages lists the individual pages in display order.
var Pages = []Page{PageOverview, PageWords, PageSentiment, PageEmotion, PageNegative}

// ParsePage resolves a page name; "" selects every page.
func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	if p == "" || p == PageAll {
		return PageAll, nil
	}
	if slices.Contains(Pages, p) {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownPage, s)
}

// DefaultTopN is the length of every top-N list unless overridden.
const DefaultTopN = 10

// Options controls Build.
type Options struct {
	Page Page
	TopN int
	// Emotion keeps only negative reviews with this dominant emotion on the
	// negative page. Empty keeps every negative review.
	Emotion string
}

// Count is one bar of a distribution.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// MonthAverage is the mean rating of one calendar month across all years.
type MonthAverage struct {
	Month   int     `json:"month" yaml:"month"`
	Reviews int     `json:"reviews" yaml:"reviews"`
	Average float64 `json:"average" yaml:"average"`
}

// Overview summarizes ratings, origins and volume over time.
type Overview struct {
	RatingDistribution   []Count        `json:"rating_distribution" yaml:"rating_distribution"`
	TouristTypes         []Count        `json:"tourist_types" yaml:"tourist_types"`
	PerYear              []Count        `json:"per_year" yaml:"per_year"`
	PerMonth             []Count        `json:"per_month" yaml:"per_month"`
	PerYearMonth         []Count        `json:"per_year_month" yaml:"per_year_month"`
	TopCities            []Count        `json:"top_cities" yaml:"top_cities"`
	TopCountries         []Count        `json:"top_countries" yaml:"top_countries"`
	MonthlyAverageRating []MonthAverage `json:"monthly_average_rating" yaml:"monthly_average_rating"`
	Total                int            `json:"total" yaml:"total"`
	MeanRating           float64        `json:"mean_rating" yaml:"mean_rating"`
	MedianRating         float64        `json:"median_rating" yaml:"median_rating"`
}

// Words holds the most frequent words and phrases.
type Words struct {
	Unigrams []words.Term `json:"unigrams" yaml:"unigrams"`
	Bigrams  []words.Term `json:"bigrams" yaml:"bigrams"`
}

// YearSentiment counts sentiment labels in one year.
type YearSentiment struct {
	Year     int `json:"year" yaml:"year"`
	Positive int `json:"positive" yaml:"positive"`
	Neutral  int `json:"neutral" yaml:"neutral"`
	Negative int `json:"negative" yaml:"negative"`
}

// YearScores averages the polarity scores of one year.
type YearScores struct {
	Year      int     `json:"year" yaml:"year"`
	TextBlob  float64 `json:"textblob" yaml:"textblob"`
	Vader     float64 `json:"vader" yaml:"vader"`
	Composite float64 `json:"composite" yaml:"composite"`
}

// Sentiment breaks the view down by sentiment label and score.
type Sentiment struct {
	Distribution []Count         `json:"distribution" yaml:"distribution"`
	ByYear       []YearSentiment `json:"by_year" yaml:"by_year"`
	MeanScores   []YearScores    `json:"mean_scores" yaml:"mean_scores"`
}

// Emotion is the distribution of dominant emotions. Available is false when
// no review in the view carries an emotion.
type Emotion struct {
	Distribution []Count `json:"distribution" yaml:"distribution"`
	Available    bool    `json:"available" yaml:"available"`
}

// Negative lists the words that dominate negative reviews.
type Negative struct {
	TopWords []words.Term `json:"top_words" yaml:"top_words"`
	Total    int          `json:"total" yaml:"total"`
	Emotion  string       `json:"emotion,omitempty" yaml:"emotion,omitempty"`
}

// Dashboard is every requested page computed from one filtered view.
type Dashboard struct {
	Overview  *Overview  `json:"overview,omitempty" yaml:"overview,omitempty"`
	Words     *Words     `json:"words,omitempty" yaml:"words,omitempty"`
	Sentiment *Sentiment `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Emotion   *Emotion   `json:"emotion,omitempty" yaml:"emotion,omitempty"`
	Negative  *Negative  `json:"negative,omitempty" yaml:"negative,omitempty"`
	Page      Page       `json:"page" yaml:"page"`
	Total     int        `json:"total" yaml:"total"`
}

// Build computes the requested pages over reviews, which are already
// filtered.
func Build(reviews []model.LabeledReview, opts Options) *Dashboard {
	return build(reviews, reviews, opts)
}

// BuildView filters all by spec and computes the requested pages. The
// negative page always selects negative reviews itself, so it is built from
// the view filtered by every facet except sentiment. The spec's emotion
// narrows that page unless opts already names one.
func BuildView(all []model.LabeledReview, spec filter.Spec, opts Options) *Dashboard {
	if opts.Emotion == "" {
		opts.Emotion = spec.Emotion
	}
	view := filter.Apply(all, spec)
	negatives := view
	if (opts.Page == "" || opts.Page == PageAll || opts.Page == PageNegative) && len(spec.Sentiments) > 0 {
		negatives = filter.Apply(all, spec.WithoutSentiment())
	}
	return build(view, negatives, opts)
}

func build(reviews, negatives []model.LabeledReview, opts Options) *Dashboard {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Page == "" {
		opts.Page = PageAll
	}

	d := &Dashboard{Page: opts.Page, Total: len(reviews)}
	want := func(p Page) bool { return opts.Page == PageAll || opts.Page == p }

	if want(PageOverview) {
		d.Overview = buildOverview(reviews, opts.TopN)
	}
	if want(PageWords) {
		d.Words = buildWords(reviews, opts.TopN)
	}
	if want(PageSentiment) {
		d.Sentiment = buildSentiment(reviews)
	}
	if want(PageEmotion) {
		d.Emotion = buildEmotion(reviews)
	}
	if want(PageNegative) {
		d.Negative = buildNegative(negatives, opts.Emotion, opts.TopN)
	}
	return d
}

func buildOverview(reviews []model.LabeledReview, topN int) *Overview {
	o := &Overview{Total: len(reviews)}

	ratings := make([]float64, 0, len(reviews))
	byRating := make(map[int]int)
	byTourist := make(map[model.TouristType]int)
	byYear := make(map[int]int)
	byYearMonth := make(map[string]int)
	cities := make(map[string]int)
	countries := make(map[string]int)
	var monthCount [12]int
	var monthSum [12]float64

	for _, r := range reviews {
		ratings = append(ratings, float64(r.Rating))
		byRating[r.Rating]++
		byTourist[r.TouristType]++
		byYear[r.Year]++
		byYearMonth[r.YearMonth()]++
		if r.Month >= 1 && r.Month <= 12 {
			monthCount[r.Month-1]++
			monthSum[r.Month-1] += float64(r.Rating)
		}
		if known(r.City) {
			cities[r.City]++
		}
		if known(r.Country) {
			countries[r.Country]++
		}
	}

	if len(ratings) > 0 {
		o.MeanRating = stat.Mean(ratings, nil)
		o.MedianRating = median(ratings)
	}

	o.RatingDistribution = intCounts(byRating)
	for _, t := range model.TouristTypes {
		o.TouristTypes = append(o.TouristTypes, Count{Label: string(t), Count: byTourist[t]})
	}
	o.PerYear = intCounts(byYear)

	for m := 0; m < 12; m++ {
		o.PerMonth = append(o.PerMonth, Count{Label: time.Month(m + 1).String()[:3], Count: monthCount[m]})
		avg := MonthAverage{Month: m + 1, Reviews: monthCount[m]}
		if monthCount[m] > 0 {
			avg.Average = monthSum[m] / float64(monthCount[m])
		}
		o.MonthlyAverageRating = append(o.MonthlyAverageRating, avg)
	}

	keys := make([]string, 0, len(byYearMonth))
	for k := range byYearMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o.PerYearMonth = make([]Count, 0, len(keys))
	for _, k := range keys {
		o.PerYearMonth = append(o.PerYearMonth, Count{Label: k, Count: byYearMonth[k]})
	}

	o.TopCities = topCounts(cities, topN)
	o.TopCountries = topCounts(countries, topN)
	return o
}

func buildWords(reviews []model.LabeledReview, topN int) *Words {
	texts := reviewTexts(reviews)
	return &Words{
		Unigrams: words.Top(texts, 1, topN),
		Bigrams:  words.Top(texts, 2, topN),
	}
}

func buildSentiment(reviews []model.LabeledReview) *Sentiment {
	s := &Sentiment{}

	counts := make(map[model.Sentiment]int)
	years := make(map[int]*YearSentiment)
	scores := make(map[int]*[3][]float64)
	for _, r := range reviews {
		counts[r.Sentiment]++

		ys, ok := years[r.Year]
		if !ok {
			ys = &YearSentiment{Year: r.Year}
			years[r.Year] = ys
			scores[r.Year] = &[3][]float64{}
		}
		switch r.Sentiment {
		case model.SentimentPositive:
			ys.Positive++
		case model.SentimentNeutral:
			ys.Neutral++
		case model.SentimentNegative:
			ys.Negative++
		}
		sc := scores[r.Year]
		sc[0] = append(sc[0], r.TextBlobScore)
		sc[1] = append(sc[1], r.VaderScore)
		sc[2] = append(sc[2], r.CompositeScore)
	}

	for _, v := range model.Sentiments {
		s.Distribution = append(s.Distribution, Count{Label: string(v), Count: counts[v]})
	}

	order := make([]int, 0, len(years))
	for y := range years {
		order = append(order, y)
	}
	sort.Ints(order)
	s.ByYear = make([]YearSentiment, 0, len(order))
	s.MeanScores = make([]YearScores, 0, len(order))
	for _, y := range order {
		s.ByYear = append(s.ByYear, *years[y])
		sc := scores[y]
		s.MeanScores = append(s.MeanScores, YearScores{
			Year:      y,
			TextBlob:  stat.Mean(sc[0], nil),
			Vader:     stat.Mean(sc[1], nil),
			Composite: stat.Mean(sc[2], nil),
		})
	}
	return s
}

func buildEmotion(reviews []model.LabeledReview) *Emotion {
	counts := make(map[string]int)
	for _, r := range reviews {
		if r.HasEmotion() {
			counts[r.Emotion]++
		}
	}
	return &Emotion{
		Available:    len(counts) > 0,
		Distribution: topCounts(counts, 0),
	}
}

func buildNegative(reviews []model.LabeledReview, emotion string, topN int) *Negative {
	var texts []string
	for _, r := range reviews {
		if r.Sentiment != model.SentimentNegative {
			continue
		}
		if emotion != "" && !strings.EqualFold(r.Emotion, emotion) {
			continue
		}
		texts = append(texts, r.ReviewText)
	}
	return &Negative{
		Total:    len(texts),
		TopWords: words.Top(texts, 1, topN),
		Emotion:  emotion,
	}
}

func reviewTexts(reviews []model.LabeledReview) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.ReviewText
	}
	return out
}

func known(s string) bool {
	return s != "" && s != model.UnknownOrigin
}

// median expects a non-empty slice and sorts it in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

func intCounts(m map[int]int) []Count {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]Count, 0, len(keys))
	for _, k := range keys {
		out = append(out, Count{Label: fmt.Sprint(k), Count: m[k]})
	}
	return out
}

// topCounts orders by count descending, then label. A limit <= 0 keeps all.
func topCounts(m map[string]int, limit int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
