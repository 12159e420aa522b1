package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/Veraticus/museum-pulse/internal/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func review(rating, year, month int, tourist model.TouristType, sentiment model.Sentiment, city, country, text, emotion string) model.LabeledReview {
	return model.LabeledReview{
		RawReview:   model.RawReview{Rating: rating, Year: year, Month: month, Day: 1},
		ReviewText:  text,
		City:        city,
		Country:     country,
		Emotion:     emotion,
		TouristType: tourist,
		Sentiment:   sentiment,
	}
}

func fixture() []model.LabeledReview {
	first := review(5, 2019, 3, model.TouristDomestic, model.SentimentPositive, "Boston", "USA", "amazing exhibits amazing staff", "joy")
	first.TextBlobScore, first.VaderScore, first.CompositeScore = 0.5, 0.7, 0.6
	second := review(4, 2019, 3, model.TouristForeign, model.SentimentNeutral, "London", "England", "long queue", "")
	second.TextBlobScore, second.VaderScore, second.CompositeScore = 0.1, -0.1, 0
	return []model.LabeledReview{
		first,
		second,
		review(1, 2020, 7, model.TouristLocal, model.SentimentNegative, "New York", "USA", "rude staff dirty floors", "anger"),
		review(2, 2020, 12, model.TouristNotSpecified, model.SentimentNegative, model.UnknownOrigin, model.UnknownOrigin, "dirty toilets", "anger"),
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		in      string
		want    Page
		wantErr bool
	}{
		{in: "", want: PageAll},
		{in: "all", want: PageAll},
		{in: " Sentiment ", want: PageSentiment},
		{in: "negative", want: PageNegative},
		{in: "tables", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrUnknownPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Overview(t *testing.T) {
	d := Build(fixture(), Options{Page: PageOverview})
	require.NotNil(t, d.Overview)
	assert.Nil(t, d.Words)
	assert.Nil(t, d.Sentiment)
	assert.Nil(t, d.Emotion)
	assert.Nil(t, d.Negative)

	o := d.Overview
	assert.Equal(t, 4, o.Total)
	assert.InDelta(t, 3.0, o.MeanRating, 1e-9)
	assert.InDelta(t, 3.0, o.MedianRating, 1e-9)
	assert.Equal(t, []Count{{"1", 1}, {"2", 1}, {"4", 1}, {"5", 1}}, o.RatingDistribution)
	assert.Equal(t, []Count{{"Foreign", 1}, {"Domestic", 1}, {"Local", 1}, {"Not Specified", 1}}, o.TouristTypes)
	assert.Equal(t, []Count{{"2019", 2}, {"2020", 2}}, o.PerYear)
	assert.Equal(t, []Count{{"2019-03", 2}, {"2020-07", 1}, {"2020-12", 1}}, o.PerYearMonth)

	require.Len(t, o.PerMonth, 12)
	assert.Equal(t, Count{"Mar", 2}, o.PerMonth[2])
	assert.Equal(t, Count{"Jan", 0}, o.PerMonth[0])

	require.Len(t, o.MonthlyAverageRating, 12)
	assert.Equal(t, MonthAverage{Month: 3, Reviews: 2, Average: 4.5}, o.MonthlyAverageRating[2])
	assert.Equal(t, MonthAverage{Month: 1}, o.MonthlyAverageRating[0])

	assert.Equal(t, []Count{{"USA", 2}, {"England", 1}}, o.TopCountries)
	assert.Equal(t, []Count{{"Boston", 1}, {"London", 1}, {"New York", 1}}, o.TopCities)
}

func TestBuild_Words(t *testing.T) {
	d := Build(fixture(), Options{Page: PageWords, TopN: 3})
	require.NotNil(t, d.Words)

	assert.Equal(t, []words.Term{{Term: "amazing", Count: 2}, {Term: "dirty", Count: 2}, {Term: "staff", Count: 2}}, d.Words.Unigrams)
	assert.Equal(t, []words.Term{{Term: "amazing exhibits", Count: 1}, {Term: "amazing staff", Count: 1}, {Term: "dirty floors", Count: 1}}, d.Words.Bigrams)
}

func TestBuild_Sentiment(t *testing.T) {
	d := Build(fixture(), Options{Page: PageSentiment})
	require.NotNil(t, d.Sentiment)
	s := d.Sentiment

	assert.Equal(t, []Count{{"Positive", 1}, {"Neutral", 1}, {"Negative", 2}}, s.Distribution)
	assert.Equal(t, []YearSentiment{
		{Year: 2019, Positive: 1, Neutral: 1},
		{Year: 2020, Negative: 2},
	}, s.ByYear)

	require.Len(t, s.MeanScores, 2)
	assert.InDelta(t, 0.3, s.MeanScores[0].TextBlob, 1e-9)
	assert.InDelta(t, 0.3, s.MeanScores[0].Vader, 1e-9)
	assert.InDelta(t, 0.3, s.MeanScores[0].Composite, 1e-9)
	assert.Equal(t, 2020, s.MeanScores[1].Year)
}

func TestBuild_EmotionAndNegative(t *testing.T) {
	d := Build(fixture(), Options{Page: PageAll, TopN: 2})
	require.NotNil(t, d.Emotion)
	require.NotNil(t, d.Negative)

	assert.True(t, d.Emotion.Available)
	assert.Equal(t, []Count{{"anger", 2}, {"joy", 1}}, d.Emotion.Distribution)

	assert.Equal(t, 2, d.Negative.Total)
	assert.Equal(t, []words.Term{{Term: "dirty", Count: 2}, {Term: "floors", Count: 1}}, d.Negative.TopWords)
}

func TestBuildView_Negative(t *testing.T) {
	positive := []model.Sentiment{model.SentimentPositive}

	tests := []struct {
		name         string
		spec         filter.Spec
		opts         Options
		wantTotal    int
		wantNegative int
		wantEmotion  string
	}{
		{name: "empty spec", wantTotal: 4, wantNegative: 2},
		{name: "sentiment facet ignored", spec: filter.Spec{Sentiments: positive}, wantTotal: 1, wantNegative: 2},
		{name: "other facets still apply", spec: filter.Spec{Sentiments: positive, TouristTypes: []model.TouristType{model.TouristLocal}}, wantTotal: 0, wantNegative: 1},
		{name: "year without negatives", spec: filter.Spec{Years: []int{2019}}, wantTotal: 2, wantNegative: 0},
		{name: "emotion from spec", spec: filter.Spec{Sentiments: positive, Emotion: "anger"}, wantTotal: 1, wantNegative: 2, wantEmotion: "anger"},
		{name: "emotion without matches", spec: filter.Spec{Emotion: "joy"}, wantTotal: 4, wantNegative: 0, wantEmotion: "joy"},
		{name: "options emotion wins", spec: filter.Spec{Emotion: "joy"}, opts: Options{Emotion: "ANGER"}, wantTotal: 4, wantNegative: 2, wantEmotion: "ANGER"},
		{name: "negative page only", spec: filter.Spec{Sentiments: positive}, opts: Options{Page: PageNegative}, wantTotal: 1, wantNegative: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildView(fixture(), tt.spec, tt.opts)
			require.NotNil(t, d.Negative)
			assert.Equal(t, tt.wantTotal, d.Total)
			assert.Equal(t, tt.wantNegative, d.Negative.Total)
			assert.Equal(t, tt.wantEmotion, d.Negative.Emotion)
		})
	}
}

func TestBuild_NegativeKeepsView(t *testing.T) {
	view := filter.Apply(fixture(), filter.Spec{Sentiments: []model.Sentiment{model.SentimentPositive}})
	d := Build(view, Options{Page: PageNegative})
	require.NotNil(t, d.Negative)
	assert.Equal(t, 0, d.Negative.Total)
}

func TestText_NegativeEmotionTitle(t *testing.T) {
	d := BuildView(fixture(), filter.Spec{Emotion: "anger"}, Options{Page: PageNegative})
	assert.Contains(t, Text(d), "Negative reviews (anger): 2")
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "single", values: []float64{4}, want: 4},
		{name: "odd", values: []float64{5, 1, 3}, want: 3},
		{name: "even averages middle pair", values: []float64{5, 1, 4, 2}, want: 3},
		{name: "even equal middle", values: []float64{1, 5, 5, 5}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, median(tt.values), 1e-9)
		})
	}
}

func TestBuild_EmptyView(t *testing.T) {
	d := Build(nil, Options{})
	assert.Equal(t, PageAll, d.Page)
	assert.Equal(t, 0, d.Total)

	require.NotNil(t, d.Overview)
	assert.Zero(t, d.Overview.MeanRating)
	assert.Zero(t, d.Overview.MedianRating)
	assert.Empty(t, d.Overview.RatingDistribution)
	assert.Len(t, d.Overview.PerMonth, 12)

	require.NotNil(t, d.Emotion)
	assert.False(t, d.Emotion.Available)
	assert.Empty(t, d.Words.Unigrams)
	assert.Equal(t, 0, d.Negative.Total)
	assert.Equal(t, []Count{{"Positive", 0}, {"Neutral", 0}, {"Negative", 0}}, d.Sentiment.Distribution)
}

func TestBuild_NoEmotionLabels(t *testing.T) {
	reviews := fixture()
	for i := range reviews {
		reviews[i].Emotion = ""
	}
	d := Build(reviews, Options{Page: PageEmotion})
	assert.False(t, d.Emotion.Available)
	assert.Empty(t, d.Emotion.Distribution)
}

func TestWrite(t *testing.T) {
	d := Build(fixture(), Options{Page: PageSentiment})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, d, FormatJSON))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "sentiment", decoded["page"])
		assert.NotContains(t, decoded, "overview")
		assert.Contains(t, decoded, "sentiment")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, d, FormatYAML))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 4, decoded["total"])
		assert.Contains(t, decoded, "sentiment")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, d, FormatText))
		out := buf.String()
		assert.Contains(t, out, "4 in view")
		assert.Contains(t, out, "Mean scores by year")
		assert.NotContains(t, out, "Top cities")
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, Write(&bytes.Buffer{}, d, "xml"))
	})
}
