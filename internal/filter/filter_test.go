package filter

import (
	"testing"

	"github.com/Veraticus/museum-pulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(id, year, rating int, tourist model.TouristType, sentiment model.Sentiment, text string) model.LabeledReview {
	return model.LabeledReview{
		RawReview:   model.RawReview{ID: id, Year: year, Rating: rating, Month: 1, Day: 1},
		ReviewText:  text,
		TouristType: tourist,
		Sentiment:   sentiment,
	}
}

func fixture() []model.LabeledReview {
	return []model.LabeledReview{
		review(0, 2019, 5, model.TouristLocal, model.SentimentPositive, "Loved the Impressionist wing"),
		review(1, 2019, 2, model.TouristForeign, model.SentimentNegative, "Crowded and expensive"),
		review(2, 2020, 4, model.TouristDomestic, model.SentimentPositive, "Great sculpture garden"),
		review(3, 2021, 3, model.TouristNotSpecified, model.SentimentNeutral, "We went on a Tuesday"),
		review(4, 2021, 5, model.TouristForeign, model.SentimentPositive, "The impressionist paintings were stunning"),
	}
}

func ids(reviews []model.LabeledReview) []int {
	out := make([]int, len(reviews))
	for i, r := range reviews {
		out[i] = r.ID
	}
	return out
}

func TestApply(t *testing.T) {
	rows := fixture()

	tests := []struct {
		name string
		spec Spec
		want []int
	}{
		{name: "empty spec passes everything", spec: Spec{}, want: []int{0, 1, 2, 3, 4}},
		{name: "year", spec: Spec{Years: []int{2019}}, want: []int{0, 1}},
		{name: "tourist", spec: Spec{TouristTypes: []model.TouristType{model.TouristForeign}}, want: []int{1, 4}},
		{name: "sentiment", spec: Spec{Sentiments: []model.Sentiment{model.SentimentPositive}}, want: []int{0, 2, 4}},
		{name: "rating", spec: Spec{Ratings: []int{5}}, want: []int{0, 4}},
		{name: "keyword case insensitive", spec: Spec{Keyword: "IMPRESSIONIST"}, want: []int{0, 4}},
		{
			name: "facets combine with AND",
			spec: Spec{Years: []int{2019, 2021}, Sentiments: []model.Sentiment{model.SentimentPositive}, Keyword: "impressionist"},
			want: []int{0, 4},
		},
		{name: "absent keyword matches nothing", spec: Spec{Keyword: "XYZQQQ-not-present"}, want: []int{}},
		{name: "blank keyword is ignored", spec: Spec{Keyword: "   "}, want: []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(rows, tt.spec)))
		})
	}
}

func TestApply_NoOpReturnsInputUnchanged(t *testing.T) {
	rows := fixture()
	got := Apply(rows, Spec{})
	assert.Equal(t, rows, got)

	got[0].ReviewText = "mutated"
	assert.Equal(t, "Loved the Impressionist wing", rows[0].ReviewText, "input is never aliased")
}

func TestApply_Empty(t *testing.T) {
	got := Apply(nil, Spec{Years: []int{2020}})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParse(t *testing.T) {
	spec := Parse(map[string][]string{
		ParamYear:      {"2021,2019", "2019", "twenty", "-4"},
		ParamRating:    {"5", "9", "4"},
		ParamTourist:   {"foreign", "not-specified", "Martian"},
		ParamSentiment: {"Positive,bogus"},
		ParamKeyword:   {"  Garden "},
	})

	assert.Equal(t, []int{2019, 2021}, spec.Years)
	assert.Equal(t, []int{4, 5}, spec.Ratings)
	assert.Equal(t, []model.TouristType{model.TouristForeign, model.TouristNotSpecified}, spec.TouristTypes)
	assert.Equal(t, []model.Sentiment{model.SentimentPositive}, spec.Sentiments)
	assert.Equal(t, "garden", spec.Keyword)
}

func TestParse_AllUnknownIsPassThrough(t *testing.T) {
	spec := Parse(map[string][]string{
		ParamYear:    {"abc"},
		ParamTourist: {"tourist"},
	})
	assert.True(t, spec.IsEmpty())
	assert.Len(t, Apply(fixture(), spec), 5)
}

func TestSpec_Key(t *testing.T) {
	a := Spec{
		Years:        []int{2021, 2019, 2019},
		TouristTypes: []model.TouristType{model.TouristLocal, model.TouristForeign},
		Keyword:      "Art",
	}
	b := Spec{
		Years:        []int{2019, 2021},
		TouristTypes: []model.TouristType{model.TouristForeign, model.TouristLocal},
		Keyword:      " art ",
	}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Spec{}.Key())
	assert.Equal(t, `y=;t=;s=;r=;k=""`, Spec{}.Key())
}

func TestSpec_ValuesRoundTrip(t *testing.T) {
	spec := Spec{
		Years:        []int{2019},
		Ratings:      []int{1, 2},
		TouristTypes: []model.TouristType{model.TouristNotSpecified},
		Sentiments:   []model.Sentiment{model.SentimentNeutral},
		Keyword:      "garden",
		Emotion:      "anger",
	}
	assert.Equal(t, spec, Parse(spec.Values()))
}

func TestParse_Emotion(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "label", values: []string{"anger"}, want: "anger"},
		{name: "case folded", values: []string{" Sadness "}, want: "sadness"},
		{name: "first of several", values: []string{"fear,joy"}, want: "fear"},
		{name: "not a word", values: []string{"anger!"}, want: ""},
		{name: "absent", values: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Parse(map[string][]string{ParamEmotion: tt.values})
			assert.Equal(t, tt.want, spec.Emotion)
		})
	}
}

func TestSpec_EmotionKeyedButNotFiltered(t *testing.T) {
	spec := Parse(map[string][]string{ParamEmotion: {"anger"}})

	assert.NotEqual(t, Spec{}.Key(), spec.Key())
	assert.Contains(t, spec.Key(), ";e=anger")
	assert.Len(t, Apply(fixture(), spec), 5)
}

func TestSpec_WithoutSentiment(t *testing.T) {
	spec := Spec{
		Years:      []int{2019},
		Sentiments: []model.Sentiment{model.SentimentPositive},
		Emotion:    "fear",
	}
	got := spec.WithoutSentiment()

	assert.Empty(t, got.Sentiments)
	assert.Equal(t, []int{2019}, got.Years)
	assert.Equal(t, "fear", got.Emotion)
	assert.Len(t, spec.Sentiments, 1, "receiver is unchanged")
	assert.Equal(t, []int{0, 1}, ids(Apply(fixture(), got)))
}

func TestFacetsOf(t *testing.T) {
	f := FacetsOf(fixture())
	assert.Equal(t, []int{2019, 2020, 2021}, f.Years)
	assert.Equal(t, []int{2, 3, 4, 5}, f.Ratings)
	assert.Equal(t, model.TouristTypes, f.TouristTypes)
	assert.Equal(t, model.Sentiments, f.Sentiments)

	empty := FacetsOf(nil)
	assert.Empty(t, empty.Years)
	assert.Empty(t, empty.Ratings)
}
