// Package filter implements the faceted filter view over labeled reviews.
package filter

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
)

// Facet parameter names shared by the HTTP API and the CLI.
const (
	ParamYear      = "year"
	ParamTourist   = "tourist"
	ParamSentiment = "sentiment"
	ParamRating    = "rating"
	ParamKeyword   = "keyword"
	ParamEmotion   = "emotion"
)

// Spec selects reviews by facet. An empty facet places no constraint on
// that dimension; it never means "match nothing".
type Spec struct {
	Keyword      string              `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Years        []int               `json:"years,omitempty" yaml:"years,omitempty"`
	TouristTypes []model.TouristType `json:"tourist_types,omitempty" yaml:"tourist_types,omitempty"`
	Sentiments   []model.Sentiment   `json:"sentiments,omitempty" yaml:"sentiments,omitempty"`
	Ratings      []int               `json:"ratings,omitempty" yaml:"ratings,omitempty"`
	// Emotion narrows the negative-review page to one dominant emotion. It
	// is not a facet: Matches and Apply ignore it.
	Emotion string `json:"emotion,omitempty" yaml:"emotion,omitempty"`
}

// IsEmpty reports whether the spec passes every review through.
func (s Spec) IsEmpty() bool {
	return len(s.Years) == 0 && len(s.TouristTypes) == 0 && len(s.Sentiments) == 0 &&
		len(s.Ratings) == 0 && strings.TrimSpace(s.Keyword) == ""
}

// Matches reports whether r satisfies every non-empty facet of s.
func (s Spec) Matches(r model.LabeledReview) bool {
	if len(s.Years) > 0 && !slices.Contains(s.Years, r.Year) {
		return false
	}
	if len(s.TouristTypes) > 0 && !slices.Contains(s.TouristTypes, r.TouristType) {
		return false
	}
	if len(s.Sentiments) > 0 && !slices.Contains(s.Sentiments, r.Sentiment) {
		return false
	}
	if len(s.Ratings) > 0 && !slices.Contains(s.Ratings, r.Rating) {
		return false
	}
	if kw := strings.TrimSpace(s.Keyword); kw != "" {
		return strings.Contains(strings.ToLower(r.ReviewText), strings.ToLower(kw))
	}
	return true
}

// WithoutSentiment returns s with the sentiment facet cleared.
func (s Spec) WithoutSentiment() Spec {
	s.Sentiments = nil
	return s
}

// Apply returns the reviews matching spec, in their original order. The
// input slice is never modified.
func Apply(reviews []model.LabeledReview, spec Spec) []model.LabeledReview {
	out := make([]model.LabeledReview, 0, len(reviews))
	for _, r := range reviews {
		if spec.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Key returns a canonical string for spec, equal for specs that select the
// same reviews regardless of value order or duplicates.
func (s Spec) Key() string {
	n := s.Normalize()
	var b strings.Builder
	b.WriteString("y=")
	b.WriteString(joinInts(n.Years))
	b.WriteString(";t=")
	for i, t := range n.TouristTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(t))
	}
	b.WriteString(";s=")
	for i, v := range n.Sentiments {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(v))
	}
	b.WriteString(";r=")
	b.WriteString(joinInts(n.Ratings))
	b.WriteString(";k=")
	b.WriteString(strconv.Quote(n.Keyword))
	if n.Emotion != "" {
		b.WriteString(";e=")
		b.WriteString(n.Emotion)
	}
	return b.String()
}

// Normalize sorts and deduplicates every facet and lower-cases the keyword
// and emotion.
func (s Spec) Normalize() Spec {
	out := Spec{
		Keyword: strings.ToLower(strings.TrimSpace(s.Keyword)),
		Emotion: strings.ToLower(strings.TrimSpace(s.Emotion)),
	}
	out.Years = sortedUnique(s.Years)
	out.Ratings = sortedUnique(s.Ratings)
	for _, t := range model.TouristTypes {
		if slices.Contains(s.TouristTypes, t) {
			out.TouristTypes = append(out.TouristTypes, t)
		}
	}
	for _, v := range model.Sentiments {
		if slices.Contains(s.Sentiments, v) {
			out.Sentiments = append(out.Sentiments, v)
		}
	}
	return out
}

// Parse builds a Spec from raw facet values such as URL query parameters or
// CLI flags. Each value may hold several comma-separated entries. Values
// that do not name a known facet value are dropped and logged.
func Parse(values map[string][]string) Spec {
	var spec Spec
	for _, v := range split(values[ParamYear]) {
		year, err := strconv.Atoi(v)
		if err != nil || year <= 0 {
			dropped(ParamYear, v)
			continue
		}
		spec.Years = append(spec.Years, year)
	}
	for _, v := range split(values[ParamRating]) {
		rating, err := strconv.Atoi(v)
		if err != nil || rating < 1 || rating > 5 {
			dropped(ParamRating, v)
			continue
		}
		spec.Ratings = append(spec.Ratings, rating)
	}
	for _, v := range split(values[ParamTourist]) {
		t, ok := model.ParseTouristType(v)
		if !ok {
			dropped(ParamTourist, v)
			continue
		}
		spec.TouristTypes = append(spec.TouristTypes, t)
	}
	for _, v := range split(values[ParamSentiment]) {
		s, ok := model.ParseSentiment(v)
		if !ok {
			dropped(ParamSentiment, v)
			continue
		}
		spec.Sentiments = append(spec.Sentiments, s)
	}
	if kw := values[ParamKeyword]; len(kw) > 0 {
		spec.Keyword = strings.TrimSpace(kw[0])
	}
	if em := split(values[ParamEmotion]); len(em) > 0 {
		if validEmotion(em[0]) {
			spec.Emotion = em[0]
		} else {
			dropped(ParamEmotion, em[0])
		}
	}
	return spec.Normalize()
}

// Values renders spec back into raw facet values accepted by Parse.
func (s Spec) Values() map[string][]string {
	out := make(map[string][]string)
	for _, y := range s.Years {
		out[ParamYear] = append(out[ParamYear], strconv.Itoa(y))
	}
	for _, r := range s.Ratings {
		out[ParamRating] = append(out[ParamRating], strconv.Itoa(r))
	}
	for _, t := range s.TouristTypes {
		out[ParamTourist] = append(out[ParamTourist], string(t))
	}
	for _, v := range s.Sentiments {
		out[ParamSentiment] = append(out[ParamSentiment], string(v))
	}
	if s.Keyword != "" {
		out[ParamKeyword] = []string{s.Keyword}
	}
	if s.Emotion != "" {
		out[ParamEmotion] = []string{s.Emotion}
	}
	return out
}

// validEmotion accepts a single word label such as "anger".
func validEmotion(label string) bool {
	for _, r := range label {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return label != ""
}

func dropped(facet, value string) {
	slog.Debug("Ignoring filter value",
		"facet", facet,
		"value", value,
		"error", fmt.Errorf("%w: %q", common.ErrInvalidFilter, value))
}

func split(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func sortedUnique(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

func joinInts(in []int) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
