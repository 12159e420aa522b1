// Package labeler derives origin, tourist type, sentiment and emotion labels
// for museum reviews.
package labeler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// Stats summarizes a labeling run.
type Stats struct {
	Total              int `json:"total" yaml:"total"`
	DegradedOrigins    int `json:"degraded_origins" yaml:"degraded_origins"`
	EmotionUnavailable int `json:"emotion_unavailable" yaml:"emotion_unavailable"`
	EmotionEmpty       int `json:"emotion_empty" yaml:"emotion_empty"`
	EmotionErrors      int `json:"emotion_errors" yaml:"emotion_errors"`
}

// AbsentEmotions is the number of reviews labeled without an emotion.
func (s Stats) AbsentEmotions() int {
	return s.EmotionUnavailable + s.EmotionEmpty + s.EmotionErrors
}

// ProgressFunc is called after each review is labeled.
type ProgressFunc func(done, total int)

// Config holds the labeler's collaborators and policy.
type Config struct {
	Pattern  PolarityScorer
	Valence  PolarityScorer
	Emotion  EmotionScorer // nil disables emotion labeling
	Policy   ThresholdPolicy
	Progress ProgressFunc
}

// Labeler turns raw reviews into labeled reviews.
type Labeler struct {
	patternScorer PolarityScorer
	valenceScorer PolarityScorer
	emotionScorer EmotionScorer
	policy        ThresholdPolicy
	progress      ProgressFunc
}

// New creates a labeler from its collaborators. A nil policy selects strict zero.
func New(config Config) (*Labeler, error) {
	if config.Pattern == nil || config.Valence == nil {
		return nil, fmt.Errorf("labeler requires both polarity scorers")
	}
	policy := config.Policy
	if policy == nil {
		policy = StrictZeroPolicy{}
	}
	return &Labeler{
		patternScorer: config.Pattern,
		valenceScorer: config.Valence,
		emotionScorer: config.Emotion,
		policy:        policy,
		progress:      config.Progress,
	}, nil
}

// Policy returns the threshold policy in use.
func (l *Labeler) Policy() ThresholdPolicy {
	return l.policy
}

// ReviewText joins the non-empty trimmed title and text with a single space.
func ReviewText(title, text string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{title, text} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (l *Labeler) labelOne(ctx context.Context, raw model.RawReview) (model.LabeledReview, emotionOutcome, error) {
	text := ReviewText(raw.Title, raw.Text)
	city, region := ParseOrigin(raw.Hometown)

	tb, vader, composite, err := l.ScoreSentiment(ctx, text)
	if err != nil {
		return model.LabeledReview{}, 0, fmt.Errorf("review %d: %w", raw.ID, err)
	}

	emotion, outcome := l.classifyEmotion(ctx, text)

	return model.LabeledReview{
		RawReview:      raw,
		ReviewText:     text,
		City:           city,
		Region:         region,
		Country:        Country(region),
		TouristType:    ClassifyTouristType(city, region),
		TextBlobScore:  tb,
		VaderScore:     vader,
		CompositeScore: composite,
		Sentiment:      l.ClassifySentimentLabel(composite),
		Emotion:        emotion,
	}, outcome, nil
}

// Label labels every review in order. A polarity scorer failure aborts the
// whole batch; origin and emotion problems only degrade the affected field.
func (l *Labeler) Label(ctx context.Context, raws []model.RawReview) ([]model.LabeledReview, Stats, error) {
	stats := Stats{Total: len(raws)}
	out := make([]model.LabeledReview, 0, len(raws))

	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		labeled, outcome, err := l.labelOne(ctx, raw)
		if err != nil {
			return nil, stats, err
		}

		if labeled.TouristType == model.TouristNotSpecified {
			stats.DegradedOrigins++
		}
		switch outcome {
		case emotionUnavailable:
			stats.EmotionUnavailable++
		case emotionEmpty:
			stats.EmotionEmpty++
		case emotionError:
			stats.EmotionErrors++
		}

		out = append(out, labeled)
		if l.progress != nil {
			l.progress(i+1, len(raws))
		}
	}

	slog.Info("Labeled reviews",
		"total", stats.Total,
		"policy", l.policy.Name(),
		"degraded_origins", stats.DegradedOrigins,
		"absent_emotions", stats.AbsentEmotions())

	return out, stats, nil
}
