package labeler

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
)

// DeadbandWidth is the half-width of the neutral band used by DeadbandPolicy.
const DeadbandWidth = 0.05

// ThresholdPolicy maps a composite score to a sentiment label.
type ThresholdPolicy interface {
	Name() string
	Classify(score float64) model.Sentiment
}

// StrictZeroPolicy labels any positive score Positive and any negative score
// Negative; only an exact zero is Neutral.
type StrictZeroPolicy struct{}

// Name implements ThresholdPolicy.
func (StrictZeroPolicy) Name() string { return "strict" }

// Classify implements ThresholdPolicy.
func (StrictZeroPolicy) Classify(score float64) model.Sentiment {
	switch {
	case score > 0:
		return model.SentimentPositive
	case score < 0:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// DeadbandPolicy treats scores within ±DeadbandWidth as Neutral.
type DeadbandPolicy struct{}

// Name implements ThresholdPolicy.
func (DeadbandPolicy) Name() string { return "deadband" }

// Classify implements ThresholdPolicy.
func (DeadbandPolicy) Classify(score float64) model.Sentiment {
	switch {
	case score > DeadbandWidth:
		return model.SentimentPositive
	case score < -DeadbandWidth:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// PolicyByName resolves a threshold policy from its configuration name.
func PolicyByName(name string) (ThresholdPolicy, error) {
	switch strings.ToLower(name) {
	case "", "strict":
		return StrictZeroPolicy{}, nil
	case "deadband":
		return DeadbandPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown threshold policy %q", common.ErrInvalidConfig, name)
	}
}

// ScoreSentiment scores text with both polarity scorers and returns their
// scores and mean. Empty text scores zero without consulting the scorers.
func (l *Labeler) ScoreSentiment(ctx context.Context, text string) (textBlob, vader, composite float64, err error) {
	if strings.TrimSpace(text) == "" {
		return 0, 0, 0, nil
	}

	textBlob, err = checkedPolarity(ctx, l.patternScorer, "pattern", text)
	if err != nil {
		return 0, 0, 0, err
	}
	vader, err = checkedPolarity(ctx, l.valenceScorer, "valence", text)
	if err != nil {
		return 0, 0, 0, err
	}
	return textBlob, vader, (textBlob + vader) / 2, nil
}

func checkedPolarity(ctx context.Context, scorer PolarityScorer, name, text string) (float64, error) {
	score, err := scorer.Polarity(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s scorer: %w", common.ErrScorerFailed, name, err)
	}
	if math.IsNaN(score) || score < -1 || score > 1 {
		return 0, fmt.Errorf("%w: %s scorer returned %v", common.ErrScorerFailed, name, score)
	}
	return score, nil
}

// ClassifySentimentLabel applies the labeler's threshold policy to score.
func (l *Labeler) ClassifySentimentLabel(score float64) model.Sentiment {
	return l.policy.Classify(score)
}
