package labeler

import (
	"context"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// PolarityScorer maps text to a polarity score in [-1, 1].
type PolarityScorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// EmotionScorer ranks the emotions expressed in text, highest first. Callers
// must check Available before calling Rank.
type EmotionScorer interface {
	Available(ctx context.Context) bool
	Rank(ctx context.Context, text string) ([]model.EmotionScore, error)
}
