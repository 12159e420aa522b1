package labeler

import (
	"context"
	"log/slog"
)

type emotionOutcome int

const (
	emotionFound emotionOutcome = iota
	emotionUnavailable
	emotionEmpty
	emotionError
)

// ClassifyEmotion returns the dominant emotion of text, or "" when the
// emotion scorer is unavailable, fails or finds nothing.
func (l *Labeler) ClassifyEmotion(ctx context.Context, text string) string {
	label, _ := l.classifyEmotion(ctx, text)
	return label
}

func (l *Labeler) classifyEmotion(ctx context.Context, text string) (string, emotionOutcome) {
	if l.emotionScorer == nil || !l.emotionScorer.Available(ctx) {
		return "", emotionUnavailable
	}

	ranking, err := l.emotionScorer.Rank(ctx, text)
	if err != nil {
		slog.Debug("Emotion scorer failed", "error", err)
		return "", emotionError
	}
	if len(ranking) == 0 || ranking[0].Label == "" {
		return "", emotionEmpty
	}
	return ranking[0].Label, emotionFound
}
