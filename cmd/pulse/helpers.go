package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/Veraticus/museum-pulse/internal/clients"
	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/config"
	"github.com/Veraticus/museum-pulse/internal/dataset"
	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/labeler"
	"github.com/Veraticus/museum-pulse/internal/lexicon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig reads the typed configuration from the global viper instance.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

// newEmotionScorer builds the emotion collaborator selected by the config.
// The none provider returns nil, which disables emotion labeling.
func newEmotionScorer(cfg config.EmotionConfig) (labeler.EmotionScorer, error) {
	switch cfg.Provider {
	case config.EmotionProviderNone:
		return nil, nil
	case config.EmotionProviderRemote:
		return clients.NewEmotionClient(cfg.URL, cfg.Timeout), nil
	default:
		return lexicon.NewEmotionLexicon()
	}
}

// newLabeler wires the polarity scorers, emotion scorer and threshold
// policy. A non-nil progress callback is reported after every review.
func newLabeler(cfg *config.Config, progress labeler.ProgressFunc) (*labeler.Labeler, error) {
	pattern, err := lexicon.NewPatternAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern lexicon: %w", err)
	}
	valence, err := lexicon.NewValenceAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("failed to load valence lexicon: %w", err)
	}
	emotion, err := newEmotionScorer(cfg.Emotion)
	if err != nil {
		return nil, fmt.Errorf("failed to load emotion lexicon: %w", err)
	}
	policy, err := labeler.PolicyByName(cfg.Labeler.ThresholdPolicy)
	if err != nil {
		return nil, err
	}

	slog.Debug("Labeler configured",
		"policy", policy.Name(),
		"emotion_provider", cfg.Emotion.Provider)

	return labeler.New(labeler.Config{
		Pattern:  pattern,
		Valence:  valence,
		Emotion:  emotion,
		Policy:   policy,
		Progress: progress,
	})
}

// openStore labels the configured source file and returns a store holding
// its first snapshot.
func openStore(ctx context.Context, cfg *config.Config, showProgress bool) (*dataset.Store, error) {
	var progress labeler.ProgressFunc
	if showProgress {
		progress = cli.NewProgress(os.Stderr, "Labeling reviews")
	}
	l, err := newLabeler(cfg, progress)
	if err != nil {
		return nil, err
	}

	store := dataset.NewStore(cfg.Data.Path, l)
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not load reviews from %s", cfg.Data.Path), err)
	}
	logSnapshot(snap)
	return store, nil
}

func logSnapshot(snap *dataset.Snapshot) {
	slog.Info("Reviews loaded",
		"snapshot", snap.ID,
		"reviews", snap.Len(),
		"skipped_rows", snap.Stats.Load.Skipped,
		"degraded_origins", snap.Stats.Label.DegradedOrigins,
		"absent_emotions", snap.Stats.Label.AbsentEmotions())
}

// addFilterFlags registers the facet flags shared by report and export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice(filter.ParamYear, nil, "Years to include (repeatable or comma-separated)")
	cmd.Flags().StringSlice(filter.ParamTourist, nil, "Tourist types to include (Local, Domestic, Foreign, Not Specified)")
	cmd.Flags().StringSlice(filter.ParamSentiment, nil, "Sentiments to include (Positive, Neutral, Negative)")
	cmd.Flags().StringSlice(filter.ParamRating, nil, "Ratings to include (1-5)")
	cmd.Flags().String(filter.ParamKeyword, "", "Case-insensitive keyword the review text must contain")
	cmd.Flags().String(filter.ParamEmotion, "", "Dominant emotion the negative-review page is narrowed to")
}

// filterFromFlags builds a filter spec from the facet flags. Unknown values
// are dropped by filter.Parse.
func filterFromFlags(cmd *cobra.Command) filter.Spec {
	values := make(map[string][]string)
	for _, name := range []string{filter.ParamYear, filter.ParamTourist, filter.ParamSentiment, filter.ParamRating} {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			values[name] = v
		}
	}
	if keyword, err := cmd.Flags().GetString(filter.ParamKeyword); err == nil && keyword != "" {
		values[filter.ParamKeyword] = []string{keyword}
	}
	if emotion, err := cmd.Flags().GetString(filter.ParamEmotion); err == nil && emotion != "" {
		values[filter.ParamEmotion] = []string{emotion}
	}
	return filter.Parse(values)
}
