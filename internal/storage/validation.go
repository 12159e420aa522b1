package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidReview = errors.New("invalid review")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateReviews(reviews []model.LabeledReview) error {
	if len(reviews) == 0 {
		return fmt.Errorf("%w: reviews", ErrEmptySlice)
	}
	for i := range reviews {
		if err := validateReview(&reviews[i]); err != nil {
			return fmt.Errorf("review at index %d: %w", i, err)
		}
	}
	return nil
}

// validateReview requires the labels every stored row carries.
func validateReview(r *model.LabeledReview) error {
	if r.Sentiment == "" {
		return fmt.Errorf("%w: missing sentiment", ErrInvalidReview)
	}
	if r.TouristType == "" {
		return fmt.Errorf("%w: missing tourist type", ErrInvalidReview)
	}
	return nil
}
