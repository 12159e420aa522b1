// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// Origin placeholders used when a hometown cannot be parsed.
const (
	UnknownOrigin = "Unknown"
	CountryUSA    = "USA"
)

// RawReview is one row of the source review file.
type RawReview struct {
	Title    string `json:"title" yaml:"title"`
	Text     string `json:"text" yaml:"text"`
	Hometown string `json:"hometown" yaml:"hometown"`
	ID       int    `json:"id" yaml:"id"` // 0-based data row position in the source
	Rating   int    `json:"rating" yaml:"rating"`
	Year     int    `json:"year" yaml:"year"`
	Month    int    `json:"month" yaml:"month"`
	Day      int    `json:"day" yaml:"day"`
}

// Date returns the calendar date of the review, or the zero time when the
// year/month/day triple does not name a real day.
func (r RawReview) Date() time.Time {
	if r.Month < 1 || r.Month > 12 || r.Day < 1 {
		return time.Time{}
	}
	d := time.Date(r.Year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC)
	if d.Day() != r.Day {
		return time.Time{}
	}
	return d
}

// YearMonth returns the review's month as a sortable "YYYY-MM" key.
func (r RawReview) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// LabeledReview is a RawReview enriched with derived labels.
type LabeledReview struct {
	RawReview      `yaml:",inline"`
	ReviewText     string      `json:"review_text" yaml:"review_text"`
	City           string      `json:"city" yaml:"city"`
	Region         string      `json:"region" yaml:"region"`
	Country        string      `json:"country" yaml:"country"`
	Emotion        string      `json:"emotion,omitempty" yaml:"emotion,omitempty"` // empty when absent
	TouristType    TouristType `json:"tourist_type" yaml:"tourist_type"`
	Sentiment      Sentiment   `json:"sentiment" yaml:"sentiment"`
	TextBlobScore  float64     `json:"textblob_score" yaml:"textblob_score"`
	VaderScore     float64     `json:"vader_score" yaml:"vader_score"`
	CompositeScore float64     `json:"composite_score" yaml:"composite_score"`
}

// HasEmotion reports whether a dominant emotion was derived for the review.
func (r LabeledReview) HasEmotion() bool {
	return r.Emotion != ""
}

// EmotionScore is one entry of an emotion ranking.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
