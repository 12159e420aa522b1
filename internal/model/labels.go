package model

import "strings"

// TouristType is the reviewer's origin relative to the museum's home city.
type TouristType string

// Tourist type constants.
const (
	TouristLocal        TouristType = "Local"
	TouristDomestic     TouristType = "Domestic"
	TouristForeign      TouristType = "Foreign"
	TouristNotSpecified TouristType = "Not Specified"
)

// TouristTypes lists every tourist type in display order.
var TouristTypes = []TouristType{TouristForeign, TouristDomestic, TouristLocal, TouristNotSpecified}

// ParseTouristType resolves a tourist type from its display name. Matching is
// case-insensitive and ignores spaces, dashes and underscores, so
// "not-specified" and "NotSpecified" are both accepted.
func ParseTouristType(s string) (TouristType, bool) {
	key := foldName(s)
	for _, t := range TouristTypes {
		if foldName(string(t)) == key {
			return t, true
		}
	}
	return "", false
}

// Sentiment is the polarity label of a review.
type Sentiment string

// Sentiment constants.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments lists every sentiment in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// ParseSentiment resolves a sentiment from its name, case-insensitively.
func ParseSentiment(s string) (Sentiment, bool) {
	key := foldName(s)
	for _, v := range Sentiments {
		if foldName(string(v)) == key {
			return v, true
		}
	}
	return "", false
}

func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
