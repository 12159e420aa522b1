package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTouristType(t *testing.T) {
	tests := []struct {
		in     string
		want   TouristType
		wantOK bool
	}{
		{"Local", TouristLocal, true},
		{"domestic", TouristDomestic, true},
		{" FOREIGN ", TouristForeign, true},
		{"Not Specified", TouristNotSpecified, true},
		{"not-specified", TouristNotSpecified, true},
		{"NotSpecified", TouristNotSpecified, true},
		{"tourist", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTouristType(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSentiment(t *testing.T) {
	for _, s := range Sentiments {
		got, ok := ParseSentiment(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	got, ok := ParseSentiment("negative")
	assert.True(t, ok)
	assert.Equal(t, SentimentNegative, got)

	_, ok = ParseSentiment("mixed")
	assert.False(t, ok)
}
