package lexicon

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// Plutchik's eight basic emotions.
const (
	Anger        = "anger"
	Anticipation = "anticipation"
	Disgust      = "disgust"
	Fear         = "fear"
	Joy          = "joy"
	Sadness      = "sadness"
	Surprise     = "surprise"
	Trust        = "trust"
)

// Emotions lists the supported emotion labels in alphabetical order.
var Emotions = []string{Anger, Anticipation, Disgust, Fear, Joy, Sadness, Surprise, Trust}

var emotionWordRe = regexp.MustCompile(`[a-z]+`)

func isEmotion(label string) bool {
	for _, e := range Emotions {
		if e == label {
			return true
		}
	}
	return false
}

// EmotionLexicon ranks emotions by the relative frequency of their words in
// a text. It is always available.
type EmotionLexicon struct {
	words map[string][]string
}

// NewEmotionLexicon creates a scorer backed by the embedded lexicon.
func NewEmotionLexicon() (*EmotionLexicon, error) {
	words, err := loadEmotions()
	if err != nil {
		return nil, err
	}
	return NewEmotionLexiconWithWords(words), nil
}

// NewEmotionLexiconWithWords creates a scorer over a caller-supplied word map.
func NewEmotionLexiconWithWords(words map[string][]string) *EmotionLexicon {
	return &EmotionLexicon{words: words}
}

// Available always reports true.
func (l *EmotionLexicon) Available(context.Context) bool { return true }

// Rank returns every emotion found in text with its share of all emotion
// hits, highest first. Ties are broken by label. Text without any emotion
// words yields an empty ranking.
func (l *EmotionLexicon) Rank(_ context.Context, text string) ([]model.EmotionScore, error) {
	counts := make(map[string]int)
	total := 0
	for _, w := range emotionWordRe.FindAllString(strings.ToLower(text), -1) {
		for _, e := range l.words[w] {
			counts[e]++
			total++
		}
	}
	if total == 0 {
		return nil, nil
	}

	ranking := make([]model.EmotionScore, 0, len(counts))
	for label, n := range counts {
		ranking = append(ranking, model.EmotionScore{Label: label, Score: float64(n) / float64(total)})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Label < ranking[j].Label
	})
	return ranking, nil
}
