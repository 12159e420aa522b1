package lexicon

import (
	"context"
	"math"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/stat"
)

const (
	negationFactor    = -0.5
	exclamationFactor = 1.25
	// A negation reaches at most this many tokens ahead.
	negationWindow = 3
)

var (
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)
	wordRe     = regexp.MustCompile(`[a-z]+(?:'[a-z]+)?`)
)

// PatternAnalyzer scores text as the mean polarity of the adjectives it
// recognizes. Modifiers such as "very" multiply the next assessed word,
// a preceding negation flips and halves it and a sentence ending in "!"
// emphasizes its assessments. The result is clamped to [-1, 1].
type PatternAnalyzer struct {
	lexicon map[string]Entry
}

// NewPatternAnalyzer creates an analyzer backed by the embedded lexicon.
func NewPatternAnalyzer() (*PatternAnalyzer, error) {
	lex, err := loadPolarity()
	if err != nil {
		return nil, err
	}
	return NewPatternAnalyzerWithLexicon(lex), nil
}

// NewPatternAnalyzerWithLexicon creates an analyzer over a caller-supplied lexicon.
func NewPatternAnalyzerWithLexicon(lexicon map[string]Entry) *PatternAnalyzer {
	return &PatternAnalyzer{lexicon: lexicon}
}

// Polarity returns the mean polarity of text in [-1, 1]; 0 when nothing was assessed.
func (a *PatternAnalyzer) Polarity(_ context.Context, text string) (float64, error) {
	assessments := a.Assess(text)
	if len(assessments) == 0 {
		return 0, nil
	}
	return math.Max(-1, math.Min(1, stat.Mean(assessments, nil))), nil
}

// Assess returns the polarity of every assessed word in text, in order.
func (a *PatternAnalyzer) Assess(text string) []float64 {
	var out []float64
	for _, sentence := range sentenceRe.FindAllString(strings.ToLower(text), -1) {
		emphasis := 1.0
		if strings.Contains(sentence, "!") {
			emphasis = exclamationFactor
		}

		scale := 1.0
		negatedAt := -negationWindow - 1
		for i, w := range wordRe.FindAllString(sentence, -1) {
			if isNegation(w) {
				negatedAt = i
				continue
			}
			e, ok := a.lexicon[w]
			if !ok {
				continue
			}
			if e.IsModifier() {
				scale *= e.Intensity
				continue
			}

			p := e.Polarity * scale
			if i-negatedAt <= negationWindow {
				p *= negationFactor
			}
			out = append(out, p*emphasis)
			scale = 1
			negatedAt = -negationWindow - 1
		}
	}
	return out
}

func isNegation(w string) bool {
	switch w {
	case "not", "never", "no", "nothing", "neither", "nor", "without":
		return true
	}
	return strings.HasSuffix(w, "n't")
}
