package lexicon

import (
	"context"
	"math"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// Empirically derived mean intensity increase for booster words.
	boosterIncr = 0.293
	boosterDecr = -0.293

	// Intensity increase for an ALL-CAPS word among mixed-case text.
	capsIncr = 0.733

	negationScalar = -0.74

	// Normalization constant approximating the max expected raw sum.
	alpha = 15

	exclamationIncr = 0.292
	questionIncr    = 0.18
	maxQuestionIncr = 0.96
)

var negations = map[string]struct{}{
	"aint": {}, "arent": {}, "cannot": {}, "cant": {}, "couldnt": {}, "darent": {}, "didnt": {}, "doesnt": {},
	"ain't": {}, "aren't": {}, "can't": {}, "couldn't": {}, "daren't": {}, "didn't": {}, "doesn't": {},
	"dont": {}, "hadnt": {}, "hasnt": {}, "havent": {}, "isnt": {}, "mightnt": {}, "mustnt": {}, "neither": {},
	"don't": {}, "hadn't": {}, "hasn't": {}, "haven't": {}, "isn't": {}, "mightn't": {}, "mustn't": {},
	"neednt": {}, "needn't": {}, "never": {}, "none": {}, "nope": {}, "nor": {}, "not": {}, "nothing": {}, "nowhere": {},
	"oughtnt": {}, "shant": {}, "shouldnt": {}, "wasnt": {}, "werent": {},
	"oughtn't": {}, "shan't": {}, "shouldn't": {}, "wasn't": {}, "weren't": {},
	"without": {}, "wont": {}, "wouldnt": {}, "won't": {}, "wouldn't": {}, "rarely": {}, "seldom": {}, "despite": {},
}

var boosters = map[string]float64{
	"absolutely": boosterIncr, "amazingly": boosterIncr, "awfully": boosterIncr, "completely": boosterIncr,
	"considerably": boosterIncr, "decidedly": boosterIncr, "deeply": boosterIncr, "enormously": boosterIncr,
	"entirely": boosterIncr, "especially": boosterIncr, "exceptionally": boosterIncr, "extremely": boosterIncr,
	"fabulously": boosterIncr, "fully": boosterIncr, "greatly": boosterIncr, "highly": boosterIncr,
	"hugely": boosterIncr, "incredibly": boosterIncr, "intensely": boosterIncr, "majorly": boosterIncr,
	"more": boosterIncr, "most": boosterIncr, "particularly": boosterIncr, "purely": boosterIncr,
	"quite": boosterIncr, "really": boosterIncr, "remarkably": boosterIncr, "so": boosterIncr,
	"substantially": boosterIncr, "thoroughly": boosterIncr, "totally": boosterIncr, "tremendously": boosterIncr,
	"unbelievably": boosterIncr, "unusually": boosterIncr, "utterly": boosterIncr, "very": boosterIncr,
	"almost": boosterDecr, "barely": boosterDecr, "hardly": boosterDecr, "kinda": boosterDecr,
	"less": boosterDecr, "little": boosterDecr, "marginally": boosterDecr, "occasionally": boosterDecr,
	"partly": boosterDecr, "scarcely": boosterDecr, "slightly": boosterDecr, "somewhat": boosterDecr,
	"sorta": boosterDecr,
}

// ValenceScores is the full breakdown produced by ValenceAnalyzer.
type ValenceScores struct {
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

// ValenceAnalyzer scores text with a valence-aware lexicon. It understands
// boosters and dampeners, ALL-CAPS emphasis, negation, contrastive "but"
// and punctuation emphasis, and normalizes the result into a compound score
// in [-1, 1].
type ValenceAnalyzer struct {
	lexicon map[string]float64
}

// NewValenceAnalyzer creates an analyzer backed by the embedded lexicon.
func NewValenceAnalyzer() (*ValenceAnalyzer, error) {
	lex, err := loadValence()
	if err != nil {
		return nil, err
	}
	return NewValenceAnalyzerWithLexicon(lex), nil
}

// NewValenceAnalyzerWithLexicon creates an analyzer over a caller-supplied lexicon.
func NewValenceAnalyzerWithLexicon(lexicon map[string]float64) *ValenceAnalyzer {
	return &ValenceAnalyzer{lexicon: lexicon}
}

// Polarity returns the compound score of text.
func (a *ValenceAnalyzer) Polarity(_ context.Context, text string) (float64, error) {
	return a.Scores(text).Compound, nil
}

// Scores returns the positive, negative, neutral and compound scores of text.
func (a *ValenceAnalyzer) Scores(text string) ValenceScores {
	tokens := valenceTokens(text)
	if len(tokens) == 0 {
		return ValenceScores{}
	}

	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}
	capDiff := allCapDifferential(tokens)

	sentiments := make([]float64, 0, len(tokens))
	for i, tok := range tokens {
		if _, ok := boosters[lower[i]]; ok {
			sentiments = append(sentiments, 0)
			continue
		}
		if lower[i] == "kind" && i < len(tokens)-1 && lower[i+1] == "of" {
			sentiments = append(sentiments, 0)
			continue
		}
		sentiments = append(sentiments, a.valence(tok, tokens, lower, i, capDiff))
	}

	butCheck(lower, sentiments)
	return scoreValence(sentiments, text)
}

func (a *ValenceAnalyzer) valence(tok string, tokens, lower []string, i int, capDiff bool) float64 {
	v, ok := a.lexicon[lower[i]]
	if !ok {
		return 0
	}

	if capDiff && isAllCaps(tok) {
		if v > 0 {
			v += capsIncr
		} else {
			v -= capsIncr
		}
	}

	for start := 0; start <= 2; start++ {
		if i <= start {
			continue
		}
		prev := i - (start + 1)
		if _, ok := a.lexicon[lower[prev]]; ok {
			continue
		}
		s := scalarIncDec(tokens[prev], lower[prev], v, capDiff)
		switch {
		case start == 1 && s != 0:
			s *= 0.95
		case start == 2 && s != 0:
			s *= 0.9
		}
		v += s
		v = negationCheck(v, lower, start, i)
	}

	return a.leastCheck(v, lower, i)
}

func (a *ValenceAnalyzer) leastCheck(v float64, lower []string, i int) float64 {
	if i == 0 || lower[i-1] != "least" {
		return v
	}
	if _, ok := a.lexicon["least"]; ok {
		return v
	}
	if i > 1 && (lower[i-2] == "at" || lower[i-2] == "very") {
		return v
	}
	return v * negationScalar
}

func scalarIncDec(word, lower string, v float64, capDiff bool) float64 {
	boost, ok := boosters[lower]
	if !ok {
		return 0
	}
	if v < 0 {
		boost *= -1
	}
	if capDiff && isAllCaps(word) {
		if v > 0 {
			boost += capsIncr
		} else {
			boost -= capsIncr
		}
	}
	return boost
}

func negationCheck(v float64, lower []string, start, i int) float64 {
	switch start {
	case 0:
		if negated(lower[i-1]) {
			v *= negationScalar
		}
	case 1:
		switch {
		case lower[i-2] == "never" && (lower[i-1] == "so" || lower[i-1] == "this"):
			v *= 1.25
		case lower[i-2] == "without" && lower[i-1] == "doubt":
		case negated(lower[i-2]):
			v *= negationScalar
		}
	case 2:
		switch {
		case lower[i-3] == "never" && (lower[i-2] == "so" || lower[i-2] == "this" || lower[i-1] == "so" || lower[i-1] == "this"):
			v *= 1.25
		case lower[i-3] == "without" && (lower[i-2] == "doubt" || lower[i-1] == "doubt"):
		case negated(lower[i-3]):
			v *= negationScalar
		}
	}
	return v
}

func negated(word string) bool {
	if _, ok := negations[word]; ok {
		return true
	}
	return strings.Contains(word, "n't")
}

// butCheck dampens sentiment before the first "but" and amplifies it after.
func butCheck(lower []string, sentiments []float64) {
	bi := -1
	for i, w := range lower {
		if w == "but" {
			bi = i
			break
		}
	}
	if bi < 0 {
		return
	}
	for i := range sentiments {
		switch {
		case i < bi:
			sentiments[i] *= 0.5
		case i > bi:
			sentiments[i] *= 1.5
		}
	}
}

func scoreValence(sentiments []float64, text string) ValenceScores {
	if len(sentiments) == 0 {
		return ValenceScores{}
	}

	sum := floats.Sum(sentiments)
	emphasis := punctuationEmphasis(text)
	switch {
	case sum > 0:
		sum += emphasis
	case sum < 0:
		sum -= emphasis
	}
	compound := normalize(sum)

	var posSum, negSum float64
	var neuCount int
	for _, s := range sentiments {
		switch {
		case s > 0:
			posSum += s + 1
		case s < 0:
			negSum += s - 1
		default:
			neuCount++
		}
	}
	switch {
	case posSum > math.Abs(negSum):
		posSum += emphasis
	case posSum < math.Abs(negSum):
		negSum -= emphasis
	}

	total := posSum + math.Abs(negSum) + float64(neuCount)
	return ValenceScores{
		Positive: scalar.Round(math.Abs(posSum/total), 3),
		Negative: scalar.Round(math.Abs(negSum/total), 3),
		Neutral:  scalar.Round(math.Abs(float64(neuCount)/total), 3),
		Compound: scalar.Round(compound, 4),
	}
}

func punctuationEmphasis(text string) float64 {
	ep := min(strings.Count(text, "!"), 4)
	emphasis := float64(ep) * exclamationIncr

	qm := strings.Count(text, "?")
	switch {
	case qm > 3:
		emphasis += maxQuestionIncr
	case qm > 1:
		emphasis += float64(qm) * questionIncr
	}
	return emphasis
}

func normalize(score float64) float64 {
	n := score / math.Sqrt(score*score+alpha)
	return math.Max(-1, math.Min(1, n))
}

// valenceTokens splits on whitespace, strips surrounding punctuation and
// drops single-character tokens, keeping contractions intact.
func valenceTokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if len([]rune(t)) > 1 {
			out = append(out, t)
		}
	}
	return out
}

func allCapDifferential(tokens []string) bool {
	caps := 0
	for _, t := range tokens {
		if isAllCaps(t) {
			caps++
		}
	}
	diff := len(tokens) - caps
	return diff > 0 && diff < len(tokens)
}

func isAllCaps(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
