// Package words computes word and phrase frequencies over review text.
package words

import (
	"regexp"
	"sort"
	"strings"
)

// Tokens are runs of at least two word characters.
var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

// Term is one word or phrase with its number of occurrences.
type Term struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// Tokenize lower-cases text, splits it into tokens and removes English stop words.
func Tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

// NGrams joins every run of n consecutive tokens with a single space.
func NGrams(tokens []string, n int) []string {
	if n <= 1 {
		return tokens
	}
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// Count tallies the n-grams of every text. N-grams never span two texts.
func Count(texts []string, n int) map[string]int {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, g := range NGrams(Tokenize(text), n) {
			counts[g]++
		}
	}
	return counts
}

// Top returns the limit most frequent n-grams across texts, by count
// descending and then alphabetically. A limit <= 0 returns every term.
func Top(texts []string, n, limit int) []Term {
	return TopOf(Count(texts, n), limit)
}

// TopOf ranks a frequency table.
func TopOf(counts map[string]int, limit int) []Term {
	terms := make([]Term, 0, len(counts))
	for t, c := range counts {
		terms = append(terms, Term{Term: t, Count: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
