// Package lexicon provides the built-in, dictionary-driven scorers used to
// label review text: a pattern polarity analyzer, a valence-aware compound
// analyzer and a Plutchik emotion lexicon.
package lexicon

import (
	"bufio"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/*.txt
var dataFS embed.FS

// Entry is one row of the pattern polarity lexicon.
type Entry struct {
	Polarity  float64
	Intensity float64
}

// IsModifier reports whether the entry only scales the next assessed word.
func (e Entry) IsModifier() bool {
	return e.Polarity == 0 && e.Intensity != 1
}

var (
	loadValence  = sync.OnceValues(func() (map[string]float64, error) { return ParseValence(mustRead("valence.txt")) })
	loadPolarity = sync.OnceValues(func() (map[string]Entry, error) { return ParsePolarity(mustRead("polarity.txt")) })
	loadEmotions = sync.OnceValues(func() (map[string][]string, error) { return ParseEmotions(mustRead("emotions.txt")) })
)

func mustRead(name string) string {
	data, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded %s missing: %v", name, err))
	}
	return string(data)
}

// ParseValence parses "word valence" lines.
func ParseValence(data string) (map[string]float64, error) {
	out := make(map[string]float64)
	err := eachRow(data, 2, func(line int, fields []string) error {
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid valence %q: %w", line, fields[1], err)
		}
		out[strings.ToLower(fields[0])] = v
		return nil
	})
	return out, err
}

// ParsePolarity parses "word polarity intensity" lines.
func ParsePolarity(data string) (map[string]Entry, error) {
	out := make(map[string]Entry)
	err := eachRow(data, 3, func(line int, fields []string) error {
		p, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid polarity %q: %w", line, fields[1], err)
		}
		i, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid intensity %q: %w", line, fields[2], err)
		}
		if p < -1 || p > 1 {
			return fmt.Errorf("line %d: polarity %v out of range", line, p)
		}
		out[strings.ToLower(fields[0])] = Entry{Polarity: p, Intensity: i}
		return nil
	})
	return out, err
}

// ParseEmotions parses "word emotion,emotion" lines. Only the eight Plutchik
// emotions are accepted.
func ParseEmotions(data string) (map[string][]string, error) {
	out := make(map[string][]string)
	err := eachRow(data, 2, func(line int, fields []string) error {
		labels := strings.Split(fields[1], ",")
		for i, l := range labels {
			l = strings.ToLower(strings.TrimSpace(l))
			if !isEmotion(l) {
				return fmt.Errorf("line %d: unknown emotion %q", line, l)
			}
			labels[i] = l
		}
		out[strings.ToLower(fields[0])] = labels
		return nil
	})
	return out, err
}

func eachRow(data string, fields int, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(strings.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != fields {
			return fmt.Errorf("line %d: expected %d fields, got %d", line, fields, len(parts))
		}
		if err := fn(line, parts); err != nil {
			return err
		}
	}
	return scanner.Err()
}
