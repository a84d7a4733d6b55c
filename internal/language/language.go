package language

import (
	"errors"
	"fmt"
	"strings"
)

// Language is a display name understood by the translation backends
type Language string

const (
	Auto     Language = "Auto"
	English  Language = "English"
	Japanese Language = "Japanese"
	Chinese  Language = "Chinese"
	Korean   Language = "Korean"
	Spanish  Language = "Spanish"
	French   Language = "French"
	German   Language = "German"
)

// DefaultSource replaces Auto when a request is sent to a backend
const DefaultSource = English

var (
	// ErrUnknown is returned when a language name is not supported
	ErrUnknown = errors.New("unknown language")
	// ErrAutoTarget is returned when Auto is used as a target language
	ErrAutoTarget = errors.New("target language cannot be Auto")
)

var all = []Language{Auto, English, Japanese, Chinese, Korean, Spanish, French, German}

// All returns every supported language, Auto first
func All() []Language {
	return append([]Language(nil), all...)
}

// Targets returns the languages that can be translated into
func Targets() []Language {
	return append([]Language(nil), all[1:]...)
}

// Parse returns the canonical language for a case-insensitive name
func Parse(s string) (Language, error) {
	name := strings.TrimSpace(s)
	for _, l := range all {
		if strings.EqualFold(string(l), name) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// Strings converts languages to plain strings, e.g. for select widgets
func Strings(langs []Language) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}

func (l Language) String() string {
	return string(l)
}

// Pair is a source and target language
type Pair struct {
	From Language
	To   Language
}

// DefaultPair is what a fresh session starts with
func DefaultPair() Pair {
	return Pair{From: Auto, To: Japanese}
}

// NewPair parses and validates a pair of language names
func NewPair(from, to string) (Pair, error) {
	f, err := Parse(from)
	if err != nil {
		return Pair{}, fmt.Errorf("source: %w", err)
	}
	t, err := Parse(to)
	if err != nil {
		return Pair{}, fmt.Errorf("target: %w", err)
	}
	if t == Auto {
		return Pair{}, ErrAutoTarget
	}
	return Pair{From: f, To: t}, nil
}

// Canonical returns the pair with both names spelled as the constants above.
// It fails like Validate.
func (p Pair) Canonical() (Pair, error) {
	return NewPair(string(p.From), string(p.To))
}

// Validate checks that both languages are known and the target is not Auto,
// in any spelling
func (p Pair) Validate() error {
	_, err := p.Canonical()
	return err
}

// EffectiveFrom is the source language sent to a backend. Backends do not
// detect languages, so Auto is replaced by DefaultSource.
func (p Pair) EffectiveFrom() Language {
	if p.From == Auto {
		return DefaultSource
	}
	return p.From
}

// Swapped returns the inverse pair. ok is false when From is Auto, since
// Auto has no inverse.
func (p Pair) Swapped() (swapped Pair, ok bool) {
	if p.From == Auto {
		return p, false
	}
	return Pair{From: p.To, To: p.From}, true
}

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.From, p.To)
}
