package conflict

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon is a named, versioned group of patterns. Tagging is kept
// lexical and deterministic so the conflict signal feeding the trust
// score can always be re-derived from the same inputs.
type Lexicon struct {
	Name     string
	Version  string
	Patterns []string

	re *regexp.Regexp
}

// NewLexicon compiles a case-insensitive alternation over the patterns.
func NewLexicon(name, version string, patterns []string) *Lexicon {
	return &Lexicon{
		Name:     name,
		Version:  version,
		Patterns: patterns,
		re:       regexp.MustCompile("(?i)" + strings.Join(patterns, "|")),
	}
}

// MatchTerms returns the deduplicated literal matches in text, sorted for
// stable output.
func (l *Lexicon) MatchTerms(text string) []string {
	hits := l.re.FindAllString(text, -1)
	if len(hits) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(hits))
	var terms []string
	for _, h := range hits {
		h = strings.ToLower(h)
		if !seen[h] {
			seen[h] = true
			terms = append(terms, h)
		}
	}
	sort.Strings(terms)
	return terms
}

// Contains reports whether the pattern is part of the lexicon.
func (l *Lexicon) Contains(pattern string) bool {
	for _, p := range l.Patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// Built-in lexicons. The two groups are disjoint: no pattern may appear
// in both, or a single term would inflate both aggregate counts.
var (
	Supportive = NewLexicon("supportive", "v1", []string{
		`improv(e|ed|ement)`,
		`benefit(s|ed)?`,
		`effective|efficacy`,
		`survival advantage`,
		`response rate`,
		`superior(ity)?`,
	})

	Risk = NewLexicon("risk", "v1", []string{
		`toxicit(y|ies)`,
		`adverse( event|s)?`,
		`risk(s)?`,
		`harm(s|ful)?`,
		`side effect(s)?`,
		`complication(s)?`,
		`safety concern(s)?`,
		`contraindicat(ed|ion)`,
	})
)
