package attest

import (
	"strings"
	"unicode/utf8"
)

// minSpanLen is the shortest span (exclusive) accepted as a claim;
// anything at or below it is treated as a fragment.
const minSpanLen = 30

// SplitSpans splits text into sentence-like spans: a split happens after
// sentence-terminal punctuation followed by whitespace. Fragments of 30
// characters or fewer are discarded.
func SplitSpans(text string) []string {
	var spans []string
	var current strings.Builder

	flush := func() {
		span := strings.TrimSpace(current.String())
		if utf8.RuneCountInString(span) > minSpanLen {
			spans = append(spans, span)
		}
		current.Reset()
	}

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		current.WriteRune(r)
		if isTerminal(r) && i+1 < len(runes) && isSpace(runes[i+1]) {
			flush()
		}
	}
	flush()

	return spans
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// ensureTerminal normalises a claim so it reads as a full sentence.
func ensureTerminal(claim string) string {
	if strings.HasSuffix(claim, ".") || strings.HasSuffix(claim, "!") || strings.HasSuffix(claim, "?") {
		return claim
	}
	return claim + "."
}
