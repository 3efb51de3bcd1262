package score

import (
	"regexp"
	"strings"
)

// riskTerms flags sentences that disclose a safety signal to the reader.
var riskTerms = regexp.MustCompile(`(?i)(risk|toxicit|contraindicat|adverse|harm|warning|black box)`)

// EstimateSurfacedRisks counts synthesis sentences that mention a risk
// term, capped at the number of detected risk documents. With no
// detected risk there is nothing to surface and the count is 0.
func EstimateSurfacedRisks(synthesis string, detectedRisks int) int {
	if synthesis == "" || detectedRisks <= 0 {
		return 0
	}
	count := 0
	for _, sent := range splitSentences(synthesis) {
		if riskTerms.MatchString(sent) {
			count++
		}
	}
	if count > detectedRisks {
		return detectedRisks
	}
	return count
}

// splitSentences breaks text after terminal punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var (
		sents []string
		start int
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' || runes[i+1] == '\r') {
			sents = append(sents, strings.TrimSpace(string(runes[start:i+1])))
			for i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t' || runes[i+1] == '\n' || runes[i+1] == '\r') {
				i++
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			sents = append(sents, tail)
		}
	}
	return sents
}
