package llm

import (
	"strings"
	"unicode/utf8"

	"github.com/Donmaston09/crts/internal/model"
)

const (
	// promptDocLimit bounds the context to the top prioritised documents.
	promptDocLimit = 3
	// promptAbstractBudget is the per-abstract character budget.
	promptAbstractBudget = 900
)

// BuildPrompt constructs the synthesis prompt. The contract is strict:
// the backend must return JSON only, and every claim must cite a document
// id from the context plus the exact source sentence.
func BuildPrompt(query string, docs []model.Document) string {
	var context []string
	for i, d := range docs {
		if i >= promptDocLimit {
			break
		}
		context = append(context,
			"ID:"+d.ID+"\nTitle:"+d.Title+"\nAbstract:"+truncate(d.Abstract, promptAbstractBudget))
	}

	lines := []string{
		"You are producing *auditable* outputs for clinical evidence synthesis.",
		"Query: " + query,
		"Extract 4-6 atomic claims (individual clinical facts) from the abstracts below.",
		"For each claim, provide the exact sentence from the source abstract as 'source_text' and the correct 'document_id'.",
		"Do not paraphrase source_text; it must be copied verbatim.",
		"Return ONLY valid JSON (no markdown) with keys: synthesis, attestations.",
		"Example schema:",
		"{",
		`  "synthesis": "One or two sentences summarising the overall picture.",`,
		`  "attestations": [`,
		`    {"claim": "<atomic claim text>", "document_id": "<id>", "source_text": "<exact sentence>", "document_title": "<title>"}`,
		"  ]",
		"}",
		"Context:",
		strings.Join(context, "\n"),
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
