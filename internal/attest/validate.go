package attest

import (
	"strings"

	"github.com/Donmaston09/crts/internal/model"
)

// MaxClaims caps the attestation map per query.
const MaxClaims = 6

// Validate filters candidate attestations down to the ones the system
// can stand behind: the cited document must exist in the input set and
// source_text must be a literal substring of its abstract. Failing
// candidates are dropped, never repaired or fuzzy-matched. Claims are
// deduplicated by text and capped at MaxClaims, in candidate order.
func Validate(candidates model.Attestations, docs []model.Document) model.Attestations {
	byID := make(map[string]model.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	validated := model.Attestations{}
	for _, cand := range candidates {
		claim := strings.TrimSpace(cand.Claim)
		id := strings.TrimSpace(cand.DocumentID)
		src := strings.TrimSpace(cand.SourceText)
		if claim == "" || id == "" || src == "" {
			continue
		}

		doc, ok := byID[id]
		if !ok {
			continue
		}
		if !strings.Contains(doc.Abstract, src) {
			continue
		}

		// The title comes from the document, not the candidate: the
		// backend is only trusted for what was just verified.
		validated.Add(model.AttestationRecord{
			Claim:         ensureTerminal(claim),
			DocumentID:    id,
			SourceText:    src,
			DocumentTitle: doc.Title,
		})
		if len(validated) == MaxClaims {
			break
		}
	}

	return validated
}
