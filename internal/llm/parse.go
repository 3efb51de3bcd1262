package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// payload is the JSON contract the prompt asks for. Attestations may
// arrive either as the requested array or as a claim-keyed object (some
// models insist on the latter); both are accepted.
type payload struct {
	Synthesis    string          `json:"synthesis"`
	Attestations json.RawMessage `json:"attestations"`
}

type payloadRecord struct {
	DocumentID    string `json:"document_id"`
	SourceText    string `json:"source_text"`
	DocumentTitle string `json:"document_title"`
}

// ParsePayload parses a raw backend response into a synthesis and
// unvalidated candidates. Markdown code fences are stripped first; any
// other deviation from the contract is an error for the caller to mask
// with the deterministic fallback.
func ParsePayload(raw string) (string, []Candidate, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var p payload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return "", nil, fmt.Errorf("malformed payload: %w", err)
	}

	synthesis := strings.TrimSpace(p.Synthesis)
	if len(p.Attestations) == 0 {
		return synthesis, nil, nil
	}

	// Preferred shape: array of records.
	var arr []Candidate
	if err := json.Unmarshal(p.Attestations, &arr); err == nil {
		return synthesis, arr, nil
	}

	// Fallback shape: {claim: record}. Keys are sorted so the claim cap
	// downstream stays deterministic.
	var obj map[string]payloadRecord
	if err := json.Unmarshal(p.Attestations, &obj); err != nil {
		return "", nil, fmt.Errorf("attestations are neither an array nor an object: %w", err)
	}
	claims := make([]string, 0, len(obj))
	for claim := range obj {
		claims = append(claims, claim)
	}
	sort.Strings(claims)

	candidates := make([]Candidate, 0, len(obj))
	for _, claim := range claims {
		rec := obj[claim]
		candidates = append(candidates, Candidate{
			Claim:         claim,
			DocumentID:    rec.DocumentID,
			SourceText:    rec.SourceText,
			DocumentTitle: rec.DocumentTitle,
		})
	}
	return synthesis, candidates, nil
}
