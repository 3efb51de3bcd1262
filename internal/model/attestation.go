package model

import "strings"

// AttestationRecord pins one claim to an exact span of source text.
// SourceText must be a literal substring of the cited document's abstract;
// this is the system's core trust guarantee and is checked, not assumed,
// whenever the record originates from a generative backend.
type AttestationRecord struct {
	Claim         string `json:"claim"`
	DocumentID    string `json:"document_id"`
	SourceText    string `json:"source_text"`
	DocumentTitle string `json:"document_title,omitempty"`
}

// Grounded reports whether the record carries a usable citation.
func (r AttestationRecord) Grounded() bool {
	return r.DocumentID != "" && r.SourceText != ""
}

// Attestations is an ordered claim→record map. Insertion order is
// preserved so claim caps and downstream iteration stay deterministic.
type Attestations []AttestationRecord

// Add appends a record unless its claim text is already present.
// Dedupe is by exact text after trimming; case is significant.
// Returns true if the record was accepted.
func (a *Attestations) Add(rec AttestationRecord) bool {
	key := strings.TrimSpace(rec.Claim)
	for _, existing := range *a {
		if strings.TrimSpace(existing.Claim) == key {
			return false
		}
	}
	*a = append(*a, rec)
	return true
}

// Claims returns claim texts in insertion order.
func (a Attestations) Claims() []string {
	claims := make([]string, 0, len(a))
	for _, rec := range a {
		claims = append(claims, rec.Claim)
	}
	return claims
}

// Granular reports whether at least one record carries sentence-level
// source text. Drives the audit latency proxy L.
func (a Attestations) Granular() bool {
	for _, rec := range a {
		if rec.SourceText != "" {
			return true
		}
	}
	return false
}
