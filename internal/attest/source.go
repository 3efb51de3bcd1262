// Package attest turns prioritised documents into a short synthesis plus
// a claim→source attestation map. Two claim sources exist: a generative
// backend and a deterministic extractor. Whichever one runs, every claim
// is validated against its cited abstract before acceptance, and the
// deterministic path is always available as a fallback: the pipeline
// must never surface ungrounded claims and never fail for backend
// reasons.
package attest

import (
	"context"

	"github.com/Donmaston09/crts/internal/model"
)

// Source produces a synthesis and candidate attestations for a query.
// Candidates from any source pass through Validate before they are
// surfaced; sources are not trusted to enforce the substring invariant
// themselves.
type Source interface {
	// Name identifies the source in reports and warnings
	Name() string

	// Generate produces a synthesis and candidate attestations from the
	// prioritised documents
	Generate(ctx context.Context, query string, ranked []model.RankedDocument) (string, model.Attestations, error)
}

// Documents unwraps a ranked sequence back to plain documents,
// preserving priority order.
func Documents(ranked []model.RankedDocument) []model.Document {
	docs := make([]model.Document, 0, len(ranked))
	for _, rd := range ranked {
		docs = append(docs, rd.Document)
	}
	return docs
}
