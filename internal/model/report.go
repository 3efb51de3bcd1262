package model

import "time"

// Report is the complete result of scoring one query.
type Report struct {
	Query       string    `json:"query"`
	GeneratedAt time.Time `json:"generated_at"`

	Documents []RankedDocument `json:"documents"` // Prioritised order
	Conflict  ConflictSummary  `json:"conflict"`

	Synthesis    string       `json:"synthesis"`
	Attestations Attestations `json:"attestations"`

	Alignment       Alignment `json:"alignment"`
	GuidelineChunks int       `json:"guideline_chunks"` // Chunks supplied; 0 means alignment was unavailable

	Network []NetworkEdge `json:"network,omitempty"` // Similarity edges for the external renderer

	SurfacedRisks int        `json:"surfaced_risks"`
	CRTS          CRTSRecord `json:"crts"`

	Warnings   []string   `json:"warnings,omitempty"` // Non-fatal advisories (e.g., backend fallback)
	Principles Principles `json:"principles"`
}

// RankedDocument pairs a document with its priority score. The input
// documents themselves are never mutated.
type RankedDocument struct {
	Document Document `json:"document"`
	Score    float64  `json:"priority_score"`
}

// NetworkEdge is one similarity edge between two documents, consumed by
// the out-of-scope graph renderer.
type NetworkEdge struct {
	SourceID   string  `json:"source_id"`
	TargetID   string  `json:"target_id"`
	Similarity float64 `json:"similarity"`
}

// Principles documents the guarantees this report was produced under.
type Principles struct {
	NonNormative bool `json:"non_normative"` // Measures traceability, not clinical correctness
	Transparent  bool `json:"transparent"`   // Every component re-derivable from recorded inputs
	Reproducible bool `json:"reproducible"`  // Deterministic given the same documents and guidelines
}

// DefaultPrinciples returns the standard guarantees.
func DefaultPrinciples() Principles {
	return Principles{
		NonNormative: true,
		Transparent:  true,
		Reproducible: true,
	}
}
