package attest

import (
	"context"
	"fmt"

	"github.com/Donmaston09/crts/internal/llm"
	"github.com/Donmaston09/crts/internal/model"
)

// Result is the outcome of attestation generation.
type Result struct {
	Synthesis    string
	Attestations model.Attestations
	Source       string   // Which claim source produced the output
	Warnings     []string // Non-fatal advisories (backend failures, fallbacks)
}

// Generator applies the fixed two-path policy: try the generative source
// when one is configured, validate everything, and fall back to
// deterministic extraction on any error or empty validated result.
type Generator struct {
	generative Source // nil when no backend is configured
	extractive Source
}

// NewGenerator creates a generator. Pass nil to run extraction-only.
func NewGenerator(generative Source) *Generator {
	return &Generator{
		generative: generative,
		extractive: NewExtractive(),
	}
}

// Generate produces a synthesis and validated attestation map. It cannot
// fail: every backend error is converted into a warning plus the
// deterministic fallback.
func (g *Generator) Generate(ctx context.Context, query string, ranked []model.RankedDocument) Result {
	docs := Documents(ranked)
	var warnings []string

	if g.generative != nil {
		synthesis, cands, err := g.generative.Generate(ctx, query, ranked)
		switch {
		case err != nil && llm.IsQuotaError(err):
			warnings = append(warnings, "generative backend quota reached; using deterministic fallback")
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("generative backend error: %v; using deterministic fallback", err))
		default:
			validated := Validate(cands, docs)
			if len(validated) > 0 {
				return Result{
					Synthesis:    synthesis,
					Attestations: validated,
					Source:       g.generative.Name(),
					Warnings:     warnings,
				}
			}
			warnings = append(warnings, "generative backend returned no verifiable claims; using deterministic fallback")
		}
	}

	synthesis, cands, _ := g.extractive.Generate(ctx, query, ranked)
	return Result{
		Synthesis:    synthesis,
		Attestations: Validate(cands, docs),
		Source:       g.extractive.Name(),
		Warnings:     warnings,
	}
}
