// Package score aggregates the pipeline's verification signals into the
// Clinical RAG Transparency Score (CRTS). The aggregator is a pure
// function of its inputs: no clock reads, no hidden state, so the same
// report always yields the same score.
package score

import (
	"math"

	"github.com/Donmaston09/crts/internal/model"
)

// Audit latency proxies in seconds per claim. Sentence-level source
// quotes make manual audit fast; anything coarser is assumed slow.
const (
	latencyGranular = 2.0
	latencyCoarse   = 5.0
)

// Compute derives the CRTS record:
//
//	SF  = grounded claims / total claims (0 when there are no claims)
//	CRR = min(1, surfaced / detected risk documents), or 1 when no
//	      risk documents were detected
//	AR* = min(1, k/L) with L picked from attestation granularity
//	GA  = guideline-aligned claims / total claims
//
// Components and the composite are rounded to two decimals; the
// composite is computed from the unrounded components.
func Compute(
	attestations model.Attestations,
	conflict model.ConflictSummary,
	alignment model.Alignment,
	surfacedRisks int,
	kSeconds float64,
	weights model.Weights,
) model.CRTSRecord {
	nClaims := len(attestations)

	sf := 0.0
	if nClaims > 0 {
		grounded := 0
		for _, rec := range attestations {
			if rec.Grounded() {
				grounded++
			}
		}
		sf = float64(grounded) / float64(nClaims)
	}

	crr := 1.0
	if conflict.RiskCount > 0 {
		crr = math.Min(1.0, math.Max(0.0, float64(surfacedRisks)/float64(conflict.RiskCount)))
	}

	latency := latencyCoarse
	if attestations.Granular() {
		latency = latencyGranular
	}
	ar := math.Min(1.0, kSeconds/latency)

	ga := 0.0
	if nClaims > 0 && len(alignment) > 0 {
		matched := 0
		for _, res := range alignment {
			if res != nil {
				matched++
			}
		}
		ga = float64(matched) / float64(nClaims)
	}

	w := weights.Normalised()
	composite := w.Alpha*sf + w.Beta*crr + w.Gamma*ar + w.Delta*ga

	return model.CRTSRecord{
		SF:      round2(sf),
		CRR:     round2(crr),
		AR:      round2(ar),
		GA:      round2(ga),
		L:       latency,
		Weights: w,
		CRTS:    round2(composite),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
