package score

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Donmaston09/crts/internal/model"
)

func granularAttestations(n int) model.Attestations {
	out := model.Attestations{}
	for i := 0; i < n; i++ {
		out = append(out, model.AttestationRecord{
			Claim:      string(rune('a' + i)),
			DocumentID: "1",
			SourceText: "verbatim source sentence",
		})
	}
	return out
}

func TestCompute_AllComponentsPerfect(t *testing.T) {
	atts := granularAttestations(2)
	alignment := model.Alignment{
		atts[0].Claim: {Source: "NICE", Score: 0.8},
		atts[1].Claim: {Source: "NICE", Score: 0.6},
	}
	conflict := model.ConflictSummary{Detected: true, RiskCount: 2}

	rec := Compute(atts, conflict, alignment, 2, 5.0, model.DefaultWeights())

	want := model.CRTSRecord{
		SF:      1.0,
		CRR:     1.0,
		AR:      1.0,
		GA:      1.0,
		L:       2.0,
		Weights: model.DefaultWeights(),
		CRTS:    1.0,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("CRTS mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_NoClaims(t *testing.T) {
	rec := Compute(nil, model.ConflictSummary{}, nil, 0, 5.0, model.DefaultWeights())

	if rec.SF != 0 || rec.GA != 0 {
		t.Errorf("Expected SF and GA zero with no claims, got SF=%v GA=%v", rec.SF, rec.GA)
	}
	if rec.CRR != 1.0 {
		t.Errorf("Expected CRR 1.0 with no detected risk, got %v", rec.CRR)
	}
	if rec.L != 5.0 {
		t.Errorf("Expected coarse latency with no granular records, got %v", rec.L)
	}
	// 0.30*0 + 0.30*1 + 0.20*1 + 0.20*0
	if rec.CRTS != 0.5 {
		t.Errorf("Expected composite 0.5, got %v", rec.CRTS)
	}
}

func TestCompute_ConflictReportingRate(t *testing.T) {
	atts := granularAttestations(1)
	conflict := model.ConflictSummary{Detected: true, RiskCount: 4}

	rec := Compute(atts, conflict, nil, 1, 5.0, model.DefaultWeights())
	if rec.CRR != 0.25 {
		t.Errorf("Expected CRR 1/4, got %v", rec.CRR)
	}

	// Surfacing more than detected is capped, not rewarded.
	rec = Compute(atts, conflict, nil, 9, 5.0, model.DefaultWeights())
	if rec.CRR != 1.0 {
		t.Errorf("Expected CRR capped at 1.0, got %v", rec.CRR)
	}
}

func TestCompute_AuditResponsiveness(t *testing.T) {
	coarse := model.Attestations{{Claim: "c", DocumentID: "1"}}

	rec := Compute(coarse, model.ConflictSummary{}, nil, 0, 2.0, model.DefaultWeights())
	if rec.L != 5.0 || rec.AR != 0.4 {
		t.Errorf("Expected L=5 AR=0.4 for coarse records at k=2, got L=%v AR=%v", rec.L, rec.AR)
	}

	rec = Compute(granularAttestations(1), model.ConflictSummary{}, nil, 0, 2.0, model.DefaultWeights())
	if rec.L != 2.0 || rec.AR != 1.0 {
		t.Errorf("Expected L=2 AR=1.0 for granular records at k=2, got L=%v AR=%v", rec.L, rec.AR)
	}
}

func TestCompute_WeightsNormalised(t *testing.T) {
	atts := granularAttestations(1)

	rec := Compute(atts, model.ConflictSummary{}, nil, 0, 5.0, model.Weights{Alpha: 3, Beta: 3, Gamma: 2, Delta: 2})
	if rec.Weights != model.DefaultWeights() {
		t.Errorf("Expected weights rescaled to the unit simplex, got %+v", rec.Weights)
	}

	rec = Compute(atts, model.ConflictSummary{}, nil, 0, 5.0, model.Weights{})
	if rec.Weights != model.DefaultWeights() {
		t.Errorf("Expected zero weights replaced by defaults, got %+v", rec.Weights)
	}
}

func TestCompute_CompositeFromUnroundedComponents(t *testing.T) {
	// 1 grounded of 3 claims: SF = 0.333..., rounded 0.33 in the record
	// but the composite must use the raw third.
	atts := model.Attestations{
		{Claim: "a", DocumentID: "1", SourceText: "s"},
		{Claim: "b", DocumentID: "1"},
		{Claim: "c", DocumentID: "1"},
	}

	rec := Compute(atts, model.ConflictSummary{}, nil, 0, 5.0, model.Weights{Alpha: 1})
	if rec.SF != 0.33 {
		t.Errorf("Expected SF rounded to 0.33, got %v", rec.SF)
	}
	if rec.CRTS != 0.33 {
		t.Errorf("Expected composite 0.33 under alpha-only weights, got %v", rec.CRTS)
	}
}

func TestEstimateSurfacedRisks(t *testing.T) {
	synthesis := "The therapy improved outcomes. Toxicity was observed in the elderly. " +
		"Adverse events led to discontinuation. Follow-up is ongoing."

	if got := EstimateSurfacedRisks(synthesis, 5); got != 2 {
		t.Errorf("Expected 2 risk sentences, got %d", got)
	}
	// Capped at the number of detected risk documents.
	if got := EstimateSurfacedRisks(synthesis, 1); got != 1 {
		t.Errorf("Expected cap at detected count, got %d", got)
	}
	if got := EstimateSurfacedRisks(synthesis, 0); got != 0 {
		t.Errorf("Expected 0 with no detected risk, got %d", got)
	}
	if got := EstimateSurfacedRisks("", 3); got != 0 {
		t.Errorf("Expected 0 for empty synthesis, got %d", got)
	}
	if got := EstimateSurfacedRisks("Black box warning applies here", 3); got != 1 {
		t.Errorf("Expected case-insensitive match without terminal punctuation, got %d", got)
	}
}
