package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Donmaston09/crts/internal/model"
)

func testCorpus() []model.Document {
	return []model.Document{
		{
			ID:               "20",
			Title:            "Observational safety study",
			PublicationTypes: []string{"Observational Study"},
			Year:             "2018",
			Abstract: "Lactic acidosis risk appeared elevated among patients with renal impairment. " +
				"Careful monitoring of kidney function was recommended throughout therapy.",
		},
		{
			ID:               "10",
			Title:            "RCT of metformin",
			PublicationTypes: []string{"Randomized Controlled Trial"},
			Year:             "2023",
			Abstract: "Metformin improved glycemic control across the randomized cohort. " +
				"Gastrointestinal adverse events were reported in a minority of participants.",
		},
	}
}

func testGuidelines() []model.GuidelineChunk {
	return []model.GuidelineChunk{
		{
			Source: "NICE NG28",
			Page:   "14",
			Text:   "Metformin remains first line therapy for glycemic control in type 2 diabetes.",
			Hash:   "abc123",
		},
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(model.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestScore_EndToEnd(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Score(context.Background(), "metformin glycemic control", testCorpus(), testGuidelines())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	// The recent trial outranks the older observational study.
	if report.Documents[0].Document.ID != "10" {
		t.Errorf("Expected document 10 ranked first, got %s", report.Documents[0].Document.ID)
	}

	if !report.Conflict.Detected {
		t.Error("Expected a detected conflict: supportive and risk signals coexist")
	}
	if report.Conflict.SupportiveCount != 1 || report.Conflict.RiskCount != 2 {
		t.Errorf("Expected 1 supportive / 2 risk documents, got %d/%d",
			report.Conflict.SupportiveCount, report.Conflict.RiskCount)
	}

	// No backend configured: deterministic extraction, two spans per
	// document, every span verbatim.
	if !strings.HasSuffix(report.Synthesis, "(Deterministic Extraction)") {
		t.Errorf("Expected the deterministic marker, got %q", report.Synthesis)
	}
	if len(report.Attestations) != 4 {
		t.Fatalf("Expected 4 attestations, got %d", len(report.Attestations))
	}
	byID := map[string]model.Document{}
	for _, d := range testCorpus() {
		byID[d.ID] = d
	}
	for _, rec := range report.Attestations {
		if !strings.Contains(byID[rec.DocumentID].Abstract, rec.SourceText) {
			t.Errorf("Attestation not verbatim: %+v", rec)
		}
	}

	if report.GuidelineChunks != 1 {
		t.Errorf("Expected 1 guideline chunk recorded, got %d", report.GuidelineChunks)
	}
	firstClaim := report.Attestations[0].Claim
	if res := report.Alignment[firstClaim]; res == nil || res.Source != "NICE NG28" {
		t.Errorf("Expected the lead claim aligned to NICE NG28, got %+v", res)
	}

	if report.SurfacedRisks != 1 {
		t.Errorf("Expected 1 surfaced risk sentence, got %d", report.SurfacedRisks)
	}

	want := model.CRTSRecord{
		SF: 1.0, CRR: 0.5, AR: 1.0, GA: 0.5, L: 2.0,
		Weights: model.DefaultWeights(),
		CRTS:    0.75,
	}
	if diff := cmp.Diff(want, report.CRTS); diff != "" {
		t.Errorf("CRTS mismatch (-want +got):\n%s", diff)
	}

	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings on the deterministic path, got %v", report.Warnings)
	}
	if !report.Principles.NonNormative || !report.Principles.Reproducible {
		t.Errorf("Expected the standard principles, got %+v", report.Principles)
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := newTestPipeline(t)

	first, err := p.Score(context.Background(), "metformin", testCorpus(), testGuidelines())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := p.Score(context.Background(), "metformin", testCorpus(), testGuidelines())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	first.GeneratedAt = second.GeneratedAt
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Repeated runs diverged (-first +second):\n%s", diff)
	}
}

func TestScore_NoGuidelines(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Score(context.Background(), "metformin", testCorpus(), nil)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if report.GuidelineChunks != 0 {
		t.Errorf("Expected 0 guideline chunks, got %d", report.GuidelineChunks)
	}
	if len(report.Alignment) != len(report.Attestations) {
		t.Errorf("Expected every claim present in the alignment, got %d of %d",
			len(report.Alignment), len(report.Attestations))
	}
	for claim, res := range report.Alignment {
		if res != nil {
			t.Errorf("Expected %q unaligned without a guideline corpus, got %+v", claim, res)
		}
	}
	if report.CRTS.GA != 0 {
		t.Errorf("Expected GA 0 without guidelines, got %v", report.CRTS.GA)
	}
}

func TestScore_EmptyQuery(t *testing.T) {
	p := newTestPipeline(t)

	if _, err := p.Score(context.Background(), "", testCorpus(), nil); err == nil {
		t.Error("Expected an error for an empty query")
	}
}

func TestScore_NoDocuments(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Score(context.Background(), "metformin", nil, nil)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if len(report.Attestations) != 0 {
		t.Errorf("Expected no attestations, got %d", len(report.Attestations))
	}
	if report.CRTS.SF != 0 {
		t.Errorf("Expected SF 0 with no claims, got %v", report.CRTS.SF)
	}
	if report.CRTS.CRR != 1.0 {
		t.Errorf("Expected CRR 1.0 with no detected risk, got %v", report.CRTS.CRR)
	}
}
