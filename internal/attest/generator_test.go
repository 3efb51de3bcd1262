package attest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Donmaston09/crts/internal/model"
)

var testDocs = []model.Document{
	{
		ID:       "100",
		Title:    "Metformin outcomes trial",
		Abstract: "Metformin reduced cardiovascular mortality in the treatment arm. Gastrointestinal side effects were the most common complaint reported.",
	},
	{
		ID:       "200",
		Title:    "Safety surveillance study",
		Abstract: "Post-marketing surveillance identified rare cases of lactic acidosis. No new safety concerns were raised by the registry analysis.",
	},
}

// fakeSource is a scripted claim source for policy tests.
type fakeSource struct {
	name       string
	synthesis  string
	candidates model.Attestations
	err        error
	calls      int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Generate(_ context.Context, _ string, _ []model.RankedDocument) (string, model.Attestations, error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	return f.synthesis, f.candidates, nil
}

func TestValidate_SubstringInvariant(t *testing.T) {
	candidates := model.Attestations{
		{Claim: "Metformin lowers mortality", DocumentID: "100", SourceText: "Metformin reduced cardiovascular mortality in the treatment arm."},
		{Claim: "Fabricated quote", DocumentID: "100", SourceText: "Metformin cures every known disease."},
		{Claim: "Wrong document", DocumentID: "999", SourceText: "Metformin reduced cardiovascular mortality in the treatment arm."},
		{Claim: "", DocumentID: "100", SourceText: "Metformin reduced cardiovascular mortality in the treatment arm."},
	}

	validated := Validate(candidates, testDocs)

	if len(validated) != 1 {
		t.Fatalf("Expected exactly 1 validated claim, got %d: %+v", len(validated), validated)
	}
	rec := validated[0]
	if rec.Claim != "Metformin lowers mortality." {
		t.Errorf("Expected claim normalised with terminal punctuation, got %q", rec.Claim)
	}
	if rec.DocumentTitle != "Metformin outcomes trial" {
		t.Errorf("Title must come from the document, got %q", rec.DocumentTitle)
	}
	if !strings.Contains(testDocs[0].Abstract, rec.SourceText) {
		t.Error("Substring invariant violated after validation")
	}
}

func TestValidate_CapAndDedupe(t *testing.T) {
	src := "Metformin reduced cardiovascular mortality in the treatment arm."
	var candidates model.Attestations
	for i := 0; i < 10; i++ {
		candidates = append(candidates, model.AttestationRecord{
			Claim:      fmt.Sprintf("Claim variant %d", i),
			DocumentID: "100",
			SourceText: src,
		})
	}
	// A duplicate of an earlier claim must not consume a slot.
	candidates = append(candidates, model.AttestationRecord{
		Claim: "Claim variant 0", DocumentID: "100", SourceText: src,
	})

	validated := Validate(candidates, testDocs)

	if len(validated) != MaxClaims {
		t.Errorf("Expected cap of %d claims, got %d", MaxClaims, len(validated))
	}
	for i, rec := range validated {
		want := fmt.Sprintf("Claim variant %d.", i)
		if rec.Claim != want {
			t.Errorf("Expected candidate-order acceptance, got %q at %d", rec.Claim, i)
		}
	}
}

func TestValidate_DedupeIsCaseSensitive(t *testing.T) {
	src := "Metformin reduced cardiovascular mortality in the treatment arm."
	candidates := model.Attestations{
		{Claim: "Metformin lowers mortality.", DocumentID: "100", SourceText: src},
		{Claim: "metformin lowers mortality.", DocumentID: "100", SourceText: src},
	}

	validated := Validate(candidates, testDocs)

	if len(validated) != 2 {
		t.Fatalf("Claims differing only in case are distinct, got %d records", len(validated))
	}
}

func TestValidate_AdversarialPayloadRejected(t *testing.T) {
	// Every candidate cites real documents but fabricates the quote; the
	// whole batch must be rejected.
	candidates := model.Attestations{
		{Claim: "A", DocumentID: "100", SourceText: "completely invented sentence one"},
		{Claim: "B", DocumentID: "200", SourceText: "completely invented sentence two"},
	}

	if validated := Validate(candidates, testDocs); len(validated) != 0 {
		t.Errorf("Expected all fabricated claims rejected, got %+v", validated)
	}
}

func TestGenerator_GenerativeAccepted(t *testing.T) {
	gen := &fakeSource{
		name:      "openai",
		synthesis: "Backend synthesis.",
		candidates: model.Attestations{
			{Claim: "Metformin lowers mortality", DocumentID: "100", SourceText: "Metformin reduced cardiovascular mortality in the treatment arm."},
		},
	}

	result := NewGenerator(gen).Generate(context.Background(), "metformin", ranked(testDocs...))

	if result.Source != "openai" {
		t.Errorf("Expected generative path, got %q", result.Source)
	}
	if result.Synthesis != "Backend synthesis." {
		t.Errorf("Unexpected synthesis: %q", result.Synthesis)
	}
	if len(result.Attestations) != 1 {
		t.Errorf("Expected 1 validated attestation, got %d", len(result.Attestations))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
}

func TestGenerator_FallbackOnError(t *testing.T) {
	gen := &fakeSource{name: "openai", err: errors.New("connection refused")}

	result := NewGenerator(gen).Generate(context.Background(), "metformin", ranked(testDocs...))

	if result.Source != "deterministic" {
		t.Errorf("Expected deterministic fallback, got %q", result.Source)
	}
	if len(result.Attestations) == 0 {
		t.Error("Fallback must still produce attestations")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "backend error") {
		t.Errorf("Expected a backend error warning, got %v", result.Warnings)
	}
}

func TestGenerator_FallbackOnQuota(t *testing.T) {
	gen := &fakeSource{name: "openai", err: errors.New("HTTP 429: insufficient quota")}

	result := NewGenerator(gen).Generate(context.Background(), "metformin", ranked(testDocs...))

	if result.Source != "deterministic" {
		t.Errorf("Expected deterministic fallback, got %q", result.Source)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "quota") {
		t.Errorf("Expected a quota warning, got %v", result.Warnings)
	}
}

func TestGenerator_FallbackOnZeroValidated(t *testing.T) {
	gen := &fakeSource{
		name:      "openai",
		synthesis: "Backend synthesis.",
		candidates: model.Attestations{
			{Claim: "Fabricated", DocumentID: "100", SourceText: "not in the abstract at all"},
		},
	}

	result := NewGenerator(gen).Generate(context.Background(), "metformin", ranked(testDocs...))

	if result.Source != "deterministic" {
		t.Errorf("Expected fallback when no claim validates, got %q", result.Source)
	}
	if result.Synthesis == "Backend synthesis." {
		t.Error("The backend synthesis must be discarded along with its claims")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "no verifiable claims") {
		t.Errorf("Expected a no-verifiable-claims warning, got %v", result.Warnings)
	}
}

func TestGenerator_NoBackendConfigured(t *testing.T) {
	result := NewGenerator(nil).Generate(context.Background(), "metformin", ranked(testDocs...))

	if result.Source != "deterministic" {
		t.Errorf("Expected deterministic path, got %q", result.Source)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("No backend configured is not a warning condition, got %v", result.Warnings)
	}
	// Every record in the fallback is a verbatim excerpt.
	byID := map[string]model.Document{}
	for _, d := range testDocs {
		byID[d.ID] = d
	}
	for _, rec := range result.Attestations {
		if !strings.Contains(byID[rec.DocumentID].Abstract, rec.SourceText) {
			t.Errorf("Fallback record violates substring invariant: %+v", rec)
		}
	}
}
