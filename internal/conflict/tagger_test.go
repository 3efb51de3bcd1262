package conflict

import (
	"testing"

	"github.com/Donmaston09/crts/internal/model"
)

func TestTagger_SupportiveAndRisk(t *testing.T) {
	tagger := NewTagger()

	docs := []model.Document{
		{ID: "1001", Title: "Outcomes study", Abstract: "The drug improved survival in the treatment arm."},
		{ID: "1002", Title: "Safety study", Abstract: "Significant adverse events were reported in elderly patients."},
	}

	summary := tagger.Tag(docs)

	if !summary.Detected {
		t.Error("Expected conflict to be detected with one supportive and one risk document")
	}
	if summary.SupportiveCount != 1 {
		t.Errorf("Expected supportive count 1, got %d", summary.SupportiveCount)
	}
	if summary.RiskCount != 1 {
		t.Errorf("Expected risk count 1, got %d", summary.RiskCount)
	}
	if len(summary.DocTags) != 2 {
		t.Fatalf("Expected 2 doc tags, got %d", len(summary.DocTags))
	}

	if !summary.DocTags[0].Supportive || summary.DocTags[0].Risk {
		t.Errorf("Expected first document supportive-only, got %+v", summary.DocTags[0])
	}
	if summary.DocTags[1].Supportive || !summary.DocTags[1].Risk {
		t.Errorf("Expected second document risk-only, got %+v", summary.DocTags[1])
	}
}

func TestTagger_DocumentCountsTowardBoth(t *testing.T) {
	tagger := NewTagger()

	docs := []model.Document{
		{ID: "2001", Abstract: "Efficacy was demonstrated but toxicity was dose-limiting."},
	}

	summary := tagger.Tag(docs)

	// Both counts are positive, so Detected must hold even for one document.
	if summary.SupportiveCount != 1 || summary.RiskCount != 1 {
		t.Errorf("Expected counts 1/1, got %d/%d", summary.SupportiveCount, summary.RiskCount)
	}
	if !summary.Detected {
		t.Error("Expected conflict detected when a single document matches both lexicons")
	}
	tag := summary.DocTags[0]
	if !tag.Supportive || !tag.Risk {
		t.Errorf("Expected both flags set, got %+v", tag)
	}
}

func TestTagger_NoRiskIsNotConflict(t *testing.T) {
	tagger := NewTagger()

	docs := []model.Document{
		{ID: "3001", Abstract: "Treatment showed a clear survival advantage."},
		{ID: "3002", Abstract: "Response rate exceeded historical controls."},
	}

	summary := tagger.Tag(docs)

	if summary.Detected {
		t.Error("Expected no conflict when no risk-signalling documents exist")
	}
	if summary.SupportiveCount != 2 || summary.RiskCount != 0 {
		t.Errorf("Expected counts 2/0, got %d/%d", summary.SupportiveCount, summary.RiskCount)
	}
}

func TestTagger_DetectedInvariant(t *testing.T) {
	tagger := NewTagger()

	cases := [][]model.Document{
		{},
		{{ID: "a", Abstract: "No signal language here whatsoever."}},
		{{ID: "b", Abstract: "Serious harm was observed."}},
		{{ID: "c", Abstract: "Marked improvement."}, {ID: "d", Abstract: "Contraindicated in pregnancy."}},
	}

	for i, docs := range cases {
		summary := tagger.Tag(docs)
		want := summary.SupportiveCount > 0 && summary.RiskCount > 0
		if summary.Detected != want {
			t.Errorf("case %d: Detected=%v violates invariant (sup=%d risk=%d)",
				i, summary.Detected, summary.SupportiveCount, summary.RiskCount)
		}
	}
}

func TestTagger_TermsDeduplicated(t *testing.T) {
	tagger := NewTagger()

	tag := tagger.TagDocument(model.Document{
		ID:       "4001",
		Abstract: "Toxicity was common. Toxicity led to discontinuation. Grade 3 toxicity occurred.",
	})

	if len(tag.RiskTerms) != 1 {
		t.Errorf("Expected one deduplicated risk term, got %v", tag.RiskTerms)
	}
	if tag.RiskTerms[0] != "toxicity" {
		t.Errorf("Expected literal match 'toxicity', got %q", tag.RiskTerms[0])
	}
}

func TestLexicons_Disjoint(t *testing.T) {
	for _, p := range Supportive.Patterns {
		if Risk.Contains(p) {
			t.Errorf("Pattern %q appears in both lexicons", p)
		}
	}
}

func TestLexicon_CaseInsensitive(t *testing.T) {
	terms := Risk.MatchTerms("ADVERSE EVENTS were noted")
	if len(terms) == 0 {
		t.Fatal("Expected case-insensitive match on 'ADVERSE EVENTS'")
	}
}
