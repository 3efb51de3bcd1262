package rank

import (
	"math"
	"testing"

	"github.com/Donmaston09/crts/internal/model"
	"github.com/google/go-cmp/cmp"
)

func newTestRanker() *Ranker {
	return NewRanker(model.RankConfig{})
}

func TestRanker_QueryRelevance(t *testing.T) {
	r := newTestRanker()

	doc := model.Document{
		ID:       "1",
		Title:    "Metformin in type 2 diabetes",
		Abstract: "A cohort study of metformin.",
	}

	// "metformin" and "diabetes" present, "stroke" absent: 2 * 0.2.
	score := r.ScoreDocument(doc, []string{"metformin", "diabetes", "stroke"})
	if score != 0.4 {
		t.Errorf("Expected score 0.4, got %v", score)
	}
}

func TestRanker_PublicationTypesSum(t *testing.T) {
	r := newTestRanker()

	doc := model.Document{
		ID:               "1",
		PublicationTypes: []string{"Randomized Controlled Trial", "Meta-Analysis", "Journal Article"},
	}

	// RCT (1.0) and meta-analysis (0.9) both count; unrecognized types add nothing.
	score := r.ScoreDocument(doc, nil)
	if math.Abs(score-1.9) > 1e-9 {
		t.Errorf("Expected score 1.9, got %v", score)
	}
}

func TestRanker_SafetyTermsDistinct(t *testing.T) {
	r := newTestRanker()

	doc := model.Document{
		ID:       "1",
		Abstract: "Toxicity and more toxicity, plus harm and harms and harmful effects.",
	}

	// Two distinct families (toxicity, harm) regardless of frequency.
	score := r.ScoreDocument(doc, nil)
	if score != 0.5 {
		t.Errorf("Expected score 0.5, got %v", score)
	}
}

func TestRanker_SafetyStudyHints(t *testing.T) {
	r := newTestRanker()

	doc := model.Document{
		ID:       "1",
		Abstract: "A post-marketing surveillance analysis using a national registry.",
	}

	// post-marketing + surveillance + registry: 3 * 0.3.
	score := r.ScoreDocument(doc, nil)
	if math.Abs(score-0.9) > 1e-9 {
		t.Errorf("Expected score 0.9, got %v", score)
	}
}

func TestRanker_RecencyBonus(t *testing.T) {
	r := newTestRanker()

	cases := []struct {
		year string
		want float64
	}{
		{"2024", 0.4},
		{"2022", 0.4},
		{"2021", 0.25},
		{"2019", 0.25},
		{"2018", 0},
		{"", 0},
		{"n/a", 0},       // Non-numeric years never raise and contribute zero
		{"2021-03", 0},   // Partial dates are treated as unknown
	}

	for _, tc := range cases {
		score := r.ScoreDocument(model.Document{ID: "1", Year: tc.year}, nil)
		if score != tc.want {
			t.Errorf("year %q: expected %v, got %v", tc.year, tc.want, score)
		}
	}
}

func TestRanker_DeterministicTotalOrder(t *testing.T) {
	r := newTestRanker()

	// Three documents with identical scores: order must be by ascending id.
	docs := []model.Document{
		{ID: "30", Abstract: "plain text"},
		{ID: "10", Abstract: "plain text"},
		{ID: "20", Abstract: "plain text"},
	}

	ranked := r.Rank(docs, "")
	gotIDs := []string{ranked[0].Document.ID, ranked[1].Document.ID, ranked[2].Document.ID}
	wantIDs := []string{"10", "20", "30"}
	if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
		t.Errorf("Tie order mismatch (-want +got):\n%s", diff)
	}

	// Re-running on a permuted input yields the identical sequence.
	permuted := []model.Document{docs[1], docs[2], docs[0]}
	again := r.Rank(permuted, "")
	for i := range ranked {
		if ranked[i].Document.ID != again[i].Document.ID {
			t.Fatalf("Order not independent of input order at %d: %s vs %s",
				i, ranked[i].Document.ID, again[i].Document.ID)
		}
	}
}

func TestRanker_DoesNotMutateInput(t *testing.T) {
	r := newTestRanker()

	docs := []model.Document{
		{ID: "b", Abstract: "toxicity"},
		{ID: "a", Abstract: "plain"},
	}

	_ = r.Rank(docs, "toxicity")

	if docs[0].ID != "b" || docs[1].ID != "a" {
		t.Error("Rank must not reorder the input slice")
	}
}

func TestRanker_SafetyBeatsUntypedFavourable(t *testing.T) {
	r := newTestRanker()

	docs := []model.Document{
		{ID: "fav", Abstract: "The treatment improved outcomes substantially."},
		{ID: "saf", Abstract: "Post-marketing registry data showed adverse events and harm."},
	}

	ranked := r.Rank(docs, "")
	if ranked[0].Document.ID != "saf" {
		t.Errorf("Expected safety literature ranked first, got %s", ranked[0].Document.ID)
	}
}

func TestRanker_ConfigurableStems(t *testing.T) {
	r := NewRanker(model.RankConfig{SafetyStems: []string{"bradycardia"}})

	score := r.ScoreDocument(model.Document{ID: "1", Abstract: "Bradycardia was frequent."}, nil)
	if score != 0.25 {
		t.Errorf("Expected custom stem to score 0.25, got %v", score)
	}

	// The built-in stems are replaced, not extended.
	score = r.ScoreDocument(model.Document{ID: "1", Abstract: "Toxicity was frequent."}, nil)
	if score != 0 {
		t.Errorf("Expected built-in stems inactive, got %v", score)
	}
}
