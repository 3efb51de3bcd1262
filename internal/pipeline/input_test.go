package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Donmaston09/crts/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDocuments_JSON(t *testing.T) {
	path := writeFile(t, "docs.json", `[
		{"id": "1", "title": "T", "abstract": "A", "publication_type": ["Review"], "year": "2024"}
	]`)

	docs, err := LoadDocuments(path)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}

	want := []model.Document{
		{ID: "1", Title: "T", Abstract: "A", PublicationTypes: []string{"Review"}, Year: "2024"},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("Documents mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDocuments_MissingID(t *testing.T) {
	path := writeFile(t, "docs.json", `[{"title": "no id"}]`)

	if _, err := LoadDocuments(path); err == nil {
		t.Error("Expected an error for a document without an id")
	}
}

func TestLoadGuidelines_YAMLWithNumericPage(t *testing.T) {
	path := writeFile(t, "guidelines.yaml", `
- source: NICE NG196
  page: 12
  text: Anticoagulation therapy reduces stroke risk.
  hash: deadbeef
- source: NICE NG196
  page: 13
  text: "   "
`)

	chunks, err := LoadGuidelines(path)
	if err != nil {
		t.Fatalf("LoadGuidelines: %v", err)
	}

	// The whitespace-only chunk is dropped.
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if string(chunks[0].Page) != "12" {
		t.Errorf("Expected numeric page coerced to %q, got %q", "12", chunks[0].Page)
	}
	if chunks[0].Hash != "deadbeef" {
		t.Errorf("Expected hash carried through, got %q", chunks[0].Hash)
	}
}

func TestLoadQueries(t *testing.T) {
	path := writeFile(t, "queries.txt", "# batch of two\nmetformin safety\n\nwarfarin interactions\n")

	queries, err := LoadQueries(path)
	if err != nil {
		t.Fatalf("LoadQueries: %v", err)
	}

	want := []string{"metformin safety", "warfarin interactions"}
	if diff := cmp.Diff(want, queries); diff != "" {
		t.Errorf("Queries mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadQueries_Empty(t *testing.T) {
	path := writeFile(t, "queries.txt", "# only a comment\n")

	if _, err := LoadQueries(path); err == nil {
		t.Error("Expected an error for a file with no queries")
	}
}
