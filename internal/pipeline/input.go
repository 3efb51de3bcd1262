package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Donmaston09/crts/internal/model"
)

// LoadDocuments reads the evidence corpus from a JSON or YAML file
// (by extension; JSON is the default). The file holds an array of
// documents.
func LoadDocuments(path string) ([]model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}

	var docs []model.Document
	if err := unmarshalByExt(path, raw, &docs); err != nil {
		return nil, fmt.Errorf("parsing documents %s: %w", path, err)
	}

	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("parsing documents %s: document %d has no id", path, i)
		}
	}
	return docs, nil
}

// LoadGuidelines reads guideline chunks from a JSON or YAML file.
// An empty or missing corpus is not an error at this layer; the caller
// decides whether to run without alignment.
func LoadGuidelines(path string) ([]model.GuidelineChunk, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guidelines: %w", err)
	}

	var chunks []model.GuidelineChunk
	if err := unmarshalByExt(path, raw, &chunks); err != nil {
		return nil, fmt.Errorf("parsing guidelines %s: %w", path, err)
	}

	// Chunks with no text can never match and only distort the corpus
	// statistics.
	kept := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) != "" {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// LoadQueries reads one query per line, skipping blanks and # comments.
func LoadQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	defer func() { _ = f.Close() }()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries found in %s", path)
	}
	return queries, nil
}

func unmarshalByExt(path string, raw []byte, out interface{}) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(raw, out)
	default:
		return json.Unmarshal(raw, out)
	}
}
