package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PageRef locates a chunk within its source: a PDF page number or a web
// section label. Guideline exports are inconsistent about whether this is
// a string or a number, so both are accepted.
type PageRef string

func (p *PageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PageRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PageRef(n.String())
		return nil
	}
	return fmt.Errorf("page must be a string or number, got %s", string(data))
}

func (p *PageRef) UnmarshalYAML(value *yaml.Node) error {
	*p = PageRef(value.Value)
	return nil
}

// GuidelineChunk is one text segment of a clinical guideline, supplied by
// the external guideline source together with its provenance. Immutable.
type GuidelineChunk struct {
	Source       string  `json:"source" yaml:"source"` // URL or filename
	Page         PageRef `json:"page" yaml:"page"`
	Text         string  `json:"text" yaml:"text"`
	LastModified string  `json:"last_modified,omitempty" yaml:"last_modified,omitempty"` // Web sources
	Hash         string  `json:"hash,omitempty" yaml:"hash,omitempty"`                   // Uploaded documents
}

// AlignmentResult is the best guideline match for a claim. A nil result
// means no chunk scored at or above the threshold (or no vector space was
// available at all; both are reported identically).
type AlignmentResult struct {
	Source       string  `json:"source"`
	Page         PageRef `json:"page"`
	Score        float64 `json:"score"` // Cosine similarity, rounded to 2 decimals
	LastModified string  `json:"last_modified,omitempty"`
	Hash         string  `json:"hash,omitempty"`
}

// Alignment maps each claim to its best match or nil.
type Alignment map[string]*AlignmentResult
