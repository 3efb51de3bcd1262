package model

// Document is a retrieved biomedical abstract. Immutable once supplied by
// the retrieval layer; the pipeline never writes back into it.
type Document struct {
	ID               string   `json:"id"`               // Unique identifier (e.g., PMID)
	Title            string   `json:"title"`            // Article title
	Abstract         string   `json:"abstract"`         // Abstract text
	PublicationTypes []string `json:"publication_type"` // E.g., "Randomized Controlled Trial"
	Year             string   `json:"year"`             // Publication year; may be empty or non-numeric
}

// ConflictTag records which lexicons matched a single document.
// Derived purely from lexical matches over title+abstract; never mutated.
type ConflictTag struct {
	DocumentID   string   `json:"document_id"`
	Supportive   bool     `json:"supportive"`
	Risk         bool     `json:"risk"`
	SupportTerms []string `json:"support_terms,omitempty"` // Deduplicated literal matches
	RiskTerms    []string `json:"risk_terms,omitempty"`
}

// ConflictSummary aggregates conflict tags across a corpus.
// Detected holds iff both counts are positive: absence of risk signals is
// never conflated with absence of risk.
type ConflictSummary struct {
	Detected        bool          `json:"detected"`
	SupportiveCount int           `json:"supportive_count"`
	RiskCount       int           `json:"risk_count"`
	DocTags         []ConflictTag `json:"doc_tags"` // Same order as the input documents
}

// ConflictClass is the per-document colour class used by the external
// similarity-network renderer.
type ConflictClass string

const (
	ClassSupportive ConflictClass = "supportive"
	ClassRisk       ConflictClass = "risk"
	ClassBoth       ConflictClass = "both"
	ClassNeutral    ConflictClass = "neutral"
)

// Classify maps a tag (or nil, for untagged documents) to its class.
func Classify(tag *ConflictTag) ConflictClass {
	if tag == nil {
		return ClassNeutral
	}
	switch {
	case tag.Supportive && tag.Risk:
		return ClassBoth
	case tag.Risk:
		return ClassRisk
	case tag.Supportive:
		return ClassSupportive
	default:
		return ClassNeutral
	}
}
