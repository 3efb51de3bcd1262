package conflict

import (
	"github.com/Donmaston09/crts/internal/model"
)

// Tagger classifies documents as supportive, risk-signalling, both, or
// neither, by lexical matching over title+abstract.
type Tagger struct {
	supportive *Lexicon
	risk       *Lexicon
}

// NewTagger creates a tagger over the built-in lexicons.
func NewTagger() *Tagger {
	return &Tagger{supportive: Supportive, risk: Risk}
}

// TagDocument tags a single document.
func (t *Tagger) TagDocument(doc model.Document) model.ConflictTag {
	text := doc.Title + " " + doc.Abstract
	supTerms := t.supportive.MatchTerms(text)
	riskTerms := t.risk.MatchTerms(text)

	return model.ConflictTag{
		DocumentID:   doc.ID,
		Supportive:   len(supTerms) > 0,
		Risk:         len(riskTerms) > 0,
		SupportTerms: supTerms,
		RiskTerms:    riskTerms,
	}
}

// Tag tags every document and aggregates corpus-level counts. A document
// matching both lexicons counts toward both totals; Detected is true only
// when supportive and risk-signalling literature coexist.
func (t *Tagger) Tag(docs []model.Document) model.ConflictSummary {
	summary := model.ConflictSummary{
		DocTags: make([]model.ConflictTag, 0, len(docs)),
	}
	for _, doc := range docs {
		tag := t.TagDocument(doc)
		summary.DocTags = append(summary.DocTags, tag)
		if tag.Supportive {
			summary.SupportiveCount++
		}
		if tag.Risk {
			summary.RiskCount++
		}
	}
	summary.Detected = summary.SupportiveCount > 0 && summary.RiskCount > 0
	return summary
}
