// Package rank orders retrieved documents by evidence value. Scoring is
// deterministic and feature-based: high-value evidence types (RCTs,
// systematic reviews) are promoted while safety literature
// (pharmacovigilance, post-marketing) stays competitive, so a corpus of
// purely favourable studies cannot manufacture a phantom consensus.
package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Donmaston09/crts/internal/model"
)

// Built-in stem lists. Overridable per Ranker via model.RankConfig.
var (
	DefaultSafetyStems = []string{
		"adverse", "toxicity", "contraindicat", "mortality", "risk", "harm",
		"side effect", "complication", "black box", "warning",
	}
	DefaultSafetyStudyHints = []string{
		"pharmacovigilance", "post-marketing", "registry", "surveillance", "real-world",
	}
)

// Score weights per feature.
const (
	queryTermWeight   = 0.2
	safetyTermWeight  = 0.25
	safetyStudyWeight = 0.3
	recencyRecent     = 0.4 // Year >= 2022
	recencyModern     = 0.25
)

// highValueTypes maps recognized publication types to their weight.
// A document carrying several recognized types scores all of them.
var highValueTypes = map[string]float64{
	"Randomized Controlled Trial": 1.0,
	"Systematic Review":           1.0,
	"Meta-Analysis":               0.9,
}

var nonWord = regexp.MustCompile(`\W+`)

// Ranker scores and orders documents.
type Ranker struct {
	safetyStems []*regexp.Regexp
	studyHints  []*regexp.Regexp
}

// NewRanker creates a ranker; empty stem lists in cfg fall back to the
// built-in lexicons.
func NewRanker(cfg model.RankConfig) *Ranker {
	stems := cfg.SafetyStems
	if len(stems) == 0 {
		stems = DefaultSafetyStems
	}
	hints := cfg.SafetyStudyHints
	if len(hints) == 0 {
		hints = DefaultSafetyStudyHints
	}
	return &Ranker{
		safetyStems: compileStems(stems),
		studyHints:  compileStems(hints),
	}
}

// compileStems builds word-boundary-aware stem matchers: each stem
// matches at a word start and absorbs any suffix.
func compileStems(stems []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(stems))
	for _, s := range stems {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(s)+`\w*`))
	}
	return res
}

// stemHits counts distinct stems present in text. Frequency is ignored;
// only the number of matched lexical families contributes.
func stemHits(text string, stems []*regexp.Regexp) int {
	hits := 0
	for _, re := range stems {
		if re.MatchString(text) {
			hits++
		}
	}
	return hits
}

// ScoreDocument computes the priority score for one document.
func (r *Ranker) ScoreDocument(doc model.Document, queryTerms []string) float64 {
	score := 0.0
	text := strings.ToLower(doc.Title + " " + doc.Abstract)

	// Bag-of-words relevance: presence only, not frequency.
	for _, term := range queryTerms {
		if term != "" && strings.Contains(text, strings.ToLower(term)) {
			score += queryTermWeight
		}
	}

	// Evidence-type weighting, summed across all carried types.
	for _, pt := range doc.PublicationTypes {
		score += highValueTypes[pt]
	}

	// Safety signals keep dissenting literature visible.
	score += safetyTermWeight * float64(stemHits(text, r.safetyStems))
	score += safetyStudyWeight * float64(stemHits(text, r.studyHints))

	// Recency bonus. Non-numeric years contribute zero.
	if year, ok := parseYear(doc.Year); ok {
		switch {
		case year >= 2022:
			score += recencyRecent
		case year >= 2019:
			score += recencyModern
		}
	}

	return round3(score)
}

// Rank scores every document and returns a new sequence in descending
// score order, ties broken by ascending document id. The result is a
// total order independent of retrieval order; the inputs are not mutated.
func (r *Ranker) Rank(docs []model.Document, query string) []model.RankedDocument {
	queryTerms := splitQuery(query)

	ranked := make([]model.RankedDocument, 0, len(docs))
	for _, doc := range docs {
		ranked = append(ranked, model.RankedDocument{
			Document: doc,
			Score:    r.ScoreDocument(doc, queryTerms),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Document.ID < ranked[j].Document.ID
	})

	return ranked
}

// splitQuery tokenizes on non-word boundaries.
func splitQuery(query string) []string {
	var terms []string
	for _, t := range nonWord.Split(query, -1) {
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func parseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	year := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		year = year*10 + int(r-'0')
	}
	return year, true
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
