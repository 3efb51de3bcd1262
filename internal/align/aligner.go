package align

import (
	"math"
	"sort"

	"github.com/Donmaston09/crts/internal/model"
)

// DefaultThreshold is the minimum cosine similarity for a claim to count
// as guideline-aligned.
const DefaultThreshold = 0.15

// Align maps every claim to its best-matching guideline chunk, or nil
// when nothing clears the threshold. With no guideline corpus loaded,
// every claim maps to nil rather than being dropped: the report must
// state explicitly that alignment was attempted and found nothing.
func Align(claims []string, chunks []model.GuidelineChunk, threshold float64) model.Alignment {
	alignment := make(model.Alignment, len(claims))
	for _, claim := range claims {
		alignment[claim] = nil
	}
	if len(claims) == 0 || len(chunks) == 0 {
		return alignment
	}

	corpus := make([]string, len(chunks))
	for i, c := range chunks {
		corpus[i] = c.Text
	}
	vectorizer := Fit(corpus)
	chunkVecs := make([][]float64, len(chunks))
	for i, text := range corpus {
		chunkVecs[i] = vectorizer.Transform(text)
	}

	for _, claim := range claims {
		claimVec := vectorizer.Transform(claim)
		best, bestScore := -1, 0.0
		for i, cv := range chunkVecs {
			// Strict comparison keeps the first chunk on ties.
			if s := Cosine(claimVec, cv); s > bestScore {
				best, bestScore = i, s
			}
		}
		if best < 0 || bestScore < threshold {
			continue
		}
		chunk := chunks[best]
		alignment[claim] = &model.AlignmentResult{
			Source:       chunk.Source,
			Page:         chunk.Page,
			Score:        round2(bestScore),
			LastModified: chunk.LastModified,
			Hash:         chunk.Hash,
		}
	}
	return alignment
}

// Metrics reports the aligned fraction along with the raw counts.
func Metrics(alignment model.Alignment) (ga float64, matched, total int) {
	total = len(alignment)
	for _, res := range alignment {
		if res != nil {
			matched++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return float64(matched) / float64(total), matched, total
}

// ProvenanceEntry identifies one guideline chunk that backed at least
// one aligned claim.
type ProvenanceEntry struct {
	Source       string `json:"source"`
	Page         string `json:"page"`
	LastModified string `json:"last_modified,omitempty"`
	Hash         string `json:"hash,omitempty"`
}

// Provenance lists the distinct guideline chunks referenced by the
// alignment, sorted by source then page for stable output.
func Provenance(alignment model.Alignment) []ProvenanceEntry {
	seen := map[ProvenanceEntry]struct{}{}
	entries := []ProvenanceEntry{}
	for _, res := range alignment {
		if res == nil {
			continue
		}
		e := ProvenanceEntry{
			Source:       res.Source,
			Page:         string(res.Page),
			LastModified: res.LastModified,
			Hash:         res.Hash,
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].Page < entries[j].Page
	})
	return entries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
