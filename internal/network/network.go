// Package network derives the evidence similarity graph: documents as
// nodes, TF-IDF cosine similarity of abstracts as edges. The graph data
// is emitted for external renderers; nothing here draws anything.
package network

import (
	"github.com/Donmaston09/crts/internal/align"
	"github.com/Donmaston09/crts/internal/model"
)

// DefaultThreshold is the minimum cosine similarity for an edge.
const DefaultThreshold = 0.25

// Node is one document in the evidence graph, carrying the conflict
// class a renderer would colour it by.
type Node struct {
	DocumentID string              `json:"document_id"`
	Title      string              `json:"title"`
	Year       string              `json:"year,omitempty"`
	Class      model.ConflictClass `json:"class"`
}

// Edges computes the upper-triangle similarity edges over document
// abstracts. Documents whose abstracts share no vocabulary produce no
// edge; an all-empty corpus produces none at all.
func Edges(docs []model.Document, threshold float64) []model.NetworkEdge {
	if len(docs) < 2 {
		return nil
	}
	corpus := make([]string, len(docs))
	for i, d := range docs {
		corpus[i] = d.Abstract
	}
	vectorizer := align.Fit(corpus)
	vecs := make([][]float64, len(docs))
	for i, text := range corpus {
		vecs[i] = vectorizer.Transform(text)
	}

	var edges []model.NetworkEdge
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			if sim := align.Cosine(vecs[i], vecs[j]); sim >= threshold {
				edges = append(edges, model.NetworkEdge{
					SourceID:   docs[i].ID,
					TargetID:   docs[j].ID,
					Similarity: sim,
				})
			}
		}
	}
	return edges
}

// Nodes pairs each document with its conflict class. Tags are matched by
// document id; untagged documents are neutral.
func Nodes(docs []model.Document, tags []model.ConflictTag) []Node {
	byID := make(map[string]*model.ConflictTag, len(tags))
	for i := range tags {
		byID[tags[i].DocumentID] = &tags[i]
	}
	nodes := make([]Node, 0, len(docs))
	for _, d := range docs {
		nodes = append(nodes, Node{
			DocumentID: d.ID,
			Title:      d.Title,
			Year:       d.Year,
			Class:      model.Classify(byID[d.ID]),
		})
	}
	return nodes
}
