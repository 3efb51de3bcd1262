// Package align scores verified claims against guideline text using a
// TF-IDF vector space. The vectorizer reproduces the conventional
// defaults of reference text tooling (two-plus character word tokens,
// english stopwords, smoothed IDF, l2-normalised vectors) so that scores
// are stable across reimplementations.
package align

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern matches word tokens of at least two characters.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// tokenize lowercases, extracts word tokens and drops stopwords.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Vectorizer holds a vocabulary and smoothed IDF weights fitted on a
// corpus. Transform projects any text into the fitted space; terms
// outside the vocabulary are ignored.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit builds the vocabulary and IDF weights from the corpus. The IDF is
// smoothed: idf(t) = ln((1+n)/(1+df(t))) + 1, which keeps unseen-ish
// terms finite and matches the reference scoring exactly.
func Fit(corpus []string) *Vectorizer {
	vocab := make(map[string]int)
	df := []int{}
	for _, doc := range corpus {
		seen := map[int]struct{}{}
		for _, tok := range tokenize(doc) {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			df[idx]++
		}
	}

	n := float64(len(corpus))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return &Vectorizer{vocab: vocab, idf: idf}
}

// Transform maps text to an l2-normalised TF-IDF vector in the fitted
// space. A text with no in-vocabulary terms yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, tok := range tokenize(text) {
		if idx, ok := v.vocab[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine returns the cosine similarity of two vectors from the same
// fitted space. Both inputs are already unit length, so this is a dot
// product; either being zero yields 0.
func Cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
