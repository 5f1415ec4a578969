// Package textvec builds TF-IDF vector spaces over small text corpora.
//
// A Model is immutable once fitted: Transform only reads the vocabulary, so a
// fitted model is safe for concurrent use. Refitting always produces a new
// Model rather than mutating an existing one.
package textvec

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

const DefaultMaxFeatures = 5000

var (
	ErrEmptyCorpus = errors.New("textvec: empty corpus")
	ErrNotFitted   = errors.New("textvec: model not fitted")
)

// Model is a fitted TF-IDF vector space: a vocabulary mapping token to
// dimension index plus per-token inverse document frequencies.
type Model struct {
	Vocabulary map[string]int
	IDF        []float64
	// Terms is the vocabulary in index order, kept for introspection
	// (e.g. reporting the highest-weighted terms of a profile vector).
	Terms []string
}

// Tokenize lowercases text and splits it into tokens of two or more letters
// or digits, dropping stop words.
func Tokenize(text string) []string {
	isSep := func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	}
	fields := strings.FieldsFunc(strings.ToLower(text), isSep)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Fit builds a vector space over the corpus. The vocabulary is capped at
// maxFeatures terms, chosen by total term frequency with lexicographic
// tie-breaks, then indexed in alphabetical order. The result is reproducible
// bit-for-bit for the same corpus and cap.
func Fit(docs []string, maxFeatures int) (*Model, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	termCounts := make(map[string]int)
	docCounts := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			termCounts[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docCounts[tok]++
			}
		}
	}
	if len(termCounts) == 0 {
		return nil, ErrEmptyCorpus
	}

	terms := make([]string, 0, len(termCounts))
	for t := range termCounts {
		terms = append(terms, t)
	}
	if len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termCounts[terms[i]] != termCounts[terms[j]] {
				return termCounts[terms[i]] > termCounts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	m := &Model{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
		Terms:      terms,
	}
	n := float64(len(docs))
	for i, t := range terms {
		m.Vocabulary[t] = i
		// Smoothed IDF: ln((1+N)/(1+df)) + 1.
		m.IDF[i] = math.Log((1+n)/(1+float64(docCounts[t]))) + 1
	}
	return m, nil
}

// Transform projects text into the fitted space. The result is L2-normalised,
// so the dot product of two transformed vectors is their cosine similarity.
// Text with no in-vocabulary tokens yields the zero vector.
func (m *Model) Transform(text string) (Vector, error) {
	if m == nil || len(m.Vocabulary) == 0 {
		return Vector{}, ErrNotFitted
	}

	counts := make(map[int]float64)
	total := 0
	for _, tok := range Tokenize(text) {
		total++
		if idx, ok := m.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}, nil
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	v := Vector{Indices: indices, Values: make([]float64, len(indices))}
	var sumSq float64
	for i, idx := range indices {
		w := (counts[idx] / float64(total)) * m.IDF[idx]
		v.Values[i] = w
		sumSq += w * w
	}
	if sumSq > 0 {
		inv := 1 / math.Sqrt(sumSq)
		for i := range v.Values {
			v.Values[i] *= inv
		}
	}
	return v, nil
}

// TransformAll transforms a batch of texts.
func (m *Model) TransformAll(texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, t := range texts {
		v, err := m.Transform(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Size is the number of dimensions of the fitted space.
func (m *Model) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Terms)
}
