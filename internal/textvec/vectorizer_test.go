package textvec

import (
	"math"
	"reflect"
	"testing"
)

func TestFit_EmptyCorpus(t *testing.T) {
	if _, err := Fit(nil, 0); err != ErrEmptyCorpus {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := Fit([]string{"", "a of the"}, 0); err != ErrEmptyCorpus {
		t.Fatalf("expected ErrEmptyCorpus for stop-word-only corpus, got %v", err)
	}
}

func TestTransform_BeforeFit(t *testing.T) {
	var m *Model
	if _, err := m.Transform("two sum"); err != ErrNotFitted {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
}

func TestFit_Deterministic(t *testing.T) {
	docs := []string{
		"array hash table two sum",
		"array binary search",
		"dynamic programming array",
	}
	a, err := Fit(docs, 0)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	b, err := Fit(docs, 0)
	if err != nil {
		t.Fatalf("refit: %v", err)
	}
	if !reflect.DeepEqual(a.Vocabulary, b.Vocabulary) {
		t.Fatalf("vocabularies differ:\n%v\n%v", a.Vocabulary, b.Vocabulary)
	}
	if !reflect.DeepEqual(a.IDF, b.IDF) {
		t.Fatalf("idf values differ")
	}
	va, _ := a.Transform(docs[0])
	vb, _ := b.Transform(docs[0])
	if !reflect.DeepEqual(va, vb) {
		t.Fatalf("vectors differ for identical fits")
	}
}

func TestFit_MaxFeaturesCap(t *testing.T) {
	docs := []string{
		"array array array",
		"array binary",
		"graph tree heap stack",
	}
	m, err := Fit(docs, 2)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if m.Size() != 2 {
		t.Fatalf("expected 2 features, got %d", m.Size())
	}
	if _, ok := m.Vocabulary["array"]; !ok {
		t.Fatalf("most frequent term missing from capped vocabulary: %v", m.Vocabulary)
	}
}

func TestTransform_SelfSimilarity(t *testing.T) {
	docs := []string{
		"array hash table",
		"binary search tree",
		"linked list",
	}
	m, err := Fit(docs, 0)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, doc := range docs {
		v, err := m.Transform(doc)
		if err != nil {
			t.Fatalf("transform: %v", err)
		}
		if got := Cosine(v, v); math.Abs(got-1.0) > 1e-9 {
			t.Fatalf("self similarity of %q = %v, want 1.0", doc, got)
		}
	}
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	m, err := Fit([]string{"array hash table"}, 0)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	v, err := m.Transform("zzzzz qqqqq")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !v.IsZero() {
		t.Fatalf("expected zero vector, got %v", v)
	}
	other, _ := m.Transform("array")
	if got := Cosine(v, other); got != 0 {
		t.Fatalf("cosine with zero vector = %v, want 0", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Two-Sum, the ARRAY & hash_table problem!")
	want := []string{"two", "sum", "array", "hash", "table", "problem"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestVector_DotAndAt(t *testing.T) {
	a := Vector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := Vector{Indices: []int{2, 5, 7}, Values: []float64{4, 5, 6}}
	if got := Dot(a, b); got != 2*4+3*5 {
		t.Fatalf("Dot = %v, want 23", got)
	}
	if got := a.At(2); got != 2 {
		t.Fatalf("At(2) = %v, want 2", got)
	}
	if got := a.At(3); got != 0 {
		t.Fatalf("At(3) = %v, want 0", got)
	}
}
