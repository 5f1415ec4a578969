// Package recommender holds the scoring core: a shared immutable snapshot of
// the problem catalog with its fitted TF-IDF space, a cosine-similarity
// ranker, a per-request random-forest re-ranker and the weak-topic analyzer.
package recommender

import (
	"errors"
	"fmt"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/textvec"
)

var ErrDataUnavailable = errors.New("recommender: catalog data unavailable")

// Snapshot is the read-only state every request scores against: the catalog
// rows, the vector space fitted over them and one vector per row. A snapshot
// is never mutated after construction; refits build a new one and swap it in.
type Snapshot struct {
	Rows    []catalog.Row
	Space   *textvec.Model
	Vectors []textvec.Vector

	titleIndex  map[string]int
	topicCounts map[string]int
}

func buildSnapshot(rows []catalog.Row, maxFeatures int) (*Snapshot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrDataUnavailable)
	}

	docs := make([]string, len(rows))
	for i, r := range rows {
		docs[i] = r.DerivedText()
	}

	model, err := textvec.Fit(docs, maxFeatures)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	vectors, err := model.TransformAll(docs)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Rows:        rows,
		Space:       model,
		Vectors:     vectors,
		titleIndex:  make(map[string]int, len(rows)),
		topicCounts: make(map[string]int),
	}
	for i, r := range rows {
		t := catalog.NormalizeTitle(r.Title)
		if _, ok := snap.titleIndex[t]; !ok {
			snap.titleIndex[t] = i
		}
		for _, topic := range r.Topics {
			snap.topicCounts[topic]++
		}
	}
	return snap, nil
}

// RowIndex returns the catalog position of a normalized title.
func (s *Snapshot) RowIndex(normTitle string) (int, bool) {
	i, ok := s.titleIndex[normTitle]
	return i, ok
}

// Topics returns every topic tag appearing in the catalog with its frequency.
func (s *Snapshot) Topics() map[string]int {
	return s.topicCounts
}
