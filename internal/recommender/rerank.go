package recommender

import (
	"errors"
	"sort"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/textvec"
)

// ErrInsufficientLabels means too few catalog rows matched a labeled entry in
// the user's data to train the re-ranker. Recoverable: fall back to Rank.
var ErrInsufficientLabels = errors.New("recommender: not enough labeled rows to train")

const DefaultMinTrainSamples = 10

// featureVector is a row's TF-IDF vector with the difficulty ordinal appended
// as one extra dimension past the vocabulary.
func (s *Snapshot) featureVector(i int) textvec.Vector {
	base := s.Vectors[i]
	diff := s.Rows[i].Difficulty.Ordinal()
	if diff == 0 {
		return base
	}
	v := textvec.Vector{
		Indices: append(append([]int(nil), base.Indices...), s.Space.Size()),
		Values:  append(append([]float64(nil), base.Values...), diff),
	}
	return v
}

// TrainForest fits a solved/not-solved classifier on the catalog rows whose
// normalized title matches a labeled entry in the user's data (an inner join;
// unmatched user rows are dropped silently). Fails with
// ErrInsufficientLabels below minSamples matches or when the user's data
// carries no status labels at all.
func (s *Snapshot) TrainForest(set solved.Set, minSamples int) (*Forest, error) {
	if minSamples <= 0 {
		minSamples = DefaultMinTrainSamples
	}

	statuses := set.StatusByTitle()
	if len(statuses) == 0 {
		return nil, ErrInsufficientLabels
	}

	var samples []sample
	for i, r := range s.Rows {
		status, ok := statuses[catalog.NormalizeTitle(r.Title)]
		if !ok {
			continue
		}
		label := 0
		if solved.IsPositive(status) {
			label = 1
		}
		samples = append(samples, sample{vec: s.featureVector(i), label: label})
	}
	if len(samples) < minSamples {
		return nil, ErrInsufficientLabels
	}

	return trainForest(samples), nil
}

// RankWithForest trains a fresh classifier from the user's labels and ranks
// every unsolved catalog row by predicted solve probability, descending, ties
// by catalog order. The model is never cached across calls so each request
// reflects the latest labels.
func (s *Snapshot) RankWithForest(set solved.Set, topN, minSamples int) ([]Scored, error) {
	if topN <= 0 {
		return nil, nil
	}

	forest, err := s.TrainForest(set, minSamples)
	if err != nil {
		return nil, err
	}

	solvedTitles := set.Titles()
	scored := make([]Scored, 0, len(s.Rows))
	for i, r := range s.Rows {
		if _, ok := solvedTitles[catalog.NormalizeTitle(r.Title)]; ok {
			continue
		}
		scored = append(scored, Scored{Row: r, Score: forest.PredictProb(s.featureVector(i))})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}
