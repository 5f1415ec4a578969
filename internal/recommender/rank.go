package recommender

import (
	"sort"
	"strings"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/textvec"
)

// Scored pairs a catalog row with its ranking score. For the similarity
// ranker the score is cosine similarity; for the re-ranker it is the
// predicted solve probability.
type Scored struct {
	Row   catalog.Row
	Score float64
}

// Rank scores every catalog row against the user's solved set and returns up
// to topN unsolved rows by descending cosine similarity, ties broken by
// catalog order. An empty solved set falls back to the first topN rows in
// catalog order with score 0.
func (s *Snapshot) Rank(set solved.Set, topN int) ([]Scored, error) {
	if topN <= 0 {
		return nil, nil
	}

	if set.Empty() {
		n := min(topN, len(s.Rows))
		out := make([]Scored, 0, n)
		for _, r := range s.Rows[:n] {
			out = append(out, Scored{Row: r})
		}
		return out, nil
	}

	texts := make([]string, 0, len(set.Entries))
	for _, e := range set.Entries {
		texts = append(texts, e.DerivedText())
	}
	query, err := s.Space.Transform(strings.Join(texts, " "))
	if err != nil {
		return nil, err
	}

	scored := make([]Scored, len(s.Rows))
	for i := range s.Rows {
		scored[i] = Scored{Row: s.Rows[i], Score: textvec.Cosine(query, s.Vectors[i])}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	solvedTitles := set.Titles()
	out := make([]Scored, 0, topN)
	for _, sc := range scored {
		if _, ok := solvedTitles[catalog.NormalizeTitle(sc.Row.Title)]; ok {
			continue
		}
		out = append(out, sc)
		if len(out) == topN {
			break
		}
	}
	return out, nil
}
