package recommender

import (
	"sort"

	"prep-pilot/internal/domain/solved"
)

// TopicScore pairs a topic with the user's proficiency in [0,1];
// lower means weaker.
type TopicScore struct {
	Topic       string
	Proficiency float64
}

// WeakTopics scores every topic in the catalog for the user and returns the
// topK weakest in ascending proficiency.
//
// This is a heuristic, not a learned model:
//   - topic never attempted → 0.0 (maximally weak)
//   - attempted with status labels → success / attempted
//   - attempted without labels → 0.4 + min(0.5, attempted/50), i.e. presence
//     implies partial familiarity, capped.
func (s *Snapshot) WeakTopics(set solved.Set, topK int) []TopicScore {
	if topK <= 0 {
		return nil
	}

	attempted := make(map[string]int)
	succeeded := make(map[string]int)
	for _, e := range set.Entries {
		for _, topic := range e.Topics {
			attempted[topic]++
			if e.Solved() {
				succeeded[topic]++
			}
		}
	}
	hasStatus := set.HasStatus()

	scores := make([]TopicScore, 0, len(s.topicCounts))
	for topic := range s.topicCounts {
		n := attempted[topic]
		var p float64
		switch {
		case n == 0:
			p = 0.0
		case hasStatus:
			p = float64(succeeded[topic]) / float64(n)
		default:
			p = 0.4 + min(0.5, float64(n)/50)
		}
		scores = append(scores, TopicScore{Topic: topic, Proficiency: p})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Proficiency != scores[j].Proficiency {
			return scores[i].Proficiency < scores[j].Proficiency
		}
		return scores[i].Topic < scores[j].Topic
	})
	if len(scores) > topK {
		scores = scores[:topK]
	}
	return scores
}
