package usecase

import (
	"context"
	"fmt"

	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/links"
	"prep-pilot/internal/recommender"
)

const weakTopicsTopK = 8

// WeakTopicCard is one weak topic with study resource links.
type WeakTopicCard struct {
	Topic            string  `json:"topic"`
	ProficiencyScore float64 `json:"proficiency_score"`
	GfgLink          string  `json:"gfg_link"`
	StriverLink      string  `json:"striver_link"`
}

type Analyze struct {
	engine  *recommender.Engine
	fetcher SolvedFetcher
}

func NewAnalyzeUsecase(engine *recommender.Engine, fetcher SolvedFetcher) *Analyze {
	return &Analyze{engine: engine, fetcher: fetcher}
}

// WeakTopics scores the user's proficiency per catalog topic and returns the
// weakest ones with links to study material.
func (u *Analyze) WeakTopics(ctx context.Context, username string, upload *solved.Set) ([]WeakTopicCard, error) {
	set, err := resolveSolvedWith(ctx, u.fetcher, username, upload)
	if err != nil {
		return nil, err
	}

	snap, err := u.engine.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogStale, err)
	}

	weak := snap.WeakTopics(set, weakTopicsTopK)
	cards := make([]WeakTopicCard, 0, len(weak))
	for _, w := range weak {
		cards = append(cards, WeakTopicCard{
			Topic:            w.Topic,
			ProficiencyScore: w.Proficiency,
			GfgLink:          links.GeeksForGeeks(w.Topic),
			StriverLink:      links.StriverSearch(w.Topic),
		})
	}
	return cards, nil
}

func resolveSolvedWith(ctx context.Context, fetcher SolvedFetcher, username string, upload *solved.Set) (solved.Set, error) {
	if username != "" {
		set, err := fetcher.FetchSolved(ctx, username)
		if err != nil {
			return solved.Set{}, fmt.Errorf("%w: %v", ErrLeetCodeAPI, err)
		}
		return set, nil
	}
	if upload != nil {
		return *upload, nil
	}
	return solved.Set{}, ErrNoUserData
}
