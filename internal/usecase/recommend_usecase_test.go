package usecase

import (
	"context"
	"errors"
	"testing"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/recommender"
)

func testCatalog() []catalog.Row {
	return []catalog.Row{
		{Title: "Two Sum", Difficulty: catalog.DifficultyEasy, Topics: []string{"array", "hash table"}},
		{Title: "Binary Search", Difficulty: catalog.DifficultyEasy, Topics: []string{"array", "binary search"}},
		{Title: "Climbing Stairs", Difficulty: catalog.DifficultyEasy, Topics: []string{"dynamic programming", "math"}},
		{Title: "Course Schedule", Difficulty: catalog.DifficultyMedium, Topics: []string{"graph", "topological sort"}},
	}
}

type staticLoader struct {
	rows []catalog.Row
}

func (l *staticLoader) Load() ([]catalog.Row, error) { return l.rows, nil }

type fakeFetcher struct {
	set solved.Set
	err error
}

func (f *fakeFetcher) FetchSolved(_ context.Context, _ string) (solved.Set, error) {
	return f.set, f.err
}

type fakeHistory struct {
	data    map[string]map[string]struct{}
	getErr  error
	updates map[string][]string
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{
		data:    make(map[string]map[string]struct{}),
		updates: make(map[string][]string),
	}
}

func (f *fakeHistory) Get(userID string) (map[string]struct{}, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[string]struct{})
	for t := range f.data[userID] {
		out[t] = struct{}{}
	}
	return out, nil
}

func (f *fakeHistory) Update(userID string, titles []string) error {
	f.updates[userID] = append(f.updates[userID], titles...)
	if f.data[userID] == nil {
		f.data[userID] = make(map[string]struct{})
	}
	for _, t := range titles {
		f.data[userID][catalog.NormalizeTitle(t)] = struct{}{}
	}
	return nil
}

func newTestRecommend(t *testing.T, fetcher *fakeFetcher, history *fakeHistory) *Recommend {
	t.Helper()
	engine := recommender.NewEngine(&staticLoader{rows: testCatalog()}, 0, nil)
	return NewRecommendUsecase(engine, fetcher, history, 10, nil)
}

func solvedTwoSum() solved.Set {
	return solved.Set{Entries: []solved.Entry{
		{Title: "Two Sum", Topics: []string{"array", "hash table"}, Status: "solved"},
	}}
}

func TestRecommend_NoUserData(t *testing.T) {
	uc := newTestRecommend(t, &fakeFetcher{}, newFakeHistory())

	_, err := uc.Recommend(context.Background(), RecommendInput{})
	if !errors.Is(err, ErrNoUserData) {
		t.Fatalf("expected ErrNoUserData, got %v", err)
	}
}

func TestRecommend_FetcherErrorSurfaces(t *testing.T) {
	uc := newTestRecommend(t, &fakeFetcher{err: errors.New("boom")}, newFakeHistory())

	_, err := uc.Recommend(context.Background(), RecommendInput{LeetCodeUsername: "alice"})
	if !errors.Is(err, ErrLeetCodeAPI) {
		t.Fatalf("expected ErrLeetCodeAPI, got %v", err)
	}
}

func TestRecommend_ExcludesSolvedAndPersistsHistory(t *testing.T) {
	history := newFakeHistory()
	uc := newTestRecommend(t, &fakeFetcher{set: solvedTwoSum()}, history)

	out, err := uc.Recommend(context.Background(), RecommendInput{LeetCodeUsername: "alice"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(out.Recommended) == 0 {
		t.Fatalf("expected recommendations")
	}
	for _, card := range out.Recommended {
		if catalog.NormalizeTitle(card.Title) == "two sum" {
			t.Fatalf("solved problem must not be recommended")
		}
		if card.GfgLink == "" || card.StriverLink == "" {
			t.Fatalf("cards must carry study links, got %+v", card)
		}
	}
	if len(history.updates["alice"]) == 0 {
		t.Fatalf("recommended titles must be persisted to history")
	}
}

func TestRecommend_OthersExcludeSolvedAndRecommended(t *testing.T) {
	uc := newTestRecommend(t, &fakeFetcher{set: solvedTwoSum()}, newFakeHistory())

	out, err := uc.Recommend(context.Background(), RecommendInput{LeetCodeUsername: "alice"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	seen := map[string]struct{}{"two sum": {}}
	for _, card := range out.Recommended {
		seen[catalog.NormalizeTitle(card.Title)] = struct{}{}
	}
	for _, card := range out.Others {
		if _, dup := seen[catalog.NormalizeTitle(card.Title)]; dup {
			t.Fatalf("others must not repeat solved or recommended titles, got %q", card.Title)
		}
	}
}

func TestRecommend_HistoryFiltersRecommendations(t *testing.T) {
	history := newFakeHistory()
	history.data["alice"] = map[string]struct{}{"binary search": {}}
	uc := newTestRecommend(t, &fakeFetcher{set: solvedTwoSum()}, history)

	out, err := uc.Recommend(context.Background(), RecommendInput{LeetCodeUsername: "alice"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, card := range out.Recommended {
		if catalog.NormalizeTitle(card.Title) == "binary search" {
			t.Fatalf("previously recommended title must be filtered")
		}
	}
}

func TestRecommend_HistoryReadFailureIsNotFatal(t *testing.T) {
	history := newFakeHistory()
	history.getErr = errors.New("disk gone")
	uc := newTestRecommend(t, &fakeFetcher{set: solvedTwoSum()}, history)

	if _, err := uc.Recommend(context.Background(), RecommendInput{LeetCodeUsername: "alice"}); err != nil {
		t.Fatalf("history read failure must not fail the request: %v", err)
	}
}

func TestRecommend_UploadPath(t *testing.T) {
	uc := newTestRecommend(t, &fakeFetcher{err: errors.New("must not be called")}, newFakeHistory())

	set := solvedTwoSum()
	out, err := uc.Recommend(context.Background(), RecommendInput{Upload: &set})
	if err != nil {
		t.Fatalf("recommend with upload: %v", err)
	}
	if len(out.Recommended) == 0 {
		t.Fatalf("expected recommendations from uploaded set")
	}
}

func TestMore_SkipsSeenAndPages(t *testing.T) {
	uc := newTestRecommend(t, &fakeFetcher{set: solvedTwoSum()}, newFakeHistory())

	cards, err := uc.More(context.Background(), MoreInput{
		LeetCodeUsername: "alice",
		Seen:             []string{"Binary Search"},
		PageSize:         1,
	})
	if err != nil {
		t.Fatalf("more: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected exactly one page entry, got %d", len(cards))
	}
	got := catalog.NormalizeTitle(cards[0].Title)
	if got == "binary search" || got == "two sum" {
		t.Fatalf("seen and solved titles must be skipped, got %q", cards[0].Title)
	}
}

func TestMore_SkipsHistory(t *testing.T) {
	history := newFakeHistory()
	history.data["alice"] = map[string]struct{}{
		"binary search":   {},
		"climbing stairs": {},
		"course schedule": {},
	}
	uc := newTestRecommend(t, &fakeFetcher{set: solvedTwoSum()}, history)

	cards, err := uc.More(context.Background(), MoreInput{LeetCodeUsername: "alice", PageSize: 10})
	if err != nil {
		t.Fatalf("more: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("everything is history or solved, expected no cards, got %d", len(cards))
	}
}
