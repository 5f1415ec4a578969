package recommender

import (
	"testing"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/domain/solved"
)

func testRows() []catalog.Row {
	return []catalog.Row{
		{Title: "Two Sum", Difficulty: catalog.DifficultyEasy, Topics: []string{"array", "hash table"}},
		{Title: "Binary Search", Difficulty: catalog.DifficultyEasy, Topics: []string{"array", "binary search"}},
		{Title: "Climbing Stairs", Difficulty: catalog.DifficultyEasy, Topics: []string{"dynamic programming", "math"}},
		{Title: "Course Schedule", Difficulty: catalog.DifficultyMedium, Topics: []string{"graph", "topological sort"}},
	}
}

func testSnapshot(t *testing.T, rows []catalog.Row) *Snapshot {
	t.Helper()
	snap, err := buildSnapshot(rows, 0)
	if err != nil {
		t.Fatalf("build snapshot: %v", err)
	}
	return snap
}

func TestRank_ColdStart(t *testing.T) {
	snap := testSnapshot(t, testRows())

	out, err := snap.Rank(solved.Set{}, 2)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Row.Title != "Two Sum" || out[1].Row.Title != "Binary Search" {
		t.Fatalf("cold start must preserve catalog order, got %q, %q", out[0].Row.Title, out[1].Row.Title)
	}
	for _, sc := range out {
		if sc.Score != 0 {
			t.Fatalf("cold start score must be 0, got %v", sc.Score)
		}
	}
}

func TestRank_ColdStart_TopNOverCatalog(t *testing.T) {
	rows := testRows()
	snap := testSnapshot(t, rows)
	out, err := snap.Rank(solved.Set{}, 50)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(out) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(out))
	}
}

func TestRank_ExcludesSolved(t *testing.T) {
	snap := testSnapshot(t, testRows())

	set := solved.Set{Entries: []solved.Entry{
		{Title: "  TWO SUM ", Topics: []string{"array", "hash table"}},
	}}
	out, err := snap.Rank(set, 10)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	for _, sc := range out {
		if catalog.NormalizeTitle(sc.Row.Title) == "two sum" {
			t.Fatalf("solved problem leaked into ranking")
		}
	}
}

func TestRank_SimilarProblemFirst(t *testing.T) {
	rows := []catalog.Row{
		{Title: "two sum", Difficulty: catalog.DifficultyEasy, Topics: []string{"array", "hash table"}},
		{Title: "binary search", Difficulty: catalog.DifficultyEasy, Topics: []string{"array", "binary search"}},
	}
	snap := testSnapshot(t, rows)

	set := solved.Set{Entries: []solved.Entry{
		{Title: "two sum", Topics: []string{"array", "hash table"}},
	}}
	out, err := snap.Rank(set, 1)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 recommendation, got %d", len(out))
	}
	if out[0].Row.Title != "binary search" {
		t.Fatalf("expected binary search, got %q", out[0].Row.Title)
	}
	if out[0].Score <= 0 {
		t.Fatalf("expected positive similarity (shared array topic), got %v", out[0].Score)
	}
}

func TestRank_ZeroQueryVector(t *testing.T) {
	snap := testSnapshot(t, testRows())

	// Solved set whose text shares no vocabulary with the catalog.
	set := solved.Set{Entries: []solved.Entry{
		{Title: "zzzz qqqq", Topics: []string{"wwww"}},
	}}
	out, err := snap.Rank(set, 2)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	for _, sc := range out {
		if sc.Score != 0 {
			t.Fatalf("zero query must give 0 scores, got %v", sc.Score)
		}
	}
}
