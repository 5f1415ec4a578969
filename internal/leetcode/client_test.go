package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prep-pilot/internal/domain/catalog"
)

func noSleep(_ context.Context, _ time.Duration) error { return nil }

func pageServer(t *testing.T, pages [][]map[string]any) *httptest.Server {
	t.Helper()
	call := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if q, _ := req["query"].(string); !strings.Contains(q, "problemsetQuestionList") {
			t.Errorf("unexpected query: %s", q)
		}

		var questions []map[string]any
		if call < len(pages) {
			questions = pages[call]
		}
		call++

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"problemsetQuestionList": map[string]any{
					"total":     4,
					"questions": questions,
				},
			},
		})
	}))
}

func question(title, difficulty, status string, topics ...string) map[string]any {
	tags := make([]map[string]string, 0, len(topics))
	for _, tp := range topics {
		tags = append(tags, map[string]string{"name": tp})
	}
	return map[string]any{
		"title":      title,
		"difficulty": difficulty,
		"status":     status,
		"topicTags":  tags,
	}
}

func TestFetchSolved_PaginatesAndKeepsAccepted(t *testing.T) {
	srv := pageServer(t, [][]map[string]any{
		{
			question("Two Sum", "Easy", "ac", "Array", "Hash Table"),
			question("Hard One", "Hard", "notac", "Graph"),
		},
		{
			question("Binary Search", "Easy", "ac", "Binary Search"),
		},
	})
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	c.sleep = noSleep

	set, err := c.FetchSolved(context.Background(), "alice")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(set.Entries) != 2 {
		t.Fatalf("expected 2 accepted problems, got %d", len(set.Entries))
	}

	first := set.Entries[0]
	if first.Title != "Two Sum" || first.Status != "solved" {
		t.Fatalf("unexpected entry: %+v", first)
	}
	if first.Difficulty != catalog.DifficultyEasy {
		t.Fatalf("difficulty not parsed: %v", first.Difficulty)
	}
	if len(first.Topics) != 2 || first.Topics[0] != "array" {
		t.Fatalf("topics must be lowercased: %v", first.Topics)
	}
}

func TestFetchSolved_EmptyUsername(t *testing.T) {
	c := NewClient("http://unused", nil)
	c.sleep = noSleep

	if _, err := c.FetchSolved(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty username")
	}
}

func TestFetchSolved_GraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"message": "user not found"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	c.sleep = noSleep

	_, err := c.FetchSolved(context.Background(), "ghost")
	if err == nil || !strings.Contains(err.Error(), "user not found") {
		t.Fatalf("expected graphql error, got %v", err)
	}
}

func TestFetchSolved_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	c.sleep = noSleep

	_, err := c.FetchSolved(context.Background(), "alice")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}
