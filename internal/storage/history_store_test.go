package storage

import (
	"path/filepath"
	"testing"
)

func TestHistoryStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewHistoryStore(path)

	got, err := s.Get("alice")
	if err != nil {
		t.Fatalf("get on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}

	if err := s.Update("alice", []string{"Two Sum"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = s.Get("alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got["two sum"]; !ok || len(got) != 1 {
		t.Fatalf("expected {two sum}, got %v", got)
	}

	if err := s.Update("alice", []string{"Binary Search"}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	got, _ = s.Get("alice")
	if len(got) != 2 {
		t.Fatalf("expected merged set of 2, got %v", got)
	}
	if _, ok := got["binary search"]; !ok {
		t.Fatalf("missing merged title: %v", got)
	}

	// A second store over the same file sees persisted state.
	other, err := NewHistoryStore(path).Get("alice")
	if err != nil {
		t.Fatalf("get via new store: %v", err)
	}
	if len(other) != 2 {
		t.Fatalf("expected persisted set of 2, got %v", other)
	}
}

func TestHistoryStore_IsolatesUsers(t *testing.T) {
	s := NewHistoryStore(filepath.Join(t.TempDir(), "history.json"))
	if err := s.Update("alice", []string{"Two Sum"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.Get("bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set for bob, got %v", got)
	}
}
