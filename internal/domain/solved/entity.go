package solved

import (
	"strings"

	"prep-pilot/internal/domain/catalog"
)

// Entry is one problem from a user's solved-problem data. Status carries the
// raw success label if the source had one; empty means no label.
type Entry struct {
	Title      string
	Difficulty catalog.Difficulty
	Topics     []string
	Status     string
}

// IsPositive reports whether a raw status label counts as a success.
func IsPositive(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "1", "true", "t", "yes", "solved":
		return true
	default:
		return false
	}
}

// Solved reports whether the entry's status label counts as a success.
func (e Entry) Solved() bool {
	return IsPositive(e.Status)
}

// DerivedText mirrors catalog.Row.DerivedText for user-supplied rows.
func (e Entry) DerivedText() string {
	return strings.TrimSpace(strings.Join(e.Topics, " ") + " " + e.Title)
}

// Set is a user's solved-problem set, supplied per request and never persisted.
type Set struct {
	Entries []Entry
}

func (s Set) Empty() bool {
	return len(s.Entries) == 0
}

// Titles returns the normalized titles present in the set.
func (s Set) Titles() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		t := catalog.NormalizeTitle(e.Title)
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

// HasStatus reports whether any entry carries a success/failure label. The
// weak-topic heuristic and the re-ranker behave differently without labels.
func (s Set) HasStatus() bool {
	for _, e := range s.Entries {
		if strings.TrimSpace(e.Status) != "" {
			return true
		}
	}
	return false
}

// StatusByTitle maps normalized title to the raw status label for entries
// that have one. Later duplicates win, matching the source data order.
func (s Set) StatusByTitle() map[string]string {
	out := make(map[string]string)
	for _, e := range s.Entries {
		t := catalog.NormalizeTitle(e.Title)
		if t == "" {
			continue
		}
		if st := strings.TrimSpace(e.Status); st != "" {
			out[t] = st
		}
	}
	return out
}
