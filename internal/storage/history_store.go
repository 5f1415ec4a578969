package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"prep-pilot/internal/domain/catalog"
)

// HistoryStore persists the titles already recommended to each user, so
// repeated requests don't resurface the same problems. Updates are
// read-merge-write; concurrent writers for the same user are last-writer-wins,
// which is acceptable for this data.
type HistoryStore struct {
	path string
	mu   sync.Mutex
}

func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Get returns the normalized titles previously recommended to the user.
// An unknown user or a missing backing file is an empty set, not an error.
func (s *HistoryStore) Get(userID string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hist, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{})
	for _, t := range hist[userID] {
		n := catalog.NormalizeTitle(t)
		if n != "" {
			out[n] = struct{}{}
		}
	}
	return out, nil
}

// Update merges titles into the user's set and persists. The file is re-read
// before merging so updates from other writers since our last read survive.
func (s *HistoryStore) Update(userID string, titles []string) error {
	if userID == "" || len(titles) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	hist, err := s.read()
	if err != nil {
		return err
	}

	merged := make(map[string]struct{}, len(hist[userID])+len(titles))
	for _, t := range hist[userID] {
		merged[catalog.NormalizeTitle(t)] = struct{}{}
	}
	for _, t := range titles {
		n := catalog.NormalizeTitle(t)
		if n != "" {
			merged[n] = struct{}{}
		}
	}
	delete(merged, "")

	list := make([]string, 0, len(merged))
	for t := range merged {
		list = append(list, t)
	}
	sort.Strings(list)
	hist[userID] = list

	return s.write(hist)
}

func (s *HistoryStore) read() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	hist := map[string][]string{}
	if len(data) == 0 {
		return hist, nil
	}
	if err := json.Unmarshal(data, &hist); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return hist, nil
}

func (s *HistoryStore) write(hist map[string][]string) error {
	data, err := json.MarshalIndent(hist, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
