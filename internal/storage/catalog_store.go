// Package storage holds the flat-file stores backing the recommender:
// the problem catalog (CSV), per-user recommendation history (JSON) and the
// registered users file (JSON).
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"prep-pilot/internal/domain/catalog"
)

var ErrCatalogNotFound = errors.New("catalog file not found")

var catalogHeader = []string{"title", "difficulty", "topic_tags", "company"}

// CatalogStore reads and appends the problem catalog CSV. Existing rows are
// never rewritten or reordered; Append only adds new rows at the end.
type CatalogStore struct {
	path string
	mu   sync.Mutex
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads every catalog row. Missing columns decode as empty values; a
// missing file is ErrCatalogNotFound.
func (s *CatalogStore) Load() ([]catalog.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *CatalogStore) loadLocked() ([]catalog.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, s.path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(rec []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	var rows []catalog.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		title := field(rec, "title")
		if title == "" {
			continue
		}
		rows = append(rows, catalog.Row{
			Title:      title,
			Difficulty: catalog.ParseDifficulty(field(rec, "difficulty")),
			Topics:     catalog.SplitTopics(field(rec, "topic_tags")),
			Company:    field(rec, "company"),
		})
	}
	return rows, nil
}

// Append adds the rows whose normalized title is not already present and
// returns the count actually written. Zero is a valid result. New rows are
// flushed before returning.
func (s *CatalogStore) Append(rows []catalog.Row) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadLocked()
	if err != nil && !errors.Is(err, ErrCatalogNotFound) {
		return 0, err
	}
	titles := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		titles[catalog.NormalizeTitle(r.Title)] = struct{}{}
	}

	var fresh []catalog.Row
	for _, r := range rows {
		t := catalog.NormalizeTitle(r.Title)
		if t == "" {
			continue
		}
		if _, ok := titles[t]; ok {
			continue
		}
		titles[t] = struct{}{}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	newFile := errors.Is(err, ErrCatalogNotFound)
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open catalog for append: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if newFile {
		if err := cw.Write(catalogHeader); err != nil {
			return 0, fmt.Errorf("write catalog header: %w", err)
		}
	}
	for _, r := range fresh {
		rec := []string{r.Title, r.Difficulty.String(), catalog.JoinTopics(r.Topics), r.Company}
		if err := cw.Write(rec); err != nil {
			return 0, fmt.Errorf("write catalog row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush catalog: %w", err)
	}
	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("sync catalog: %w", err)
	}
	return len(fresh), nil
}
