package solved

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"prep-pilot/internal/domain/catalog"
)

var ErrNoTitleColumn = errors.New("uploaded data has no title column")

// statusColumns are the header names accepted as the success label, in
// priority order.
var statusColumns = []string{"status", "solved", "is_solved", "result"}

// ParseCSV decodes an uploaded CSV into a Set. The header decides which
// columns are present; only title is required. Rows with a blank title are
// skipped.
func ParseCSV(r io.Reader) (Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Set{}, ErrNoTitleColumn
		}
		return Set{}, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	titleIdx, ok := col["title"]
	if !ok {
		return Set{}, ErrNoTitleColumn
	}

	statusIdx := -1
	for _, name := range statusColumns {
		if i, ok := col[name]; ok {
			statusIdx = i
			break
		}
	}

	field := func(rec []string, idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	diffIdx := -1
	if i, ok := col["difficulty"]; ok {
		diffIdx = i
	}
	topicsIdx := -1
	if i, ok := col["topic_tags"]; ok {
		topicsIdx = i
	}

	var set Set
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Set{}, fmt.Errorf("read csv row: %w", err)
		}

		title := field(rec, titleIdx)
		if title == "" {
			continue
		}
		set.Entries = append(set.Entries, Entry{
			Title:      title,
			Difficulty: catalog.ParseDifficulty(field(rec, diffIdx)),
			Topics:     catalog.SplitTopics(field(rec, topicsIdx)),
			Status:     field(rec, statusIdx),
		})
	}
	return set, nil
}
