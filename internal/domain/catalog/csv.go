package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoTitleColumn = errors.New("uploaded data has no title column")

// ParseCSV decodes uploaded catalog rows. Only the title column is
// required; missing difficulty, topic_tags, and company fields come back
// zero-valued. Rows with a blank title are skipped.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTitleColumn
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, ErrNoTitleColumn
	}

	field := func(rec []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		title := field(rec, "title")
		if title == "" {
			continue
		}
		rows = append(rows, Row{
			Title:      title,
			Difficulty: ParseDifficulty(field(rec, "difficulty")),
			Topics:     SplitTopics(field(rec, "topic_tags")),
			Company:    field(rec, "company"),
		})
	}
	return rows, nil
}
