package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV_Rows(t *testing.T) {
	in := "title,difficulty,topic_tags,company\nTwo Sum,Easy,\"Array, Hash Table\",Google\n"
	rows, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row.Title != "Two Sum" || row.Difficulty != DifficultyEasy || row.Company != "Google" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if len(row.Topics) != 2 || row.Topics[0] != "array" || row.Topics[1] != "hash table" {
		t.Fatalf("topics must be split and lowercased: %v", row.Topics)
	}
}

func TestParseCSV_NoTitleColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("difficulty,company\neasy,Google\n"))
	if !errors.Is(err, ErrNoTitleColumn) {
		t.Fatalf("expected ErrNoTitleColumn, got %v", err)
	}
}

func TestParseCSV_MissingOptionalColumns(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("title\nTwo Sum\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 || rows[0].Difficulty != DifficultyUnknown || len(rows[0].Topics) != 0 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
