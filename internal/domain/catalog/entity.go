package catalog

import "strings"

// Difficulty is the problem difficulty bucket as stored in the catalog.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = "unknown"
)

func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// Ordinal encodes difficulty as a single numeric feature for the re-ranker.
func (d Difficulty) Ordinal() float64 {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return -1
	}
}

func (d Difficulty) String() string {
	if d == "" {
		return string(DifficultyUnknown)
	}
	return string(d)
}

// Row is one practice problem in the catalog. Title is the join key across
// every subsystem; always compare titles through NormalizeTitle.
type Row struct {
	Title      string
	Difficulty Difficulty
	Topics     []string
	Company    string
}

// NormalizeTitle lowercases and trims a title for comparison and storage keys.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SplitTopics turns a comma-delimited tag field into trimmed lowercase topics.
func SplitTopics(raw string) []string {
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			topics = append(topics, p)
		}
	}
	return topics
}

// JoinTopics is the storage form of a topic list (comma-delimited).
func JoinTopics(topics []string) string {
	return strings.Join(topics, ",")
}

// DerivedText is the text field the vector space is built over:
// topic tags followed by the title.
func (r Row) DerivedText() string {
	return strings.TrimSpace(strings.Join(r.Topics, " ") + " " + r.Title)
}
