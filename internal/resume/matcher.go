package resume

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"prep-pilot/internal/textvec"
)

var ErrUnknownRole = errors.New("resume: unknown role")

const missingKeywordLimit = 20

// Analysis is the result of scoring a resume against one role profile.
type Analysis struct {
	Score           float64
	MissingKeywords []string
	Message         string
}

// Matcher scores resume text against the trained role profiles. It is
// read-only after construction and safe for concurrent use.
type Matcher struct {
	profiles *Profiles
}

func NewMatcher(p *Profiles) *Matcher {
	return &Matcher{profiles: p}
}

// Roles lists the trained role names.
func (m *Matcher) Roles() []string {
	if m == nil || m.profiles == nil {
		return nil
	}
	return m.profiles.RoleNames()
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

func cleanText(text string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(text, " "))
}

// Analyze scores the resume text against the named role profile: cosine
// similarity scaled to 0–100 (two decimals), plus the highest-weighted role
// terms missing from the resume.
func (m *Matcher) Analyze(text, role string) (Analysis, error) {
	profile, ok := m.profiles.Roles[role]
	if !ok {
		return Analysis{}, ErrUnknownRole
	}

	cleaned := cleanText(text)
	vec, err := m.profiles.Model.Transform(cleaned)
	if err != nil {
		return Analysis{}, err
	}

	score := textvec.Cosine(vec, profile) * 100
	score = math.Round(score*100) / 100

	return Analysis{
		Score:           score,
		MissingKeywords: m.missingKeywords(cleaned, profile),
		Message:         "Analysis complete",
	}, nil
}

// missingKeywords returns the top role-profile terms, by descending weight,
// that do not appear in the resume.
func (m *Matcher) missingKeywords(cleaned string, profile textvec.Vector) []string {
	resumeTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(cleaned) {
		resumeTokens[tok] = struct{}{}
	}

	type weighted struct {
		term   string
		weight float64
	}
	terms := make([]weighted, 0, len(profile.Indices))
	for i, idx := range profile.Indices {
		terms = append(terms, weighted{term: m.profiles.Model.Terms[idx], weight: profile.Values[i]})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].weight > terms[j].weight
	})

	missing := make([]string, 0, missingKeywordLimit)
	for _, w := range terms {
		if _, ok := resumeTokens[w.term]; ok {
			continue
		}
		missing = append(missing, w.term)
		if len(missing) == missingKeywordLimit {
			break
		}
	}
	return missing
}
