package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"prep-pilot/internal/resume"
)

var (
	ErrNoResume       = errors.New("no resume provided")
	ErrResumeParse    = errors.New("could not extract text from resume")
	ErrRoleRequired   = errors.New("role is required")
	ErrRolesUntrained = errors.New("role profiles are not trained")
)

type ResumeInput struct {
	// PDF is set for file uploads; Text for pasted plain text.
	PDF     io.ReaderAt
	PDFSize int64
	Text    string
	Role    string
}

type Resume struct {
	matcher *resume.Matcher
}

func NewResumeUsecase(matcher *resume.Matcher) *Resume {
	return &Resume{matcher: matcher}
}

// Roles lists the role names a resume can be scored against.
func (u *Resume) Roles() []string {
	if u.matcher == nil {
		return nil
	}
	return u.matcher.Roles()
}

// Analyze extracts resume text and scores it against the requested role
// profile.
func (u *Resume) Analyze(_ context.Context, in ResumeInput) (resume.Analysis, error) {
	if u.matcher == nil {
		return resume.Analysis{}, ErrRolesUntrained
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		return resume.Analysis{}, ErrRoleRequired
	}

	text := strings.TrimSpace(in.Text)
	if text == "" && in.PDF != nil {
		extracted, err := resume.ExtractPDF(in.PDF, in.PDFSize)
		if err != nil {
			return resume.Analysis{}, ErrResumeParse
		}
		text = strings.TrimSpace(extracted)
	}
	if text == "" {
		return resume.Analysis{}, ErrNoResume
	}

	return u.matcher.Analyze(text, role)
}
