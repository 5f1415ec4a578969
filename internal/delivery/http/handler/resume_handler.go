package handler

import (
	"bytes"
	"errors"
	"io"

	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/pkg/response"
	"prep-pilot/internal/resume"
	"prep-pilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc *usecase.Resume
}

func NewResumeHandler(uc *usecase.Resume) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/resume/analyze", h.Analyze)
	r.Get("/resume/roles", h.Roles)
}

func (h *ResumeHandler) Roles(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"roles": h.uc.Roles()})
}

// Analyze takes a multipart resume upload (or a pasted "text" field) plus
// the target role and returns the match score with missing keywords.
func (h *ResumeHandler) Analyze(c fiber.Ctx) error {
	in := usecase.ResumeInput{
		Role: c.FormValue("role"),
		Text: c.FormValue("text"),
	}

	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Could not read uploaded resume", nil, err)
		}
		defer f.Close()

		// pdf parsing needs random access, so buffer the upload
		buf, err := io.ReadAll(f)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Could not read uploaded resume", nil, err)
		}
		in.PDF = bytes.NewReader(buf)
		in.PDFSize = int64(len(buf))
	}

	analysis, err := h.uc.Analyze(c.Context(), in)
	if err != nil {
		return mapResumeError(err)
	}

	data := map[string]any{
		"score":            analysis.Score,
		"missing_keywords": analysis.MissingKeywords,
		"message":          analysis.Message,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapResumeError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoResume),
		errors.Is(err, usecase.ErrRoleRequired),
		errors.Is(err, usecase.ErrResumeParse):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, resume.ErrUnknownRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown role", nil, err)
	case errors.Is(err, usecase.ErrRolesUntrained):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Role profiles are not trained", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
