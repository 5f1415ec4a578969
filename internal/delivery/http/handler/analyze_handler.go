package handler

import (
	"prep-pilot/internal/pkg/response"
	"prep-pilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyzeHandler struct {
	uc *usecase.Analyze
}

func NewAnalyzeHandler(uc *usecase.Analyze) *AnalyzeHandler {
	return &AnalyzeHandler{uc: uc}
}

func (h *AnalyzeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/analyze", h.Analyze)
}

func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	upload, err := uploadedSolvedSet(c)
	if err != nil {
		return err
	}

	weak, err := h.uc.WeakTopics(c.Context(), c.FormValue("leetcode_username"), upload)
	if err != nil {
		return mapRecommendError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"weak_topics": weak})
}
