package handler

import (
	"prep-pilot/internal/pkg/response"
	"prep-pilot/internal/recommender"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	engine *recommender.Engine
}

func NewHealthHandler(engine *recommender.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]any{
		"engine_ready": h.engine != nil && h.engine.Ready(),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
