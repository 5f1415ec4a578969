package handler

import (
	"errors"

	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/pkg/response"
	"prep-pilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AppendHandler struct {
	uc *usecase.Append
}

func NewAppendHandler(uc *usecase.Append) *AppendHandler {
	return &AppendHandler{uc: uc}
}

func (h *AppendHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/append", h.Append)
}

func (h *AppendHandler) Append(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Could not read uploaded file", nil, err)
	}
	defer f.Close()

	rows, err := catalog.ParseCSV(f)
	if err != nil {
		if errors.Is(err, catalog.ErrNoTitleColumn) {
			return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Could not parse uploaded CSV", nil, err)
	}

	count, err := h.uc.Append(c.Context(), rows)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"appended": count})
}
