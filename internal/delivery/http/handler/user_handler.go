package handler

import (
	"errors"

	"prep-pilot/internal/delivery/http/dto"
	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/domain/user"
	"prep-pilot/internal/pkg/response"
	useruc "prep-pilot/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc *useruc.Service
}

func NewUserHandler(uc *useruc.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.GetMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := dto.UserResponse{
		ID:               usr.ID,
		Email:            usr.Email,
		LeetCodeUsername: usr.LeetCodeUsername,
		CreatedAt:        usr.CreatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
