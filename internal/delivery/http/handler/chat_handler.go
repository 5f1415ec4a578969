package handler

import (
	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/pkg/response"
	"prep-pilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc *usecase.Chat
}

type chatRequest struct {
	Message          string `json:"message"`
	LeetCodeUsername string `json:"leetcode_username"`
	FileContent      string `json:"file_content"`
}

func NewChatHandler(uc *usecase.Chat) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/chat", h.Chat)
}

func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var req chatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Chat(c.Context(), usecase.ChatInput{
		Message:          req.Message,
		LeetCodeUsername: req.LeetCodeUsername,
		FileContent:      req.FileContent,
	})
	if err != nil {
		return mapRecommendError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
