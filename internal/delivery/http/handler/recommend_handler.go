package handler

import (
	"errors"
	"mime/multipart"

	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/pkg/response"
	"prep-pilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendHandler struct {
	uc *usecase.Recommend
}

type recommendMoreRequest struct {
	LeetCodeUsername string   `json:"leetcode_username"`
	Seen             []string `json:"seen"`
	PageSize         int      `json:"page_size"`
}

func NewRecommendHandler(uc *usecase.Recommend) *RecommendHandler {
	return &RecommendHandler{uc: uc}
}

func (h *RecommendHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/recommend", h.Recommend)
	r.Post("/recommend/more", h.More)
}

func (h *RecommendHandler) Recommend(c fiber.Ctx) error {
	upload, err := uploadedSolvedSet(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Recommend(c.Context(), usecase.RecommendInput{
		LeetCodeUsername: c.FormValue("leetcode_username"),
		Upload:           upload,
	})
	if err != nil {
		return mapRecommendError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// More accepts a JSON body; when none is sent it falls back to form fields
// like Recommend.
func (h *RecommendHandler) More(c fiber.Ctx) error {
	var req recommendMoreRequest
	if err := c.Bind().Body(&req); err != nil || req.LeetCodeUsername == "" {
		req.LeetCodeUsername = c.FormValue("leetcode_username")
	}

	var upload *solved.Set
	if req.LeetCodeUsername == "" {
		var err error
		upload, err = uploadedSolvedSet(c)
		if err != nil {
			return err
		}
	}

	cards, err := h.uc.More(c.Context(), usecase.MoreInput{
		LeetCodeUsername: req.LeetCodeUsername,
		Upload:           upload,
		Seen:             req.Seen,
		PageSize:         req.PageSize,
	})
	if err != nil {
		return mapRecommendError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"recommended": cards})
}

// uploadedSolvedSet parses the optional "file" form upload. A missing file
// is not an error here; the usecase decides whether user data was required.
func uploadedSolvedSet(c fiber.Ctx) (*solved.Set, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return nil, nil
	}
	set, err := parseSolvedUpload(fh)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}
	return set, nil
}

func parseSolvedUpload(fh *multipart.FileHeader) (*solved.Set, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := solved.ParseCSV(f)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func mapRecommendError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoUserData):
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded and no LeetCode username provided", nil, err)
	case errors.Is(err, usecase.ErrLeetCodeAPI):
		return middleware.NewAppError(fiber.StatusBadRequest, "LeetCode API error", nil, err)
	case errors.Is(err, usecase.ErrCatalogStale):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "System data load error, try again shortly", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
