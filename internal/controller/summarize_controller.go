package controller

import (
	"notesum-be/internal/dto"
	"notesum-be/internal/pkg/apperrors"
	"notesum-be/internal/pkg/serverutils"
	"notesum-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummarizeController interface {
	RegisterRoutes(r fiber.Router)
	Summarize(ctx *fiber.Ctx) error
}

type summarizeController struct {
	summarizeService service.ISummarizeService
}

func NewSummarizeController(summarizeService service.ISummarizeService) ISummarizeController {
	return &summarizeController{
		summarizeService: summarizeService,
	}
}

func (c *summarizeController) RegisterRoutes(r fiber.Router) {
	r.Post("/summarize", serverutils.JwtMiddleware, c.Summarize)
}

// Summarize exposes the relay endpoint. Its wire contract is fixed:
// 200 {summary}, 400 missing text, 503 upstream model unavailable, 500 otherwise.
func (c *summarizeController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input. Text is required."})
	}

	summary, err := c.summarizeService.Summarize(ctx.Context(), req.Text)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return ctx.Status(appErr.Code).JSON(fiber.Map{"error": appErr.Message})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to summarize text"})
	}

	return ctx.JSON(dto.SummarizeResponse{Summary: summary})
}
