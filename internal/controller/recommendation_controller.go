package controller

import (
	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/serverutils"
	"namdo-bot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	GetRecommendations(ctx *fiber.Ctx) error
	Finalize(ctx *fiber.Ctx) error
}

type recommendationController struct {
	recommendationService service.IRecommendationService
	jwtMiddleware         fiber.Handler
}

func NewRecommendationController(recommendationService service.IRecommendationService, jwtMiddleware fiber.Handler) IRecommendationController {
	return &recommendationController{recommendationService: recommendationService, jwtMiddleware: jwtMiddleware}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	r.Get("/recommendations/:sessionId", c.jwtMiddleware, c.GetRecommendations)
	r.Post("/bot/finalize", c.jwtMiddleware, c.Finalize)
}

func (c *recommendationController) GetRecommendations(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.recommendationService.GetRecommendations(ctx.UserContext(), userId, ctx.Params("sessionId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Festival recommendations", res))
}

func (c *recommendationController) Finalize(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.FinalizeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.Finalize(ctx.UserContext(), userId, req.SessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Final recommendation", res))
}
