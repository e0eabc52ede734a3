package controller

import (
	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/serverutils"
	"namdo-bot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	GetPreferences(ctx *fiber.Ctx) error
	SavePreference(ctx *fiber.Ctx) error
}

type userController struct {
	userService   service.IUserService
	jwtMiddleware fiber.Handler
}

func NewUserController(userService service.IUserService, jwtMiddleware fiber.Handler) IUserController {
	return &userController{userService: userService, jwtMiddleware: jwtMiddleware}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users/me", c.jwtMiddleware)
	h.Get("/", c.GetProfile)
	h.Put("/", c.UpdateProfile)
	h.Get("/preferences", c.GetPreferences)
	h.Post("/preferences", c.SavePreference)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) GetPreferences(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetPreferences(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User preferences", res))
}

func (c *userController) SavePreference(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.PreferenceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.SavePreference(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preference saved", res))
}
