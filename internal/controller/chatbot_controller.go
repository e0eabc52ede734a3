package controller

import (
	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/serverutils"
	"namdo-bot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Initialize(ctx *fiber.Ctx) error
	Greeting(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	jwtMiddleware  fiber.Handler
}

func NewChatbotController(chatbotService service.IChatbotService, jwtMiddleware fiber.Handler) IChatbotController {
	return &chatbotController{chatbotService: chatbotService, jwtMiddleware: jwtMiddleware}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	chat := r.Group("/chat", c.jwtMiddleware)
	chat.Post("/initialize", c.Initialize)
	chat.Post("/", c.Chat)
	chat.Get("/sessions", c.ListSessions)
	chat.Get("/:sessionId/messages", c.GetMessages)

	r.Post("/bot/greeting", c.jwtMiddleware, c.Greeting)
}

func (c *chatbotController) Initialize(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.InitializeChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Initialize(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation started", res))
}

func (c *chatbotController) Greeting(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GreetingRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Greeting(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Greeting", res))
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Chat(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat response", res))
}

func (c *chatbotController) ListSessions(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.ListSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation sessions", res))
}

func (c *chatbotController) GetMessages(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.GetMessages(ctx.UserContext(), userId, ctx.Params("sessionId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation messages", res))
}
