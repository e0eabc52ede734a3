package controller

import (
	"context"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Version = "1.0.0"

type IHealthController interface {
	RegisterRoutes(app *fiber.App)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	ping func(ctx context.Context) error
}

func NewHealthController(ping func(ctx context.Context) error) IHealthController {
	return &healthController{ping: ping}
}

func (c *healthController) RegisterRoutes(app *fiber.App) {
	app.Get("/", c.Root)
	app.Get("/api/health", c.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Namdo festival chatbot API", fiber.Map{
		"service": "namdo-bot-be",
		"version": Version,
	}))
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	res := dto.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	}

	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()
	if err := c.ping(pingCtx); err != nil {
		res.Status = "unhealthy"
		res.Database = "disconnected"
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.Response[dto.HealthResponse]{
			Success: false,
			Code:    fiber.StatusServiceUnavailable,
			Message: err.Error(),
			Data:    res,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}
