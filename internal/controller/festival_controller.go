package controller

import (
	"context"
	"errors"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/serverutils"
	"namdo-bot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// FestivalSyncEnqueuer hands a sync run to the background worker.
type FestivalSyncEnqueuer interface {
	EnqueueFestivalSync(ctx context.Context, trigger string) (string, error)
}

type IFestivalController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
}

type festivalController struct {
	festivalService service.IFestivalService
	enqueuer        FestivalSyncEnqueuer
	jwtMiddleware   fiber.Handler
}

// NewFestivalController builds the festival routes. enqueuer may be nil, in
// which case a sync request runs inline.
func NewFestivalController(festivalService service.IFestivalService, enqueuer FestivalSyncEnqueuer, jwtMiddleware fiber.Handler) IFestivalController {
	return &festivalController{
		festivalService: festivalService,
		enqueuer:        enqueuer,
		jwtMiddleware:   jwtMiddleware,
	}
}

func (c *festivalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/festivals")
	h.Get("/", c.List)
	h.Post("/sync", c.jwtMiddleware, c.Sync)
	h.Get("/:contentId", c.Get)
}

func (c *festivalController) List(ctx *fiber.Ctx) error {
	var q dto.FestivalListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}

	res, err := c.festivalService.List(ctx.UserContext(), &q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Festivals", res))
}

func (c *festivalController) Get(ctx *fiber.Ctx) error {
	res, err := c.festivalService.Get(ctx.UserContext(), ctx.Params("contentId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Festival detail", res))
}

func (c *festivalController) Sync(ctx *fiber.Ctx) error {
	if c.enqueuer != nil {
		taskId, err := c.enqueuer.EnqueueFestivalSync(ctx.UserContext(), "api")
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			return fiber.NewError(fiber.StatusConflict, "A festival sync is already queued or running")
		}
		if err != nil {
			return err
		}
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Festival sync queued", dto.SyncResponse{
			Queued: true,
			TaskId: taskId,
		}))
	}

	report, err := c.festivalService.Sync(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Festival sync finished", dto.SyncResponse{Report: report}))
}
