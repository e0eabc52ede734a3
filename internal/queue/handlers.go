package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/service"
	"namdo-bot-be/pkg/tourapi"

	"github.com/hibiken/asynq"
)

type HandlersRegistry struct {
	mux *asynq.ServeMux
}

func NewHandlersRegistry() *HandlersRegistry {
	return &HandlersRegistry{
		mux: asynq.NewServeMux(),
	}
}

func (r *HandlersRegistry) Register(taskType string, handler asynq.Handler) {
	r.mux.Handle(taskType, handler)
}

func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}

type FestivalSyncHandler struct {
	festivalService service.IFestivalService
	logger          logger.ILogger
}

func NewFestivalSyncHandler(festivalService service.IFestivalService, log logger.ILogger) *FestivalSyncHandler {
	return &FestivalSyncHandler{festivalService: festivalService, logger: log}
}

func (h *FestivalSyncHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload FestivalSyncPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
		}
	}

	h.logger.Info("WORKER", "Festival sync started", map[string]interface{}{"trigger": payload.Trigger})

	report, err := h.festivalService.Sync(ctx)
	if err != nil {
		h.logger.Error("WORKER", "Festival sync failed", map[string]interface{}{"error": err})
		if errors.Is(err, tourapi.ErrMissingServiceKey) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	h.logger.Info("WORKER", "Festival sync finished", map[string]interface{}{
		"total":  report.Total,
		"failed": report.Failed,
	})
	return nil
}

// NewScheduler registers the periodic festival sync on the given cron spec.
func NewScheduler(opt asynq.RedisConnOpt, cronSpec string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(opt, nil)
	data, err := json.Marshal(FestivalSyncPayload{Trigger: "schedule"})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cronSpec, asynq.NewTask(TypeFestivalSync, data), festivalSyncOptions()...); err != nil {
		return nil, fmt.Errorf("register %s schedule: %w", TypeFestivalSync, err)
	}
	return scheduler, nil
}
