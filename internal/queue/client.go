package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"namdo-bot-be/internal/config"

	"github.com/hibiken/asynq"
)

const festivalSyncTimeout = 30 * time.Minute

// RedisOpt builds the asynq connection from REDIS_URL, keeping credentials
// and the db index when the URL carries them.
func RedisOpt(cfg *config.Config) asynq.RedisConnOpt {
	if opt, err := asynq.ParseRedisURI(cfg.App.RedisURL); err == nil {
		return opt
	}
	return asynq.RedisClientOpt{Addr: cfg.Queue.RedisAddr}
}

type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func festivalSyncOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(festivalSyncTimeout),
		asynq.TaskID(FestivalSyncTaskID),
	}
}

// EnqueueFestivalSync queues a sync run. While another run is pending or
// active the call fails with asynq.ErrTaskIDConflict.
func (c *Client) EnqueueFestivalSync(ctx context.Context, trigger string) (string, error) {
	return c.enqueue(ctx, TypeFestivalSync, FestivalSyncPayload{Trigger: trigger}, festivalSyncOptions()...)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(taskType, data)
	info, err := c.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return info.ID, nil
}
