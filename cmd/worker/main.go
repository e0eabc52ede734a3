package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"namdo-bot-be/internal/bootstrap"
	"namdo-bot-be/internal/config"
	"namdo-bot-be/internal/queue"
	"namdo-bot-be/internal/tracer"
	"namdo-bot-be/pkg/database"

	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.Init(cfg.Otel)
	defer shutdownTracer(context.Background())

	db, err := database.Open(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Close()

	redisOpt := queue.RedisOpt(cfg)
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			queue.QueueDefault: 1,
		},
	})

	registry := queue.NewHandlersRegistry()
	syncHandler := queue.NewFestivalSyncHandler(container.FestivalService, container.Logger)
	registry.Register(queue.TypeFestivalSync, asynq.HandlerFunc(syncHandler.ProcessTask))

	scheduler, err := queue.NewScheduler(redisOpt, cfg.Festival.SyncCron)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()
	log.Printf("[INFO] Festival sync scheduled with cron %q", cfg.Festival.SyncCron)

	if err := srv.Start(registry.Mux()); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}
	log.Printf("[INFO] Worker started for regions %v", cfg.Festival.Regions)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	srv.Shutdown()
}
