package bootstrap

import (
	"context"
	"log"

	"namdo-bot-be/internal/config"
	"namdo-bot-be/internal/controller"
	"namdo-bot-be/internal/metrics"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/pkg/serverutils"
	"namdo-bot-be/internal/queue"
	"namdo-bot-be/internal/repository/contract"
	"namdo-bot-be/internal/repository/memory"
	"namdo-bot-be/internal/repository/rediscache"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/internal/service"
	"namdo-bot-be/pkg/conversation"
	"namdo-bot-be/pkg/events"
	"namdo-bot-be/pkg/llm/factory"
	pktNats "namdo-bot-be/pkg/nats"
	"namdo-bot-be/pkg/tourapi"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const natsStream = "NAMDO_EVENTS"

type Container struct {
	// Controllers
	HealthController         controller.IHealthController
	AuthController           controller.IAuthController
	UserController           controller.IUserController
	ChatbotController        controller.IChatbotController
	RecommendationController controller.IRecommendationController
	FestivalController       controller.IFestivalController

	// Background services, started by the binaries that need them
	ConsumerService service.IConsumerService
	FestivalService service.IFestivalService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	syncLogger := logger.NewIsolatedLogger("logs/festival_sync.log")
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync(); _ = syncLogger.Sync() })

	// 2. Event buses
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var eventPublisher events.Publisher = events.Discard{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, natsStream)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	} else {
		log.Println("[INFO] NATS_URL not set, domain events are not forwarded")
	}

	// 3. Redis: finalize cache and job queue
	var recommendationCache contract.RecommendationCache = memory.NewRecommendationCache()
	var enqueuer controller.FestivalSyncEnqueuer

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.Queue.RedisAddr}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory cache and inline festival sync", err)
		_ = rdb.Close()
	} else {
		recommendationCache = rediscache.NewRecommendationCache(rdb, recommendationCache)
		queueClient := queue.NewClient(queue.RedisOpt(cfg))
		enqueuer = queueClient
		c.closers = append(c.closers, func() {
			_ = queueClient.Close()
			_ = rdb.Close()
		})
	}

	// 4. External APIs
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL(cfg.Ai),
		APIKey:   cfg.Ai.LLMAPIKey,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", llmProvider.Name(), cfg.Ai.LLMModel)

	var festivalSource service.FestivalSource
	if cfg.TourAPI.ServiceKey != "" {
		festivalSource = tourapi.NewClient(tourapi.Config{
			BaseURL:    cfg.TourAPI.BaseURL,
			ServiceKey: cfg.TourAPI.ServiceKey,
			LegacyTLS:  cfg.TourAPI.LegacyTLS,
			OnRequest:  metrics.RecordTourAPICall,
		})
	} else {
		log.Println("[WARN] TOUR_API_KEY not set, festival sync is disabled")
	}

	// 5. Services
	publisherService := service.NewPublisherService(service.ConversationCompletedTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, service.ConversationCompletedTopic, uowFactory, sysLogger)

	authService := service.NewAuthService(uowFactory, cfg.Auth.SecretKey, cfg.Auth.AccessTokenExpiry, sysLogger)
	userService := service.NewUserService(uowFactory)
	chatbotService := service.NewChatbotService(uowFactory, conversation.DefaultScenario(), publisherService, eventPublisher, sysLogger)
	recommendationService := service.NewRecommendationService(uowFactory, llmProvider, recommendationCache, eventPublisher, sysLogger)
	c.FestivalService = service.NewFestivalService(uowFactory, festivalSource, cfg.Festival.Regions, eventPublisher, sysLogger, syncLogger)

	// 6. Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.SecretKey, uowFactory)
	ping := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	c.HealthController = controller.NewHealthController(ping)
	c.AuthController = controller.NewAuthController(authService)
	c.UserController = controller.NewUserController(userService, jwtMiddleware)
	c.ChatbotController = controller.NewChatbotController(chatbotService, jwtMiddleware)
	c.RecommendationController = controller.NewRecommendationController(recommendationService, jwtMiddleware)
	c.FestivalController = controller.NewFestivalController(c.FestivalService, enqueuer, jwtMiddleware)

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func llmBaseURL(cfg config.AIConfig) string {
	if cfg.LLMProvider == "ollama" && cfg.LLMBaseURL == "" {
		return cfg.OllamaBaseURL
	}
	return cfg.LLMBaseURL
}
