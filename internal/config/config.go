package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	TourAPI  TourAPIConfig
	Festival FestivalConfig
	Ai       AIConfig
	Queue    QueueConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type AuthConfig struct {
	SecretKey         string
	AccessTokenExpiry time.Duration
}

type TourAPIConfig struct {
	ServiceKey string
	BaseURL    string
	LegacyTLS  bool
}

type FestivalConfig struct {
	Regions  []string
	SyncCron string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "openai", "clova" or "fake"
	LLMModel      string
	LLMBaseURL    string
	LLMAPIKey     string
	OllamaBaseURL string
}

type QueueConfig struct {
	// RedisAddr is the host:port asynq connects to, derived from REDIS_URL.
	RedisAddr string
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment without touching .env.
func FromEnv() *Config {
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           redisURL,
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			SecretKey:         getEnv("SECRET_KEY", "your-secret-key-here"),
			AccessTokenExpiry: time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		},
		TourAPI: TourAPIConfig{
			ServiceKey: getEnv("TOUR_API_KEY", ""),
			BaseURL:    getEnv("TOUR_API_BASE_URL", "https://apis.data.go.kr/B551011/KorService2"),
			LegacyTLS:  getEnvAsBool("TOUR_API_LEGACY_TLS", false),
		},
		Festival: FestivalConfig{
			Regions:  getEnvAsList("FESTIVAL_REGIONS", []string{"전북특별자치도", "전라남도", "광주"}),
			SyncCron: getEnv("FESTIVAL_SYNC_CRON", "0 4 * * *"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:     getEnv("LLM_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Queue: QueueConfig{
			RedisAddr: redisAddr(redisURL),
		},
		Otel: OtelConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func redisAddr(url string) string {
	addr := strings.TrimPrefix(url, "redis://")
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		addr = addr[i+1:]
	}
	if i := strings.Index(addr, "/"); i >= 0 {
		addr = addr[:i]
	}
	return addr
}
