package factory

import (
	"fmt"

	"namdo-bot-be/pkg/llm"
	"namdo-bot-be/pkg/llm/fake"
	"namdo-bot-be/pkg/llm/ollama"
	"namdo-bot-be/pkg/llm/openai"
)

type Config struct {
	Provider string // "ollama", "openai", "clova", "fake"
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires LLM_API_KEY")
		}
		return openai.NewProvider("openai", cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "clova":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("clova provider requires LLM_API_KEY")
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = openai.ClovaStudioBaseURL
		}
		return openai.NewProvider("clova", cfg.APIKey, baseURL, cfg.Model), nil
	case "fake", "":
		return fake.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
