package src

import (
	"blog_analyzer/src/model"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config embeds each section so every variable is read under its full name
// (LLM_API_KEY, DATABASE_URL, ...) with no unprefixed fallback.
type Config struct {
	model.LogConfig
	model.LLMConfig
	model.DatabaseConfig
	model.RedisConfig
	model.SessionConfig
	model.ServerConfig
	model.AnalysisConfig
}

// LoadConfig reads the configuration from environment variables.
// LLM_API_KEY, LLM_MODEL and DATABASE_URL are required.
func LoadConfig() (*Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks enum values and cross-field requirements
func (c *Config) Validate() error {
	if c.LLMConfig.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.LLMConfig.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.DatabaseConfig.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.LLMConfig.Provider {
	case model.ProviderOpenAI, model.ProviderOllama, model.ProviderDeepSeek, model.ProviderArk:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (must be openai, ollama, deepseek or ark)", c.LLMConfig.Provider)
	}

	switch c.SessionConfig.Backend {
	case model.SessionBackendMemory:
	case model.SessionBackendRedis:
		if c.RedisConfig.URL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q (must be memory or redis)", c.SessionConfig.Backend)
	}

	if c.SessionConfig.TTL < 0 {
		return fmt.Errorf("SESSION_TTL cannot be negative")
	}
	if c.AnalysisConfig.KeywordTopN <= 0 {
		return fmt.Errorf("ANALYSIS_KEYWORD_TOP_N must be positive")
	}

	return nil
}
