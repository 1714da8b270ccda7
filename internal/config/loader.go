package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"blog_analyzer/src"
	"blog_analyzer/src/model"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when CONFIG_FILE is not set
const DefaultPath = "config.yaml"

// YAMLConfig represents the structure of config.yaml.
// A key present in the file replaces the built-in default; an environment
// variable that is set always wins over the file.
type YAMLConfig struct {
	LLM struct {
		Provider    *string        `yaml:"provider"`
		Model       *string        `yaml:"model"`
		BaseURL     *string        `yaml:"base_url"`
		MaxTokens   *int           `yaml:"max_tokens"`
		Temperature *float64       `yaml:"temperature"`
		Timeout     *time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Keywords struct {
		TopN *int `yaml:"top_n"`
	} `yaml:"keywords"`

	Analysis struct {
		MaxInputChars *int `yaml:"max_input_chars"`
	} `yaml:"analysis"`

	Session struct {
		Backend *string        `yaml:"backend"`
		TTL     *time.Duration `yaml:"ttl"`
	} `yaml:"session"`

	Database struct {
		MaxOpenConns *int `yaml:"max_open_conns"`
		MaxIdleConns *int `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Server struct {
		Port            *string        `yaml:"port"`
		ReadTimeout     *time.Duration `yaml:"read_timeout"`
		WriteTimeout    *time.Duration `yaml:"write_timeout"`
		ShutdownTimeout *time.Duration `yaml:"shutdown_timeout"`
		Mode            *string        `yaml:"mode"`
	} `yaml:"server"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*YAMLConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config YAMLConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	return &config, nil
}

// LoadOptional loads the file if it exists and returns an empty overlay otherwise
func LoadOptional(filepath string) (*YAMLConfig, error) {
	config, err := LoadConfig(filepath)
	if errors.Is(err, os.ErrNotExist) {
		return &YAMLConfig{}, nil
	}
	return config, err
}

// set copies v into dst unless v is absent or envKey is set in the environment
func set[T any](dst *T, v *T, envKey string) {
	if v == nil {
		return
	}
	if _, ok := os.LookupEnv(envKey); ok {
		return
	}
	*dst = *v
}

// BuildLLMConfig overlays YAML LLM tunables on the loaded config
func BuildLLMConfig(yamlConfig *YAMLConfig, env model.LLMConfig) model.LLMConfig {
	c := env
	set(&c.Provider, yamlConfig.LLM.Provider, "LLM_PROVIDER")
	set(&c.Model, yamlConfig.LLM.Model, "LLM_MODEL")
	set(&c.BaseURL, yamlConfig.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.MaxTokens, yamlConfig.LLM.MaxTokens, "LLM_MAX_TOKENS")
	set(&c.Temperature, yamlConfig.LLM.Temperature, "LLM_TEMPERATURE")
	set(&c.Timeout, yamlConfig.LLM.Timeout, "LLM_TIMEOUT")
	return c
}

// BuildAnalysisConfig overlays YAML pipeline tunables on the environment config
func BuildAnalysisConfig(yamlConfig *YAMLConfig, env model.AnalysisConfig) model.AnalysisConfig {
	c := env
	set(&c.KeywordTopN, yamlConfig.Keywords.TopN, "ANALYSIS_KEYWORD_TOP_N")
	set(&c.MaxInputChars, yamlConfig.Analysis.MaxInputChars, "ANALYSIS_MAX_INPUT_CHARS")
	return c
}

// BuildSessionConfig overlays YAML session settings on the environment config
func BuildSessionConfig(yamlConfig *YAMLConfig, env model.SessionConfig) model.SessionConfig {
	c := env
	set(&c.Backend, yamlConfig.Session.Backend, "SESSION_BACKEND")
	set(&c.TTL, yamlConfig.Session.TTL, "SESSION_TTL")
	return c
}

// BuildDatabaseConfig overlays YAML pool sizes on the environment config
func BuildDatabaseConfig(yamlConfig *YAMLConfig, env model.DatabaseConfig) model.DatabaseConfig {
	c := env
	set(&c.MaxOpenConns, yamlConfig.Database.MaxOpenConns, "DATABASE_MAX_OPEN_CONNS")
	set(&c.MaxIdleConns, yamlConfig.Database.MaxIdleConns, "DATABASE_MAX_IDLE_CONNS")
	return c
}

// BuildServerConfig overlays YAML server settings on the environment config
func BuildServerConfig(yamlConfig *YAMLConfig, env model.ServerConfig) model.ServerConfig {
	c := env
	set(&c.Port, yamlConfig.Server.Port, "SERVER_PORT")
	set(&c.ReadTimeout, yamlConfig.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	set(&c.WriteTimeout, yamlConfig.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	set(&c.ShutdownTimeout, yamlConfig.Server.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT")
	set(&c.Mode, yamlConfig.Server.Mode, "SERVER_MODE")
	return c
}

// Apply merges the overlay into cfg and validates the result
func Apply(yamlConfig *YAMLConfig, cfg *src.Config) error {
	cfg.LLMConfig = BuildLLMConfig(yamlConfig, cfg.LLMConfig)
	cfg.AnalysisConfig = BuildAnalysisConfig(yamlConfig, cfg.AnalysisConfig)
	cfg.SessionConfig = BuildSessionConfig(yamlConfig, cfg.SessionConfig)
	cfg.DatabaseConfig = BuildDatabaseConfig(yamlConfig, cfg.DatabaseConfig)
	cfg.ServerConfig = BuildServerConfig(yamlConfig, cfg.ServerConfig)
	return cfg.Validate()
}
