package model

import "time"

// ----------------------------------------------------
// ================ Config ================

// LLM providers supported by the chat model factory
const (
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
	ProviderDeepSeek = "deepseek"
	ProviderArk      = "ark"
)

// LLMConfig holds configuration for the language model used for extraction and summaries
type LLMConfig struct {
	Provider    string        `envconfig:"LLM_PROVIDER" default:"openai" yaml:"provider"`
	APIKey      string        `envconfig:"LLM_API_KEY" required:"true" yaml:"-"`
	Model       string        `envconfig:"LLM_MODEL" required:"true" yaml:"model"`
	BaseURL     string        `envconfig:"LLM_BASE_URL" yaml:"base_url"`
	MaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"1024" yaml:"max_tokens"`
	Temperature float64       `envconfig:"LLM_TEMPERATURE" default:"0.1" yaml:"temperature"`
	Timeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"60s" yaml:"timeout"`
}

// AnalysisConfig holds tunables of the analysis pipeline
type AnalysisConfig struct {
	KeywordTopN   int `envconfig:"ANALYSIS_KEYWORD_TOP_N" default:"3" yaml:"keyword_top_n"`
	MaxInputChars int `envconfig:"ANALYSIS_MAX_INPUT_CHARS" default:"20000" yaml:"max_input_chars"`
}
