package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskRecommend turns a client brief into catalog references.
	TaskRecommend TaskType = "recommend"
	// TaskChat is a free-form reply with no structured output.
	TaskChat TaskType = "chat"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the assistant collaborator.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	// MaxHistory caps the stored chat turns sent back with each request.
	MaxHistory int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the assistant disabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 1,
		MaxHistory: 10,
		Tasks: map[TaskType]TaskConfig{
			TaskRecommend: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 30000},
			TaskChat:      {Temperature: 0.5, MaxTokens: 1024},
		},
	}
}

// LoadConfig reads COTIZADOR_LLM_* environment variables over the defaults.
// Malformed values are ignored.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("COTIZADOR_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COTIZADOR_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COTIZADOR_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("COTIZADOR_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := positiveInt("COTIZADOR_LLM_TIMEOUT_MS"); ok {
		cfg.TimeoutMs = n
	}
	if v := os.Getenv("COTIZADOR_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("COTIZADOR_LLM_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxHistory = n
		}
	}
	if n, ok := positiveInt("COTIZADOR_LLM_RECOMMEND_TIMEOUT_MS"); ok {
		tc := cfg.Tasks[TaskRecommend]
		tc.TimeoutMs = n
		cfg.Tasks[TaskRecommend] = tc
	}

	return cfg
}

// TaskTimeout returns the task-specific timeout, or the global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func positiveInt(env string) (int, bool) {
	v := os.Getenv(env)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
