package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	MaxFileSizeBytes int64
	MaxContentChars  int
	EchoDisplayChars int

	MaxConcurrentRequests int
	BackpressureWaitMS    int

	UpstreamRPS   float64
	UpstreamBurst int

	LLMRetryMaxAttempts int
	LLMBreakerEnabled   bool
}

func Load() Config {
	return Config{
		// PORT is the conventional platform override; API_PORT keeps the
		// explicit name for local runs.
		APIPort:  mustEnv("PORT", mustEnv("API_PORT", "8080")),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OpenAIAPIKey:  mustEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   mustEnv("OPENAI_MODEL", "gpt-4o-mini"),

		MaxFileSizeBytes: mustEnvInt64("MAX_FILE_SIZE_BYTES", 10<<20),
		MaxContentChars:  mustEnvInt("MAX_CONTENT_CHARS", 10000),
		EchoDisplayChars: mustEnvInt("ECHO_DISPLAY_CHARS", 500),

		MaxConcurrentRequests: mustEnvInt("MAX_CONCURRENT_REQUESTS", 32),
		BackpressureWaitMS:    mustEnvInt("BACKPRESSURE_WAIT_MS", 200),

		UpstreamRPS:   mustEnvFloat("UPSTREAM_RPS", 0),
		UpstreamBurst: mustEnvInt("UPSTREAM_BURST", 1),

		LLMRetryMaxAttempts: mustEnvInt("LLM_RETRY_MAX_ATTEMPTS", 1),
		LLMBreakerEnabled:   mustEnvBool("LLM_BREAKER_ENABLED", true),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
